package storage

// File is an uploaded file as received from a multipart form.
type File struct {
	Name    string
	Content []byte
}

// ObjectStorage stores uploaded files and returns a URL for each. Uploads
// run before the owning record is persisted; a failed upload aborts the
// pending change.
type ObjectStorage interface {
	Upload(file File) (string, error)
}
