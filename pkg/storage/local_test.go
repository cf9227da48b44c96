package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinehub/pkg/storage"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/upload")
	assert.NoError(t, err)

	url, err := store.Upload(storage.File{Name: "poster.jpg", Content: []byte("image-bytes")})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/upload/"))
	assert.True(t, strings.HasSuffix(url, "_poster.jpg"))

	// The returned URL points at the file actually written.
	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/upload/")))
	assert.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), content)
}

func TestLocalStorage_UploadSameNameTwice(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "/upload")
	assert.NoError(t, err)

	first, err := store.Upload(storage.File{Name: "poster.jpg", Content: []byte("a")})
	assert.NoError(t, err)
	second, err := store.Upload(storage.File{Name: "poster.jpg", Content: []byte("b")})
	assert.NoError(t, err)

	// Each upload gets a unique object name.
	assert.NotEqual(t, first, second)
}

func TestLocalStorage_StripsDirectoryFromName(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/upload")
	assert.NoError(t, err)

	url, err := store.Upload(storage.File{Name: "../escape/poster.jpg", Content: []byte("x")})
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "_poster.jpg"))
	assert.NotContains(t, url, "..")
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "upload")
	_, err := storage.NewLocalStorage(dir, "/upload")
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
