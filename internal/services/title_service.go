package services

import (
	"fmt"
	"strconv"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/pkg/events"
	"cinehub/pkg/storage"
)

// firstFilmYear bounds the release year; nothing predates the medium.
const firstFilmYear = 1888

// TitleInput carries the form-decoded fields for creating or updating a
// movie or series.
type TitleInput struct {
	Name        string
	Genre       string
	ReleaseYear int
	Duration    int
	Description string
	Image       *storage.File
}

// TitleService handles business logic related to movies and series.
type TitleService struct {
	repo    repositories.TitleRepository
	storage storage.ObjectStorage
	events  *events.Client
}

// NewTitleService creates a new TitleService.
func NewTitleService(repo repositories.TitleRepository, store storage.ObjectStorage, ev *events.Client) *TitleService {
	return &TitleService{
		repo:    repo,
		storage: store,
		events:  ev,
	}
}

func validateTitleInput(input TitleInput) error {
	if input.Duration <= 0 {
		return &ValidationError{
			Field:   "duration",
			Value:   strconv.Itoa(input.Duration),
			Message: "duration must be a positive number of minutes",
		}
	}
	if input.ReleaseYear < firstFilmYear {
		return &ValidationError{
			Field:   "release_year",
			Value:   strconv.Itoa(input.ReleaseYear),
			Message: fmt.Sprintf("release year must be %d or later", firstFilmYear),
		}
	}
	return nil
}

// CreateTitle persists a new title. The name must not be held by an active
// title; an optional poster image is uploaded before the row is written.
func (s *TitleService) CreateTitle(input TitleInput) (*models.Title, error) {
	if err := validateTitleInput(input); err != nil {
		return nil, err
	}
	if existing, err := s.repo.FindByName(input.Name, true); err == nil && existing != nil {
		return nil, fmt.Errorf("title %q already exists: %w", input.Name, ErrConflict)
	}

	imageURL, err := uploadImage(s.storage, input.Image)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Genre:       input.Genre,
		ReleaseYear: input.ReleaseYear,
		Duration:    input.Duration,
		Description: input.Description,
		ImageURL:    imageURL,
		SoftDelete:  models.SoftDelete{IsActive: true},
	}
	if err := s.repo.Create(title); err != nil {
		return nil, err
	}

	publishEvent(s.events, "title.created", map[string]interface{}{
		"id":    title.ID,
		"title": title.Name,
	})
	return title, nil
}

// UpdateTitle applies the mutable fields to an active title, re-checking
// name uniqueness only when the name changed.
func (s *TitleService) UpdateTitle(id uint, input TitleInput) (*models.Title, error) {
	if err := validateTitleInput(input); err != nil {
		return nil, err
	}

	title, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != title.Name {
		if existing, err := s.repo.FindByName(input.Name, true); err == nil && existing != nil {
			return nil, fmt.Errorf("title %q already exists: %w", input.Name, ErrConflict)
		}
	}

	title.Name = input.Name
	title.Genre = input.Genre
	title.ReleaseYear = input.ReleaseYear
	title.Duration = input.Duration
	title.Description = input.Description
	if input.Image != nil {
		imageURL, err := uploadImage(s.storage, input.Image)
		if err != nil {
			return nil, err
		}
		title.ImageURL = imageURL
	}

	if err := s.repo.Update(title); err != nil {
		return nil, err
	}
	return title, nil
}

// GetTitleByID retrieves a single active title.
func (s *TitleService) GetTitleByID(id uint) (*models.Title, error) {
	return s.repo.GetByID(id)
}

// GetTitleByName retrieves an active title by its unique name.
func (s *TitleService) GetTitleByName(name string) (*models.Title, error) {
	return s.repo.FindByName(name, true)
}

// ListTitles retrieves all active titles.
func (s *TitleService) ListTitles() ([]models.Title, error) {
	return s.repo.ListActive()
}

// ListDeletedTitles retrieves all soft-deleted titles.
func (s *TitleService) ListDeletedTitles() ([]models.Title, error) {
	return s.repo.ListInactive()
}

// DeleteTitle soft-deletes a title.
func (s *TitleService) DeleteTitle(id uint) error {
	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}
	publishEvent(s.events, "title.deleted", map[string]interface{}{"id": id})
	return nil
}

// RestoreTitle brings a soft-deleted title back.
func (s *TitleService) RestoreTitle(id uint) error {
	if err := s.repo.Restore(id); err != nil {
		return err
	}
	publishEvent(s.events, "title.restored", map[string]interface{}{"id": id})
	return nil
}
