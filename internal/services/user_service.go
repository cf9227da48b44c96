package services

import (
	"fmt"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/pkg/events"
	"cinehub/pkg/storage"

	"golang.org/x/crypto/bcrypt"
)

// UserInput carries the form-decoded fields for creating or updating a user.
// On update, an empty Password keeps the stored hash unchanged.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Image    *storage.File
}

// UserService handles business logic related to users.
type UserService struct {
	repo    repositories.UserRepository
	storage storage.ObjectStorage
	events  *events.Client
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, store storage.ObjectStorage, ev *events.Client) *UserService {
	return &UserService{
		repo:    repo,
		storage: store,
		events:  ev,
	}
}

// CreateUser registers a new user. The email must not be held by an active
// user, the password is hashed before storage, and an optional avatar is
// uploaded before the row is written.
func (s *UserService) CreateUser(input UserInput) (*models.User, error) {
	if existing, err := s.repo.FindByEmail(input.Email, true); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", input.Email, ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL, err := uploadImage(s.storage, input.Image)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashed),
		ImageURL:   imageURL,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	publishEvent(s.events, "user.created", map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
	return user, nil
}

// UpdateUser applies the whitelisted mutable fields to an active user.
// Email uniqueness is re-checked only when the email changed; the password
// is rehashed only when a new one was submitted.
func (s *UserService) UpdateUser(id uint, input UserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		if existing, err := s.repo.FindByEmail(input.Email, true); err == nil && existing != nil {
			return nil, fmt.Errorf("email %s already in use: %w", input.Email, ErrConflict)
		}
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if input.Image != nil {
		imageURL, err := uploadImage(s.storage, input.Image)
		if err != nil {
			return nil, err
		}
		user.ImageURL = imageURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a single active user.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// GetUserByEmail retrieves an active user by their unique email.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.FindByEmail(email, true)
}

// ListUsers retrieves all active users.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.repo.ListActive()
}

// ListDeletedUsers retrieves all soft-deleted users.
func (s *UserService) ListDeletedUsers() ([]models.User, error) {
	return s.repo.ListInactive()
}

// DeleteUser soft-deletes a user.
func (s *UserService) DeleteUser(id uint) error {
	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}
	publishEvent(s.events, "user.deleted", map[string]interface{}{"id": id})
	return nil
}

// RestoreUser brings a soft-deleted user back.
func (s *UserService) RestoreUser(id uint) error {
	if err := s.repo.Restore(id); err != nil {
		return err
	}
	publishEvent(s.events, "user.restored", map[string]interface{}{"id": id})
	return nil
}

// uploadImage stores an optional uploaded file before any row is written.
// A storage failure aborts the pending change as an UpstreamError.
func uploadImage(store storage.ObjectStorage, img *storage.File) (string, error) {
	if img == nil || store == nil {
		return "", nil
	}
	url, err := store.Upload(*img)
	if err != nil {
		return "", &UpstreamError{Op: "image upload", Err: err}
	}
	return url, nil
}
