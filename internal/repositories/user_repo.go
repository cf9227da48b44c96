package repositories

import (
	"errors"
	"fmt"

	"cinehub/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Repository[models.User]
	FindByEmail(email string, activeOnly bool) (*models.User, error)
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	*GORMRepository[models.User]
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		GORMRepository: NewGORMRepository[models.User](db),
		db:             db,
	}
}

// FindByEmail retrieves a user by their email. With activeOnly set,
// soft-deleted users are treated as absent, which is the rule the
// email-uniqueness pre-check relies on.
func (r *GORMUserRepository) FindByEmail(email string, activeOnly bool) (*models.User, error) {
	var user models.User
	q := r.db
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}
