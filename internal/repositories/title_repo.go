package repositories

import (
	"errors"
	"fmt"

	"cinehub/internal/models"

	"gorm.io/gorm"
)

// TitleRepository defines the interface for movie/series data access.
type TitleRepository interface {
	Repository[models.Title]
	FindByName(name string, activeOnly bool) (*models.Title, error)
}

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	*GORMRepository[models.Title]
	db *gorm.DB
}

// NewGORMTitleRepository creates a new instance of GORMTitleRepository.
func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{
		GORMRepository: NewGORMRepository[models.Title](db),
		db:             db,
	}
}

// FindByName retrieves a title by its unique name.
func (r *GORMTitleRepository) FindByName(name string, activeOnly bool) (*models.Title, error) {
	var title models.Title
	q := r.db
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&title, "title = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("title %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get title by name %q: %w", name, err)
	}
	return &title, nil
}
