package repositories

import (
	"errors"
	"fmt"

	"cinehub/internal/models"

	"gorm.io/gorm"
)

// RoutineRepository defines the interface for viewing-routine data access.
type RoutineRepository interface {
	Repository[models.Routine]
	FindByName(name string) (*models.Routine, error)
}

// GORMRoutineRepository is a GORM implementation of RoutineRepository.
type GORMRoutineRepository struct {
	*GORMRepository[models.Routine]
	db *gorm.DB
}

// NewGORMRoutineRepository creates a new instance of GORMRoutineRepository.
func NewGORMRoutineRepository(db *gorm.DB) *GORMRoutineRepository {
	return &GORMRoutineRepository{
		GORMRepository: NewGORMRepository[models.Routine](db),
		db:             db,
	}
}

// FindByName retrieves the first active routine with the given name.
func (r *GORMRoutineRepository) FindByName(name string) (*models.Routine, error) {
	var routine models.Routine
	err := r.db.Where("is_active = ?", true).First(&routine, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("routine %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get routine by name %q: %w", name, err)
	}
	return &routine, nil
}
