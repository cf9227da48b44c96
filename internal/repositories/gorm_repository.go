package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GORMRepository is the GORM implementation of Repository, shared by all
// entities. The soft-delete columns live on the embedded models.SoftDelete,
// so one implementation covers users, titles, ratings and routines.
type GORMRepository[T any] struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORMRepository for the given entity type.
func NewGORMRepository[T any](db *gorm.DB) *GORMRepository[T] {
	return &GORMRepository[T]{
		db: db,
	}
}

// Create persists a new row. Generated fields (id, timestamps) are written
// back into the entity.
func (r *GORMRepository[T]) Create(entity *T) error {
	if err := r.db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// ListActive returns all rows with is_active = true.
func (r *GORMRepository[T]) ListActive() ([]T, error) {
	var items []T
	if err := r.db.Where("is_active = ?", true).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list active records: %w", err)
	}
	return items, nil
}

// ListInactive returns all soft-deleted rows.
func (r *GORMRepository[T]) ListInactive() ([]T, error) {
	var items []T
	if err := r.db.Where("is_active = ?", false).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inactive records: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single active row. Soft-deleted rows are reported as
// not found.
func (r *GORMRepository[T]) GetByID(id uint) (*T, error) {
	var item T
	err := r.db.Where("is_active = ?", true).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return &item, nil
}

// GetAnyByID retrieves a row regardless of its active flag. Used by the
// soft-delete and restore paths, which intentionally see inactive rows.
func (r *GORMRepository[T]) GetAnyByID(id uint) (*T, error) {
	var item T
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return &item, nil
}

// Update saves all fields of an existing row.
func (r *GORMRepository[T]) Update(entity *T) error {
	res := r.db.Save(entity)
	if res.Error != nil {
		return fmt.Errorf("failed to update record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record to update: %w", ErrNotFound)
	}
	return nil
}

// SoftDelete marks a row inactive and stamps its deletion time. Deleting an
// already-inactive row is a no-op; only a row that never existed fails.
func (r *GORMRepository[T]) SoftDelete(id uint) error {
	item, err := r.GetAnyByID(id)
	if err != nil {
		return err
	}
	if ent, ok := any(item).(Entity); ok && !ent.Active() {
		return nil
	}
	var model T
	err = r.db.Model(&model).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"deleted_at": time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to soft-delete record %d: %w", id, err)
	}
	return nil
}

// Restore clears the inactive flag and the deletion timestamp.
func (r *GORMRepository[T]) Restore(id uint) error {
	if _, err := r.GetAnyByID(id); err != nil {
		return err
	}
	var model T
	err := r.db.Model(&model).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  true,
		"deleted_at": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to restore record %d: %w", id, err)
	}
	return nil
}
