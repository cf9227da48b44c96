package repositories

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a row does not exist, or is soft-deleted in
// contexts where only active rows are visible.
var ErrNotFound = errors.New("record not found")

// Entity is implemented by every soft-deletable model.
type Entity interface {
	GetID() uint
	SetID(id uint)
	Active() bool
	MarkDeleted(at time.Time)
	MarkRestored()
}

// Repository is the soft-delete-aware CRUD contract shared by all four
// entities. Read operations treat inactive rows as not found; the explicit
// inactive listing, GetAnyByID, SoftDelete and Restore bypass the filter.
type Repository[T any] interface {
	Create(entity *T) error
	ListActive() ([]T, error)
	ListInactive() ([]T, error)
	GetByID(id uint) (*T, error)
	GetAnyByID(id uint) (*T, error)
	Update(entity *T) error
	SoftDelete(id uint) error
	Restore(id uint) error
}
