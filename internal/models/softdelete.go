package models

import "time"

// SoftDelete is embedded by every entity that supports logical deletion.
// Rows are never removed physically; deleting flips IsActive and stamps
// DeletedAt, restoring reverses both.
type SoftDelete struct {
	IsActive  bool       `json:"is_active" gorm:"column:is_active;index"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
}

// Active reports whether the row is in the logically live state.
func (s *SoftDelete) Active() bool {
	return s.IsActive
}

// MarkDeleted flips the row to inactive at the given time.
func (s *SoftDelete) MarkDeleted(at time.Time) {
	s.IsActive = false
	s.DeletedAt = &at
}

// MarkRestored brings the row back to the active state.
func (s *SoftDelete) MarkRestored() {
	s.IsActive = true
	s.DeletedAt = nil
}
