package models

import "time"

// Routine is a planned viewing period: one title, one user, an inclusive
// date range expanded per-day for calendar display.
type Routine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	UserID  uint `json:"user_id" gorm:"index"`
	TitleID uint `json:"title_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

func (r *Routine) GetID() uint   { return r.ID }
func (r *Routine) SetID(id uint) { r.ID = id }
