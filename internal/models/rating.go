package models

import "time"

// Rating is one user's score and comment for one title.
type Rating struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Score   float64   `json:"score"`
	Comment string    `json:"comment" gorm:"type:text"`
	Date    time.Time `json:"date"`

	UserID  uint `json:"user_id" gorm:"index"`
	TitleID uint `json:"title_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

func (r *Rating) GetID() uint   { return r.ID }
func (r *Rating) SetID(id uint) { r.ID = id }
