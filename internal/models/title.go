package models

import "time"

// Title represents a movie or series users can rate and schedule.
type Title struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"title" gorm:"column:title;uniqueIndex;type:varchar(255)"`
	Genre       string `json:"genre" gorm:"type:varchar(100)"`
	ReleaseYear int    `json:"release_year"`
	Duration    int    `json:"duration"` // minutes
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url,omitempty" gorm:"type:varchar(512)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

func (t *Title) GetID() uint   { return t.ID }
func (t *Title) SetID(id uint) { t.ID = id }
