package models

import "time"

// User represents a registered user of the application.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `json:"-" gorm:"type:varchar(255)"` // bcrypt digest, never serialized
	ImageURL string `json:"image_url,omitempty" gorm:"type:varchar(512)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SoftDelete
}

func (u *User) GetID() uint   { return u.ID }
func (u *User) SetID(id uint) { u.ID = id }
