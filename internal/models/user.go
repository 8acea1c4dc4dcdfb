package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Handle   string `gorm:"size:100;uniqueIndex;not null" json:"handle"`
	Timezone string `gorm:"size:64;not null" json:"timezone"`

	PasswordHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
