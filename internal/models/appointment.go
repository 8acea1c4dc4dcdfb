package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string `gorm:"size:255;not null" json:"title"`

	// Instants, stored in UTC.
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	CreatorID uint `gorm:"not null;index" json:"creator_id"`
	Creator   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Participations []Participation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"participations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
