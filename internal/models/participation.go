package models

import "time"

type ParticipationRole string

const (
	RoleCreator ParticipationRole = "creator"
	RoleInvitee ParticipationRole = "invitee"
)

// Participation links a user to an appointment. The composite primary key
// rules out duplicate rows for the same pair.
type Participation struct {
	AppointmentID uint              `gorm:"primaryKey;autoIncrement:false" json:"appointment_id"`
	UserID        uint              `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Role          ParticipationRole `gorm:"size:20;not null" json:"role"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
