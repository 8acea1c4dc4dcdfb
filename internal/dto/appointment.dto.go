package dto

import (
	"time"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

// AppointmentDTO is the stored appointment with instants in UTC.
type AppointmentDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	CreatorID      uint      `json:"creator_id"`
	ParticipantIDs []uint    `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	ids := make([]uint, 0, len(ap.Participations))
	for _, p := range ap.Participations {
		ids = append(ids, p.UserID)
	}
	return AppointmentDTO{
		ID:             ap.ID,
		Title:          ap.Title,
		Start:          ap.StartTime.UTC(),
		End:            ap.EndTime.UTC(),
		CreatorID:      ap.CreatorID,
		ParticipantIDs: ids,
		CreatedAt:      ap.CreatedAt,
	}
}

type CreatedAppointmentDTO struct {
	Appointment AppointmentDTO          `json:"appointment"`
	Invitees    []domain.InviteeOutcome `json:"invitees"`
}
