package dto

import "time"

// AppointmentListDTO carries start/end already formatted in the viewer's
// timezone ("2006-01-02 15:04").
type AppointmentListDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	Timezone       string    `json:"timezone"`
	CreatorID      uint      `json:"creator_id"`
	ParticipantIDs []uint    `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
}
