package appointment

import (
	"time"

	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

type BookingRequest struct {
	CreatorID  uint
	Title      string
	Start      time.Time
	End        time.Time
	InviteeIDs []uint
}

type InviteeStatus string

const (
	InviteeAccepted InviteeStatus = "accepted"
	// InviteeSkipped marks an id with no matching user. It is dropped from
	// the participant list without failing the booking.
	InviteeSkipped InviteeStatus = "skipped"
	// InviteeDuplicate marks an id already listed earlier or equal to the
	// creator.
	InviteeDuplicate InviteeStatus = "duplicate"
	InviteeFailed    InviteeStatus = "failed"
)

type InviteeOutcome struct {
	UserID uint          `json:"user_id"`
	Status InviteeStatus `json:"status"`
	Err    error         `json:"-"`
}

// BookingPlan is a validated appointment that has not been persisted yet.
type BookingPlan struct {
	Title     string
	CreatorID uint

	// Start and End are derived from the creator's local representation.
	Start time.Time
	End   time.Time

	CreatorTimezone string
	LocalStart      timezone.Civil
	LocalEnd        timezone.Civil

	// InviteeIDs holds accepted invitees in request order.
	InviteeIDs []uint
	Invitees   []InviteeOutcome
}

// ParticipantIDs returns the creator followed by the accepted invitees.
func (p *BookingPlan) ParticipantIDs() []uint {
	ids := make([]uint, 0, len(p.InviteeIDs)+1)
	ids = append(ids, p.CreatorID)
	return append(ids, p.InviteeIDs...)
}
