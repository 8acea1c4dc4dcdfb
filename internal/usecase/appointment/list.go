package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/dto"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

// ListAppointments returns the viewer's appointments with start and end
// rendered in the viewer's timezone.
type ListAppointments struct {
	directory domain.UserDirectory
	store     domain.AppointmentStore
}

func NewListAppointments(
	directory domain.UserDirectory,
	store domain.AppointmentStore,
) *ListAppointments {
	return &ListAppointments{
		directory: directory,
		store:     store,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	viewer, err := uc.directory.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.store.ListAppointmentsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		start, err := timezone.Format(ap.StartTime, viewer.Timezone)
		if err != nil {
			return nil, err
		}
		end, err := timezone.Format(ap.EndTime, viewer.Timezone)
		if err != nil {
			return nil, err
		}

		participants := make([]uint, 0, len(ap.Participations))
		for _, p := range ap.Participations {
			participants = append(participants, p.UserID)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:             ap.ID,
			Title:          ap.Title,
			Start:          start,
			End:            end,
			Timezone:       viewer.Timezone,
			CreatorID:      ap.CreatorID,
			ParticipantIDs: participants,
			CreatedAt:      ap.CreatedAt,
		})
	}

	return out, nil
}
