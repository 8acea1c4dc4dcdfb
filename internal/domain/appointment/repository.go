package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

// ErrUserNotFound is returned by UserDirectory implementations when no user
// matches the lookup.
var ErrUserNotFound = errors.New("user not found")

type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AppointmentStore interface {
	// CreateAppointment persists the appointment and every participation row
	// in one transaction.
	CreateAppointment(ctx context.Context, plan *BookingPlan) (*models.Appointment, error)

	// ListAppointmentsForUser returns appointments the user takes part in,
	// as creator or invitee, ordered by start time.
	ListAppointmentsForUser(ctx context.Context, userID uint) ([]models.Appointment, error)
}

type TimeConverter interface {
	ToLocal(instant time.Time, tz string) (timezone.Civil, error)
	ToInstant(c timezone.Civil, tz string) (time.Time, error)
}
