package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/metrics"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CreatorID  uint
	Title      string
	Start      time.Time
	End        time.Time
	InviteeIDs []uint
}

type CreateAppointmentOutput struct {
	Appointment *models.Appointment
	Invitees    []domain.InviteeOutcome
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	validator *domain.BookingValidator
	store     domain.AppointmentStore
	audit     *audit.Dispatcher
}

func NewCreateAppointment(
	validator *domain.BookingValidator,
	store domain.AppointmentStore,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		validator: validator,
		store:     store,
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	log := logger.WithModule("appointment").With(zap.Uint("creator_id", in.CreatorID))

	// --------------------------------------------------
	// 1. Validation (read-only)
	// --------------------------------------------------
	plan, err := uc.validator.Validate(ctx, domain.BookingRequest{
		CreatorID:  in.CreatorID,
		Title:      in.Title,
		Start:      in.Start,
		End:        in.End,
		InviteeIDs: in.InviteeIDs,
	})
	if err != nil {
		metrics.BookingValidations.WithLabelValues(resultLabel(err)).Inc()
		if se, ok := domain.AsSchedulingError(err); ok {
			log.Info("booking rejected",
				zap.String("kind", string(se.Kind)),
				zap.String("party", string(se.Party)),
				zap.Uint("user_id", se.UserID),
				zap.String("boundary", string(se.Boundary)),
			)
		} else {
			log.Error("booking validation failed", zap.Error(err))
		}
		return nil, err
	}
	metrics.BookingValidations.WithLabelValues("ok").Inc()

	for _, o := range plan.Invitees {
		metrics.InviteeOutcomes.WithLabelValues(string(o.Status)).Inc()
		if o.Status == domain.InviteeSkipped {
			log.Debug("invitee skipped", zap.Uint("invitee_id", o.UserID))
		}
	}

	// --------------------------------------------------
	// 2. Persistence (atomic)
	// --------------------------------------------------
	ap, err := uc.store.CreateAppointment(ctx, plan)
	if err != nil {
		log.Error("persist appointment failed", zap.Error(err))
		return nil, err
	}
	metrics.AppointmentsCreated.Inc()

	// --------------------------------------------------
	// 3. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CreatorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"invitees": plan.InviteeIDs,
			"start":    plan.Start,
			"end":      plan.End,
		},
	})

	log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Int("participants", len(plan.InviteeIDs)+1),
	)

	return &CreateAppointmentOutput{
		Appointment: ap,
		Invitees:    plan.Invitees,
	}, nil
}

func resultLabel(err error) string {
	if se, ok := domain.AsSchedulingError(err); ok {
		return string(se.Kind)
	}
	return "error"
}
