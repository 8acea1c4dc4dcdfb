package appointment

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

// BookingValidator checks a proposed appointment against the working hours
// of the creator and every invitee. It never writes anything.
type BookingValidator struct {
	directory UserDirectory
	converter TimeConverter
	policy    WorkingHoursPolicy
}

func NewBookingValidator(
	directory UserDirectory,
	converter TimeConverter,
	policy WorkingHoursPolicy,
) *BookingValidator {
	return &BookingValidator{
		directory: directory,
		converter: converter,
		policy:    policy,
	}
}

// Validate returns a plan when every party passes, or the first failure.
// Invitees are checked in request order and the first failing one stops
// the evaluation.
func (v *BookingValidator) Validate(ctx context.Context, req BookingRequest) (*BookingPlan, error) {
	if !req.Start.Before(req.End) {
		return nil, &SchedulingError{
			Kind:   KindInvalidTimeRange,
			Party:  PartyCreator,
			UserID: req.CreatorID,
		}
	}

	// --------------------------------------------------
	// Creator
	// --------------------------------------------------
	creator, err := v.lookup(ctx, req.CreatorID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, &SchedulingError{
				Kind:   KindUserNotFound,
				Party:  PartyCreator,
				UserID: req.CreatorID,
				Err:    err,
			}
		}
		return nil, err
	}

	localStart, localEnd, err := v.checkParty(creator, PartyCreator, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	start, err := v.converter.ToInstant(localStart, creator.Timezone)
	if err != nil {
		return nil, invalidTimezone(creator, PartyCreator, err)
	}
	end, err := v.converter.ToInstant(localEnd, creator.Timezone)
	if err != nil {
		return nil, invalidTimezone(creator, PartyCreator, err)
	}

	plan := &BookingPlan{
		Title:           req.Title,
		CreatorID:       creator.ID,
		Start:           start,
		End:             end,
		CreatorTimezone: creator.Timezone,
		LocalStart:      localStart,
		LocalEnd:        localEnd,
		InviteeIDs:      make([]uint, 0, len(req.InviteeIDs)),
		Invitees:        make([]InviteeOutcome, 0, len(req.InviteeIDs)),
	}

	// --------------------------------------------------
	// Invitees
	// --------------------------------------------------
	for outcome := range v.invitees(ctx, creator.ID, req) {
		if outcome.Status == InviteeFailed {
			return nil, outcome.Err
		}
		plan.Invitees = append(plan.Invitees, outcome)
		if outcome.Status == InviteeAccepted {
			plan.InviteeIDs = append(plan.InviteeIDs, outcome.UserID)
		}
	}

	return plan, nil
}

// invitees lazily evaluates each invitee id in order. Nothing past the
// point where the consumer stops is looked up.
func (v *BookingValidator) invitees(ctx context.Context, creatorID uint, req BookingRequest) iter.Seq[InviteeOutcome] {
	return func(yield func(InviteeOutcome) bool) {
		seen := map[uint]bool{creatorID: true}

		for _, id := range req.InviteeIDs {
			if seen[id] {
				if !yield(InviteeOutcome{UserID: id, Status: InviteeDuplicate}) {
					return
				}
				continue
			}
			seen[id] = true

			if !yield(v.evaluateInvitee(ctx, id, req.Start, req.End)) {
				return
			}
		}
	}
}

func (v *BookingValidator) evaluateInvitee(ctx context.Context, id uint, start, end time.Time) InviteeOutcome {
	user, err := v.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return InviteeOutcome{UserID: id, Status: InviteeSkipped, Err: err}
		}
		return InviteeOutcome{UserID: id, Status: InviteeFailed, Err: err}
	}

	if _, _, err := v.checkParty(user, PartyInvitee, start, end); err != nil {
		return InviteeOutcome{UserID: id, Status: InviteeFailed, Err: err}
	}

	return InviteeOutcome{UserID: id, Status: InviteeAccepted}
}

// checkParty converts both endpoints to the user's zone and applies the
// policy to each.
func (v *BookingValidator) checkParty(
	user *models.User,
	party Party,
	start time.Time,
	end time.Time,
) (timezone.Civil, timezone.Civil, error) {

	localStart, err := v.converter.ToLocal(start, user.Timezone)
	if err != nil {
		return timezone.Civil{}, timezone.Civil{}, invalidTimezone(user, party, err)
	}
	localEnd, err := v.converter.ToLocal(end, user.Timezone)
	if err != nil {
		return timezone.Civil{}, timezone.Civil{}, invalidTimezone(user, party, err)
	}

	if !v.policy.IsWithinWorkingHours(localStart) {
		return localStart, localEnd, outsideWorkingHours(user, party, BoundaryStart, localStart)
	}
	if !v.policy.IsWithinWorkingHours(localEnd) {
		return localStart, localEnd, outsideWorkingHours(user, party, BoundaryEnd, localEnd)
	}

	return localStart, localEnd, nil
}

// lookup maps directory failures: not found passes through, context errors
// are returned unwrapped so callers see cancellation, anything else is
// wrapped.
func (v *BookingValidator) lookup(ctx context.Context, id uint) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := v.directory.FindByID(ctx, id)
	switch {
	case err == nil && user == nil:
		return nil, ErrUserNotFound
	case err == nil:
		return user, nil
	case errors.Is(err, ErrUserNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	}
	return nil, fmt.Errorf("lookup user %d: %w", id, err)
}

func invalidTimezone(user *models.User, party Party, err error) *SchedulingError {
	return &SchedulingError{
		Kind:     KindInvalidTimezone,
		Party:    party,
		UserID:   user.ID,
		Handle:   user.Handle,
		Timezone: user.Timezone,
		Err:      err,
	}
}

func outsideWorkingHours(user *models.User, party Party, boundary Boundary, local timezone.Civil) *SchedulingError {
	return &SchedulingError{
		Kind:     KindOutsideWorkingHours,
		Party:    party,
		UserID:   user.ID,
		Handle:   user.Handle,
		Timezone: user.Timezone,
		Boundary: boundary,
		Local:    local,
	}
}
