package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

var (
	ErrOutsideWorkingHours = errors.New("outside working hours")
	ErrInvalidTimeRange    = errors.New("start must be before end")
)

type ErrorKind string

const (
	KindUserNotFound        ErrorKind = "user_not_found"
	KindInvalidTimezone     ErrorKind = "invalid_timezone"
	KindOutsideWorkingHours ErrorKind = "outside_working_hours"
	KindInvalidTimeRange    ErrorKind = "invalid_time_range"
)

type Party string

const (
	PartyCreator Party = "creator"
	PartyInvitee Party = "invitee"
)

type Boundary string

const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)

// SchedulingError is a deterministic rejection of a booking request. It
// names the offending party and, for working-hours failures, the boundary
// and the local time that failed.
type SchedulingError struct {
	Kind     ErrorKind
	Party    Party
	UserID   uint
	Handle   string
	Timezone string
	Boundary Boundary
	Local    timezone.Civil
	Err      error
}

func (e *SchedulingError) Error() string {
	switch e.Kind {
	case KindUserNotFound:
		return fmt.Sprintf("%s %d not found", e.Party, e.UserID)
	case KindInvalidTimezone:
		return fmt.Sprintf("%s %d has invalid timezone %q", e.Party, e.UserID, e.Timezone)
	case KindOutsideWorkingHours:
		return fmt.Sprintf("%s %s is outside working hours: %s %s is %s",
			e.Party, e.label(), e.Boundary, e.Local, e.Timezone)
	case KindInvalidTimeRange:
		return ErrInvalidTimeRange.Error()
	}
	return string(e.Kind)
}

func (e *SchedulingError) label() string {
	if e.Handle != "" {
		return e.Handle
	}
	return fmt.Sprintf("%d", e.UserID)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *SchedulingError) Is(target error) bool {
	switch target {
	case ErrUserNotFound:
		return e.Kind == KindUserNotFound
	case timezone.ErrInvalidTimezone:
		return e.Kind == KindInvalidTimezone
	case ErrOutsideWorkingHours:
		return e.Kind == KindOutsideWorkingHours
	case ErrInvalidTimeRange:
		return e.Kind == KindInvalidTimeRange
	}
	return false
}

// AsSchedulingError unwraps err into a *SchedulingError when possible.
func AsSchedulingError(err error) (*SchedulingError, bool) {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
