package timezone

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidTimezone is returned when a zone name cannot be loaded from the
// IANA database.
var ErrInvalidTimezone = errors.New("invalid timezone")

const ListingLayout = "2006-01-02 15:04"

var locations sync.Map // name -> *time.Location

// Civil is a wall-clock date and time in some named zone.
//
// Offset is the UTC offset (seconds east) the zone used when the value was
// produced by ToLocal. ToInstant uses it to pick the right side of a DST fold.
type Civil struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
	Offset     int
}

func (c Civil) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
}

// sameWallClock ignores Offset.
func (c Civil) sameWallClock(o Civil) bool {
	return c.Year == o.Year && c.Month == o.Month && c.Day == o.Day &&
		c.Hour == o.Hour && c.Minute == o.Minute && c.Second == o.Second &&
		c.Nanosecond == o.Nanosecond
}

func IsValid(tz string) bool {
	_, err := Load(tz)
	return err == nil
}

// Load resolves an IANA zone name. "Local" is rejected so results never
// depend on the host configuration.
func Load(tz string) (*time.Location, error) {
	if tz == "" || tz == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	if loc, ok := locations.Load(tz); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	actual, _ := locations.LoadOrStore(tz, loc)
	return actual.(*time.Location), nil
}

// ToLocal converts an instant to wall-clock time in tz.
func ToLocal(instant time.Time, tz string) (Civil, error) {
	loc, err := Load(tz)
	if err != nil {
		return Civil{}, err
	}
	return civilOf(instant.In(loc)), nil
}

// ToInstant converts a wall-clock time in tz back to an instant.
//
// Inside a DST fold the civil time exists twice; the recorded Offset selects
// which one, so ToInstant(ToLocal(x, tz), tz) always equals x. Without a
// matching offset the mapping chosen by time.Date is returned. Civil times
// inside a gap do not exist and are normalised forward by time.Date.
func ToInstant(c Civil, tz string) (time.Time, error) {
	loc, err := Load(tz)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Nanosecond, loc)
	if _, off := t.Zone(); off == c.Offset {
		return t.UTC(), nil
	}

	alt := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Nanosecond,
		time.FixedZone("", c.Offset))
	if back := alt.In(loc); civilOf(back).sameWallClock(c) {
		if _, off := back.Zone(); off == c.Offset {
			return alt.UTC(), nil
		}
	}

	return t.UTC(), nil
}

// Format renders an instant for listings in the viewer's zone.
func Format(instant time.Time, tz string) (string, error) {
	loc, err := Load(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(ListingLayout), nil
}

func civilOf(t time.Time) Civil {
	_, off := t.Zone()
	return Civil{
		Year:       t.Year(),
		Month:      t.Month(),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
		Offset:     off,
	}
}

// Converter exposes the package functions as a value so callers can inject
// it where an interface is expected.
type Converter struct{}

func (Converter) ToLocal(instant time.Time, tz string) (Civil, error) {
	return ToLocal(instant, tz)
}

func (Converter) ToInstant(c Civil, tz string) (time.Time, error) {
	return ToInstant(c, tz)
}
