package appointment

import "github.com/BruksfildServices01/team-scheduler/internal/timezone"

// WorkingHoursPolicy decides whether a single wall-clock time is bookable.
type WorkingHoursPolicy interface {
	IsWithinWorkingHours(c timezone.Civil) bool
}

// HourWindow accepts civil times whose hour lies in [Open, Close].
// Only the hour is consulted, so with Close=17 the window runs until 17:59:59
// and anything from 18:00 on is rejected.
type HourWindow struct {
	Open  int
	Close int
}

var DefaultWorkingHours = HourWindow{Open: 8, Close: 17}

func (w HourWindow) IsWithinWorkingHours(c timezone.Civil) bool {
	if c.Hour < w.Open || c.Hour > w.Close {
		return false
	}
	return true
}
