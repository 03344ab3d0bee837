//go:build e2e

package e2e

import (
	"time"

	"stay-calendar/internal/domain/calendar"
)

// NextMonday returns the first Monday at least minDaysAhead days from today,
// so stays built from it never land in the past and have a known weekend split.
func NextMonday(minDaysAhead int) calendar.Date {
	d := calendar.DateOf(time.Now()).AddDays(minDaysAhead)
	for d.Weekday() != time.Monday {
		d = d.AddDays(1)
	}
	return d
}
