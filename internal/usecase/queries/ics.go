package queries

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"stay-calendar/internal/domain/calendar"

	ics "github.com/arran4/golang-ical"
)

const (
	icsDateLayout = "20060102"
	icsProductID  = "-//stay-calendar//calendar export//EN"
)

// unavailableRun is a maximal stretch of consecutive days that share a
// status and, for booked days, a booking.
type unavailableRun struct {
	status calendar.DayStatus
	key    string
	start  calendar.Date
	end    calendar.Date
}

func unavailableRuns(cal *calendar.Calendar, from calendar.Date) []unavailableRun {
	var runs []unavailableRun
	for _, d := range cal.SortedDates() {
		if d.Before(from) {
			continue
		}
		s := cal.Day(d)
		var key string
		switch s.Status {
		case calendar.StatusAvailable:
			continue
		case calendar.StatusBlocked:
			key = "blocked"
		case calendar.StatusBooked:
			key = "booked"
			if s.BookingRef != nil {
				key = s.BookingRef.String()
			}
		}

		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.key == key && last.end.Equal(d) {
				last.end = d.AddDays(1)
				continue
			}
		}
		runs = append(runs, unavailableRun{status: s.Status, key: key, start: d, end: d.AddDays(1)})
	}
	return runs
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// renderICS writes an RFC 5545 calendar with one all-day event per run.
// Guest names are never exported.
func renderICS(title string, cal *calendar.Calendar, from calendar.Date, now time.Time) ([]byte, error) {
	out := ics.NewCalendar()
	out.SetProductId(icsProductID)
	out.SetCalscale("GREGORIAN")
	out.SetXWRCalName(lineBreaks.Replace(title))

	for _, run := range unavailableRuns(cal, from) {
		summary := "Not available"
		if run.status == calendar.StatusBooked {
			summary = "Reserved"
		}
		event := out.AddEvent(fmt.Sprintf("%s-%s@%s", run.key, run.start.Time().Format(icsDateLayout), cal.PropertyID()))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(run.start.Time())
		event.SetAllDayEndAt(run.end.Time())
		event.SetSummary(summary)
	}

	var b bytes.Buffer
	if err := out.SerializeTo(&b, ics.WithNewLineWindows); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
