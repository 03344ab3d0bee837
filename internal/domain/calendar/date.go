package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// MaxStayNights bounds a single booking or quote.
	MaxStayNights = 365

	secondsPerDay = 24 * 60 * 60
)

var (
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidRange = errors.New("start date must be before end date")
	ErrStayTooLong  = fmt.Errorf("a stay cannot exceed %d nights", MaxStayNights)
)

// Date is a civil calendar day with no time-of-day or zone.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

func (d Date) IsZero() bool            { return d.t.IsZero() }
func (d Date) Time() time.Time         { return d.t }
func (d Date) Weekday() time.Weekday   { return d.t.Weekday() }
func (d Date) AddDays(n int) Date      { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(other Date) bool  { return d.t.Before(other.t) }
func (d Date) After(other Date) bool   { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool   { return d.t.Equal(other.t) }
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

// IsWeekend reports whether the night starting on d is priced at the weekend
// rate. Friday, Saturday and Sunday are weekend nights.
func (d Date) IsWeekend() bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	return d.UnmarshalText([]byte(s))
}

// DateRange is the half-open interval [Start, End). End is the checkout day
// and is not occupied.
type DateRange struct {
	start Date
	end   Date
}

func NewDateRange(start, end Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidDate
	}
	if !start.Before(end) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: start, end: end}, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

// ParseStay parses a check-in/check-out pair and enforces MaxStayNights.
func ParseStay(checkIn, checkOut string) (DateRange, error) {
	r, err := ParseDateRange(checkIn, checkOut)
	if err != nil {
		return DateRange{}, err
	}
	if err := ValidateStay(r); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func ValidateStay(r DateRange) error {
	if r.Nights() > MaxStayNights {
		return ErrStayTooLong
	}
	return nil
}

// SingleDay is the range holding only d.
func SingleDay(d Date) DateRange {
	return DateRange{start: d, end: d.AddDays(1)}
}

func (r DateRange) Start() Date { return r.start }
func (r DateRange) End() Date   { return r.end }

func (r DateRange) Nights() int {
	return r.start.DaysUntil(r.end)
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.start) && d.Before(r.end)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Intersect returns the nights both ranges share, or false when they are
// disjoint.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	out := r
	if other.start.After(out.start) {
		out.start = other.start
	}
	if other.end.Before(out.end) {
		out.end = other.end
	}
	return out, true
}

// Dates lists every day in the range in ascending order.
func (r DateRange) Dates() []Date {
	dates := make([]Date, 0, r.Nights())
	for d := r.start; d.Before(r.end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start, r.end)
}
