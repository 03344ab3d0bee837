package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBulkEdit     = errors.New("bulk edit changes nothing")
	ErrBulkStatusBooked  = errors.New("bulk edit cannot set status booked")
	ErrPriceAndClear     = errors.New("price and clearPrice are mutually exclusive")
	ErrInvalidDayFilter  = errors.New("day filter must be all, weekdays or weekends")
	ErrBulkRangeTooLarge = errors.New("bulk edit range too large")
)

// MaxBulkNights bounds a single bulk edit to roughly two years.
const MaxBulkNights = 731

type DayFilter string

const (
	FilterAll      DayFilter = "all"
	FilterWeekdays DayFilter = "weekdays"
	FilterWeekends DayFilter = "weekends"
)

func ParseDayFilter(s string) (DayFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := DayFilter(s)
	switch f {
	case FilterAll, FilterWeekdays, FilterWeekends:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDayFilter, s)
	}
}

func (f DayFilter) Matches(d Date) bool {
	switch f {
	case FilterWeekdays:
		return !d.IsWeekend()
	case FilterWeekends:
		return d.IsWeekend()
	default:
		return true
	}
}

// BulkEdit is a field-wise merge applied to every selected day. Nil fields
// are left as they are.
type BulkEdit struct {
	Price      *int64
	Status     *DayStatus
	Note       *string
	MinStay    *int
	ClearPrice bool
	ClearNote  bool
	// ClearBlockNote drops the note only on days that were blocked before
	// the edit, leaving notes on open days alone.
	ClearBlockNote bool
}

func (e BulkEdit) Validate() error {
	if e.Price == nil && e.Status == nil && e.Note == nil && e.MinStay == nil && !e.ClearPrice && !e.ClearNote && !e.ClearBlockNote {
		return ErrEmptyBulkEdit
	}
	if e.Price != nil && e.ClearPrice {
		return ErrPriceAndClear
	}
	if e.Price != nil && *e.Price < 0 {
		return ErrNegativePrice
	}
	if e.Price != nil && *e.Price > MaxPrice {
		return ErrPriceTooLarge
	}
	if e.MinStay != nil && *e.MinStay < 1 {
		return ErrInvalidMinStay
	}
	if e.Status != nil {
		switch *e.Status {
		case StatusAvailable, StatusBlocked:
		case StatusBooked:
			return ErrBulkStatusBooked
		default:
			return ErrInvalidStatus
		}
	}
	return nil
}

func (e BulkEdit) merge(s DaySettings) DaySettings {
	out := s.Clone()
	if e.ClearPrice {
		out.Price = nil
	}
	if e.Price != nil {
		v := *e.Price
		out.Price = &v
	}
	if e.Status != nil {
		out.Status = *e.Status
	}
	if e.ClearNote || (e.ClearBlockNote && s.Status == StatusBlocked) {
		out.Note = nil
	}
	if e.Note != nil {
		v := *e.Note
		out.Note = &v
	}
	if e.MinStay != nil {
		v := *e.MinStay
		out.MinStay = &v
	}
	return out
}

type BulkResult struct {
	Patch   Patch
	Updated []Date
	Skipped []Date
}

// BuildBulkPatch selects the days of r matching filter and merges edit into
// each one. Booked days are never included; they are reported in Skipped.
func BuildBulkPatch(cal *Calendar, r DateRange, edit BulkEdit, filter DayFilter) (BulkResult, error) {
	if err := edit.Validate(); err != nil {
		return BulkResult{}, err
	}
	if r.Nights() > MaxBulkNights {
		return BulkResult{}, ErrBulkRangeTooLarge
	}
	if filter == "" {
		filter = FilterAll
	}

	res := BulkResult{Patch: NewPatch(EditOrigin())}
	for _, d := range r.Dates() {
		if !filter.Matches(d) {
			continue
		}
		current := cal.Day(d)
		switch current.Status {
		case StatusBooked:
			res.Skipped = append(res.Skipped, d)
			continue
		case StatusAvailable, StatusBlocked:
		}
		res.Patch.Set(d, edit.merge(current))
		res.Updated = append(res.Updated, d)
	}
	return res, nil
}
