package request

import (
	"strings"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"

	"github.com/google/uuid"
)

type SearchPropertiesQuery struct {
	Location  string `form:"location" binding:"omitempty,max=200"`
	CheckIn   string `form:"checkIn" binding:"omitempty,datetime=2006-01-02"`
	CheckOut  string `form:"checkOut" binding:"omitempty,datetime=2006-01-02"`
	MinGuests int    `form:"minGuests" binding:"omitempty,gte=0,lte=100"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// Stay is nil when neither date is given.
func (q SearchPropertiesQuery) Stay() (*calendar.DateRange, error) {
	if q.CheckIn == "" && q.CheckOut == "" {
		return nil, nil
	}
	if q.CheckIn == "" || q.CheckOut == "" {
		return nil, errs.Validationf("checkIn and checkOut must be given together")
	}
	r, err := calendar.ParseStay(q.CheckIn, q.CheckOut)
	if err != nil {
		return nil, errs.Validation(err)
	}
	return &r, nil
}

type QuoteQuery struct {
	CheckIn  string `form:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut string `form:"checkOut" binding:"required,datetime=2006-01-02"`
	Guests   int    `form:"guests" binding:"omitempty,gte=1,lte=100"`
}

func (q QuoteQuery) Stay() (calendar.DateRange, error) {
	r, err := calendar.ParseStay(q.CheckIn, q.CheckOut)
	if err != nil {
		return calendar.DateRange{}, errs.Validation(err)
	}
	return r, nil
}

func (q QuoteQuery) GuestCount() int {
	if q.Guests == 0 {
		return 1
	}
	return q.Guests
}

// CalendarQuery selects days From..To inclusive.
type CalendarQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

func (q CalendarQuery) Window(today calendar.Date, defaultDays int) (calendar.DateRange, error) {
	from := today
	if q.From != "" {
		d, err := calendar.ParseDate(q.From)
		if err != nil {
			return calendar.DateRange{}, errs.Validation(err)
		}
		from = d
	}
	if q.To == "" {
		return calendar.NewDateRange(from, from.AddDays(defaultDays))
	}
	to, err := calendar.ParseDate(q.To)
	if err != nil {
		return calendar.DateRange{}, errs.Validation(err)
	}
	return commands.InclusiveRange(from, to)
}

// BulkEditRequest edits every selected day from StartDate to EndDate
// inclusive. Booked days are skipped.
type BulkEditRequest struct {
	StartDate  string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" binding:"required,datetime=2006-01-02"`
	ApplyTo    string  `json:"applyTo,omitempty" binding:"omitempty,oneof=all weekdays weekends"`
	Price      *int64  `json:"price,omitempty" binding:"omitempty,gte=0,lte=1000000000000"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=available blocked"`
	Note       *string `json:"note,omitempty" binding:"omitempty,max=500"`
	MinStay    *int    `json:"minStay,omitempty" binding:"omitempty,gte=1,lte=365"`
	ClearPrice bool    `json:"clearPrice,omitempty"`
	ClearNote  bool    `json:"clearNote,omitempty"`
}

func (r BulkEditRequest) ToInput(propertyID uuid.UUID) (commands.BulkEditInput, error) {
	first, err := calendar.ParseDate(r.StartDate)
	if err != nil {
		return commands.BulkEditInput{}, errs.Validation(err)
	}
	last, err := calendar.ParseDate(r.EndDate)
	if err != nil {
		return commands.BulkEditInput{}, errs.Validation(err)
	}
	rng, err := commands.InclusiveRange(first, last)
	if err != nil {
		return commands.BulkEditInput{}, errs.Validation(err)
	}
	filter, err := calendar.ParseDayFilter(r.ApplyTo)
	if err != nil {
		return commands.BulkEditInput{}, errs.Validation(err)
	}

	edit := calendar.BulkEdit{
		Price:      r.Price,
		MinStay:    r.MinStay,
		ClearPrice: r.ClearPrice,
		ClearNote:  r.ClearNote,
	}
	if r.Status != nil {
		status, err := calendar.ParseDayStatus(*r.Status)
		if err != nil {
			return commands.BulkEditInput{}, errs.Validation(err)
		}
		edit.Status = &status
	}
	if r.Note != nil {
		note := strings.TrimSpace(*r.Note)
		edit.Note = &note
	}

	return commands.BulkEditInput{
		PropertyID: propertyID,
		Range:      rng,
		Edit:       edit,
		Filter:     filter,
	}, nil
}

type PruneRequest struct {
	Before string `json:"before" binding:"required,datetime=2006-01-02"`
}

func (r PruneRequest) Cutoff() (calendar.Date, error) {
	d, err := calendar.ParseDate(r.Before)
	if err != nil {
		return calendar.Date{}, errs.Validation(err)
	}
	return d, nil
}

type AddPropertyRequest struct {
	HostID          *uuid.UUID `json:"hostId,omitempty"`
	Title           string     `json:"title" binding:"required,max=200"`
	Location        string     `json:"location" binding:"required,max=200"`
	WeekdayPrice    int64      `json:"weekdayPrice" binding:"gte=0,lte=1000000000000"`
	WeekendPrice    int64      `json:"weekendPrice" binding:"gte=0,lte=1000000000000"`
	ExtraGuestPrice int64      `json:"extraGuestPrice" binding:"gte=0,lte=1000000000000"`
	BaseGuests      int        `json:"baseGuests" binding:"gte=0"`
	MaxGuests       int        `json:"maxGuests" binding:"required,gte=1,lte=100"`
	Currency        string     `json:"currency" binding:"omitempty,len=3,alpha"`
}

func (r AddPropertyRequest) ToInput() commands.AddPropertyInput {
	return commands.AddPropertyInput{
		HostID:          r.HostID,
		Title:           r.Title,
		Location:        r.Location,
		WeekdayPrice:    r.WeekdayPrice,
		WeekendPrice:    r.WeekendPrice,
		ExtraGuestPrice: r.ExtraGuestPrice,
		BaseGuests:      r.BaseGuests,
		MaxGuests:       r.MaxGuests,
		Currency:        r.Currency,
	}
}
