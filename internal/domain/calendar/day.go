package calendar

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid day status")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrPriceTooLarge     = fmt.Errorf("price cannot exceed %d", MaxPrice)
	ErrInvalidMinStay    = errors.New("minimum stay must be at least 1 night")
	ErrBookedWithoutRef  = errors.New("booked day requires a booking reference and guest name")
	ErrBookingFieldsOnly = errors.New("guest name and booking reference are only valid on booked days")
)

// MaxPrice caps any nightly amount so a year of nights plus fees stays well
// inside int64.
const MaxPrice int64 = 1_000_000_000_000

// DayStatus is a closed set. Every switch over it must list all three values.
type DayStatus string

const (
	StatusAvailable DayStatus = "available"
	StatusBlocked   DayStatus = "blocked"
	StatusBooked    DayStatus = "booked"
)

func ParseDayStatus(s string) (DayStatus, error) {
	status := DayStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s DayStatus) String() string {
	return string(s)
}

func (s DayStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBlocked, StatusBooked:
		return true
	default:
		return false
	}
}

// DaySettings is the per-day override stored in a calendar.
type DaySettings struct {
	Status     DayStatus  `json:"status"`
	Price      *int64     `json:"price,omitempty"`
	MinStay    *int       `json:"minStay,omitempty"`
	Note       *string    `json:"note,omitempty"`
	GuestName  *string    `json:"guestName,omitempty"`
	BookingRef *uuid.UUID `json:"bookingRef,omitempty"`
}

// AvailableDay is the implicit value of a date missing from the calendar.
func AvailableDay() DaySettings {
	return DaySettings{Status: StatusAvailable}
}

func (d DaySettings) IsBooked() bool {
	return d.Status == StatusBooked
}

func (d DaySettings) BookedBy(bookingID uuid.UUID) bool {
	return d.IsBooked() && d.BookingRef != nil && *d.BookingRef == bookingID
}

// IsDefault reports whether the record carries nothing beyond the implicit
// available-at-base-rate state, so it can be dropped from storage.
func (d DaySettings) IsDefault() bool {
	return d.Status == StatusAvailable &&
		d.Price == nil && d.MinStay == nil && d.Note == nil &&
		d.GuestName == nil && d.BookingRef == nil
}

func (d DaySettings) Validate() error {
	if !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	if d.Price != nil && *d.Price < 0 {
		return ErrNegativePrice
	}
	if d.Price != nil && *d.Price > MaxPrice {
		return ErrPriceTooLarge
	}
	if d.MinStay != nil && *d.MinStay < 1 {
		return ErrInvalidMinStay
	}
	switch d.Status {
	case StatusBooked:
		if d.BookingRef == nil || d.GuestName == nil {
			return ErrBookedWithoutRef
		}
	case StatusAvailable, StatusBlocked:
		if d.BookingRef != nil || d.GuestName != nil {
			return ErrBookingFieldsOnly
		}
	}
	return nil
}

// Clone deep-copies the optional fields so callers can mutate the result.
func (d DaySettings) Clone() DaySettings {
	out := DaySettings{Status: d.Status}
	if d.Price != nil {
		v := *d.Price
		out.Price = &v
	}
	if d.MinStay != nil {
		v := *d.MinStay
		out.MinStay = &v
	}
	if d.Note != nil {
		v := *d.Note
		out.Note = &v
	}
	if d.GuestName != nil {
		v := *d.GuestName
		out.GuestName = &v
	}
	if d.BookingRef != nil {
		v := *d.BookingRef
		out.BookingRef = &v
	}
	return out
}
