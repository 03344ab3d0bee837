package booking

import (
	"errors"
	"strings"
	"time"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/domain/property"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrGuestNameRequired  = errors.New("guest display name is required")
	ErrGuestCount         = errors.New("guest count exceeds property capacity")
	ErrStartInPast        = errors.New("check-in cannot be in the past")
	ErrMinStayNotMet      = errors.New("stay is shorter than the minimum stay")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrNotPending         = errors.New("booking is not awaiting approval")
	ErrQuoteRangeMismatch = errors.New("quote does not cover the stay")
)

type Guest struct {
	ID          uuid.UUID
	DisplayName string
}

type Booking struct {
	id         uuid.UUID
	propertyID uuid.UUID
	hostID     uuid.UUID
	guest      Guest
	guestCount int
	stay       calendar.DateRange
	total      int64
	currency   string
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

type NewBookingParams struct {
	Property        *property.Property
	Guest           Guest
	GuestCount      int
	Stay            calendar.DateRange
	Quote           pricing.Quote
	MinStay         int
	RequireApproval bool
}

// NewBooking validates a stay request against the property and builds a
// booking priced from the quote.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	name := strings.TrimSpace(p.Guest.DisplayName)
	if name == "" {
		return nil, ErrGuestNameRequired
	}
	if !p.Property.Accommodates(p.GuestCount) {
		return nil, ErrGuestCount
	}
	if p.Stay.Start().Before(calendar.DateOf(now)) {
		return nil, ErrStartInPast
	}
	if p.Stay.Nights() < p.MinStay {
		return nil, ErrMinStayNotMet
	}
	if p.Quote.NightCount != p.Stay.Nights() {
		return nil, ErrQuoteRangeMismatch
	}

	status := StatusConfirmed
	if p.RequireApproval {
		status = StatusPending
	}

	return &Booking{
		id:         uuid.New(),
		propertyID: p.Property.ID(),
		hostID:     p.Property.HostID(),
		guest:      Guest{ID: p.Guest.ID, DisplayName: name},
		guestCount: p.GuestCount,
		stay:       p.Stay,
		total:      p.Quote.GrandTotal,
		currency:   p.Quote.Currency,
		status:     status,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, propertyID, hostID uuid.UUID,
	guest Guest,
	guestCount int,
	stay calendar.DateRange,
	total int64,
	currency string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		propertyID: propertyID,
		hostID:     hostID,
		guest:      guest,
		guestCount: guestCount,
		stay:       stay,
		total:      total,
		currency:   currency,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) PropertyID() uuid.UUID     { return b.propertyID }
func (b *Booking) HostID() uuid.UUID         { return b.hostID }
func (b *Booking) Guest() Guest              { return b.guest }
func (b *Booking) GuestCount() int           { return b.guestCount }
func (b *Booking) Stay() calendar.DateRange  { return b.stay }
func (b *Booking) Total() int64              { return b.total }
func (b *Booking) Currency() string          { return b.currency }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// Cancel moves a live booking to cancelled.
func (b *Booking) Cancel(now time.Time) error {
	switch b.status {
	case StatusPending, StatusConfirmed:
		b.status = StatusCancelled
		b.updatedAt = now
		return nil
	case StatusCancelled:
		return ErrAlreadyCancelled
	default:
		return ErrInvalidStatus
	}
}

func (b *Booking) Approve(now time.Time) error {
	switch b.status {
	case StatusPending:
		b.status = StatusConfirmed
		b.updatedAt = now
		return nil
	case StatusConfirmed, StatusCancelled:
		return ErrNotPending
	default:
		return ErrInvalidStatus
	}
}

func (b *Booking) Decline(now time.Time) error {
	switch b.status {
	case StatusPending:
		b.status = StatusCancelled
		b.updatedAt = now
		return nil
	case StatusConfirmed, StatusCancelled:
		return ErrNotPending
	default:
		return ErrInvalidStatus
	}
}
