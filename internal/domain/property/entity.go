package property

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stay-calendar/internal/domain/calendar"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrLocationRequired   = errors.New("location is required")
	ErrNegativeRate       = errors.New("rates cannot be negative")
	ErrRateTooLarge       = fmt.Errorf("rates cannot exceed %d", calendar.MaxPrice)
	ErrInvalidGuestLimits = errors.New("base guests must be between 1 and max guests")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter ISO code")
)

const DefaultCurrency = "JPY"

// Rates are whole amounts in the smallest unit of Currency.
type Rates struct {
	WeekdayPrice    int64
	WeekendPrice    int64
	ExtraGuestPrice int64
	BaseGuests      int
	Currency        string
}

type Property struct {
	id        uuid.UUID
	hostID    uuid.UUID
	title     string
	location  string
	rates     Rates
	maxGuests int
	createdAt time.Time
	updatedAt time.Time
}

type NewPropertyParams struct {
	HostID          uuid.UUID
	Title           string
	Location        string
	WeekdayPrice    int64
	WeekendPrice    int64
	ExtraGuestPrice int64
	BaseGuests      int
	MaxGuests       int
	Currency        string
}

func NewProperty(p NewPropertyParams, now time.Time) (*Property, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	location := strings.TrimSpace(p.Location)
	if location == "" {
		return nil, ErrLocationRequired
	}
	if p.WeekdayPrice < 0 || p.WeekendPrice < 0 || p.ExtraGuestPrice < 0 {
		return nil, ErrNegativeRate
	}
	if p.WeekdayPrice > calendar.MaxPrice || p.WeekendPrice > calendar.MaxPrice || p.ExtraGuestPrice > calendar.MaxPrice {
		return nil, ErrRateTooLarge
	}
	baseGuests := p.BaseGuests
	if baseGuests == 0 {
		baseGuests = 1
	}
	if baseGuests < 1 || p.MaxGuests < baseGuests {
		return nil, ErrInvalidGuestLimits
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}

	return &Property{
		id:       uuid.New(),
		hostID:   p.HostID,
		title:    title,
		location: location,
		rates: Rates{
			WeekdayPrice:    p.WeekdayPrice,
			WeekendPrice:    p.WeekendPrice,
			ExtraGuestPrice: p.ExtraGuestPrice,
			BaseGuests:      baseGuests,
			Currency:        currency,
		},
		maxGuests: p.MaxGuests,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructProperty(
	id, hostID uuid.UUID,
	title, location string,
	rates Rates,
	maxGuests int,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:        id,
		hostID:    hostID,
		title:     title,
		location:  location,
		rates:     rates,
		maxGuests: maxGuests,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p *Property) ID() uuid.UUID        { return p.id }
func (p *Property) HostID() uuid.UUID    { return p.hostID }
func (p *Property) Title() string        { return p.title }
func (p *Property) Location() string     { return p.location }
func (p *Property) Rates() Rates         { return p.rates }
func (p *Property) MaxGuests() int       { return p.maxGuests }
func (p *Property) CreatedAt() time.Time { return p.createdAt }
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

func (p *Property) IsHostedBy(userID uuid.UUID) bool {
	return p.hostID == userID
}

func (p *Property) Accommodates(guests int) bool {
	return guests >= 1 && guests <= p.maxGuests
}
