package queries

import (
	"time"

	"github.com/google/uuid"
)

type PropertyView struct {
	ID              uuid.UUID `json:"id"`
	HostID          uuid.UUID `json:"hostId"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	WeekdayPrice    int64     `json:"weekdayPrice"`
	WeekendPrice    int64     `json:"weekendPrice"`
	ExtraGuestPrice int64     `json:"extraGuestPrice"`
	BaseGuests      int       `json:"baseGuests"`
	MaxGuests       int       `json:"maxGuests"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SearchResult carries a quote for the requested stay when dates were given.
type SearchResult struct {
	Property PropertyView `json:"property"`
	Quote    *QuoteView   `json:"quote,omitempty"`
}

type NightView struct {
	Date      string `json:"date"`
	Price     int64  `json:"price"`
	IsWeekend bool   `json:"isWeekend"`
	Source    string `json:"source"`
}

type QuoteView struct {
	PropertyID    uuid.UUID   `json:"propertyId"`
	CheckIn       string      `json:"checkIn"`
	CheckOut      string      `json:"checkOut"`
	Guests        int         `json:"guests"`
	Nights        []NightView `json:"nights"`
	NightCount    int         `json:"nightCount"`
	BaseTotal     int64       `json:"baseTotal"`
	ExtraGuestFee int64       `json:"extraGuestFee"`
	ServiceFee    int64       `json:"serviceFee"`
	Tax           int64       `json:"tax"`
	GrandTotal    int64       `json:"grandTotal"`
	Currency      string      `json:"currency"`
}

// CalendarDayView is one day of a calendar window. Host-only fields are left
// empty unless the viewer manages the property.
type CalendarDayView struct {
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	Price       int64      `json:"price"`
	PriceSource string     `json:"priceSource"`
	IsWeekend   bool       `json:"isWeekend"`
	MinStay     *int       `json:"minStay,omitempty"`
	Note        *string    `json:"note,omitempty"`
	GuestName   *string    `json:"guestName,omitempty"`
	BookingID   *uuid.UUID `json:"bookingId,omitempty"`
}

type CalendarView struct {
	PropertyID uuid.UUID         `json:"propertyId"`
	Version    int64             `json:"version"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Currency   string            `json:"currency"`
	Days       []CalendarDayView `json:"days"`
}

type BookingView struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	HostID     uuid.UUID `json:"hostId"`
	GuestID    uuid.UUID `json:"guestId"`
	GuestName  string    `json:"guestName"`
	GuestCount int       `json:"guestCount"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Nights     int       `json:"nights"`
	Total      int64     `json:"total"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
