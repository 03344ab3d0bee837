package response

import (
	"time"

	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
)

type PropertyResponse struct {
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

type NightResponse struct {
	Date      string `json:"date"`
	Price     int64  `json:"price"`
	IsWeekend bool   `json:"isWeekend"`
	Source    string `json:"source"`
}

type QuoteResponse struct {
	PropertyID    uuid.UUID       `json:"propertyId"`
	CheckIn       string          `json:"checkIn"`
	CheckOut      string          `json:"checkOut"`
	Guests        int             `json:"guests"`
	Nights        []NightResponse `json:"nights"`
	NightCount    int             `json:"nightCount"`
	BaseTotal     int64           `json:"baseTotal"`
	ExtraGuestFee int64           `json:"extraGuestFee"`
	ServiceFee    int64           `json:"serviceFee"`
	Tax           int64           `json:"tax"`
	GrandTotal    int64           `json:"grandTotal"`
	Currency      string          `json:"currency"`
}

type SearchResultResponse struct {
	Property PropertyResponse `json:"property"`
	Quote    *QuoteResponse   `json:"quote,omitempty"`
}

type CalendarDayResponse struct {
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

type CalendarResponse struct {
	PropertyID uuid.UUID             `json:"propertyId"`
	Version    int64                 `json:"version"`
	From       string                `json:"from"`
	To         string                `json:"to"`
	Currency   string                `json:"currency"`
	Days       []CalendarDayResponse `json:"days"`
}

type BulkEditResponse struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
	Version int64    `json:"version"`
}

type PruneResponse struct {
	Removed int   `json:"removed"`
	Version int64 `json:"version"`
}

func FromPropertyView(v *queries.PropertyView) *PropertyResponse {
	return copyInto[PropertyResponse](v)
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	return copyInto[QuoteResponse](v)
}

func FromSearchResults(results []*queries.SearchResult) []*SearchResultResponse {
	out := make([]*SearchResultResponse, len(results))
	for i, r := range results {
		out[i] = &SearchResultResponse{Property: *FromPropertyView(&r.Property)}
		if r.Quote != nil {
			out[i].Quote = FromQuoteView(r.Quote)
		}
	}
	return out
}

func FromCalendarView(v *queries.CalendarView) *CalendarResponse {
	return copyInto[CalendarResponse](v)
}

func FromBulkEditResult(r *commands.BulkEditResult) *BulkEditResponse {
	return copyInto[BulkEditResponse](r)
}

func FromPruneResult(r *commands.PruneResult) *PruneResponse {
	return copyInto[PruneResponse](r)
}
