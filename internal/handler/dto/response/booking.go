package response

import (
	"time"

	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
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

type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Quote   QuoteResponse   `json:"quote"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return copyInto[BookingResponse](v)
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: *FromBookingView(r.Booking),
		Quote:   *FromQuoteView(r.Quote),
	}
}

func FromBookingPage(views []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	resp := &BookingListResponse{Items: make([]*BookingResponse, len(views))}
	for i, v := range views {
		resp.Items[i] = FromBookingView(v)
	}
	if next != nil && next.After != "" {
		after := next.After
		resp.NextCursor = &after
	}
	return resp
}
