//go:build unit || e2e

package builder

import (
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	reqdto "stay-calendar/internal/handler/dto/request"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	HostID     uuid.UUID
	GuestID    uuid.UUID
	GuestName  string
	GuestCount int
	CheckIn    string
	CheckOut   string
	Total      int64
	Currency   string
	Status     booking.Status
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		HostID:     uuid.New(),
		GuestID:    uuid.New(),
		GuestName:  "Aiko",
		GuestCount: 2,
		CheckIn:    "2030-03-04",
		CheckOut:   "2030-03-06",
		Total:      25000,
		Currency:   "JPY",
		Status:     booking.StatusConfirmed,
		CreatedAt:  created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Stay() calendar.DateRange {
	r, err := calendar.ParseDateRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return r
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.PropertyID, b.HostID,
		booking.Guest{ID: b.GuestID, DisplayName: b.GuestName},
		b.GuestCount,
		b.Stay(),
		b.Total,
		b.Currency,
		b.Status,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	v := queries.ToBookingView(b.BuildDomain())
	return &v
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  b.GuestName,
		GuestCount: b.GuestCount,
	}
}
