package request

import (
	"strings"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut   string    `json:"checkOut" binding:"required,datetime=2006-01-02"`
	GuestName  string    `json:"guestName" binding:"required,max=100"`
	GuestCount int       `json:"guestCount" binding:"required,gte=1,lte=100"`
}

func (r CreateBookingRequest) ToInput(guestID uuid.UUID) (commands.CreateBookingInput, error) {
	stay, err := calendar.ParseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.CreateBookingInput{}, errs.Validation(err)
	}
	return commands.CreateBookingInput{
		PropertyID: r.PropertyID,
		Stay:       stay,
		Guest: booking.Guest{
			ID:          guestID,
			DisplayName: strings.TrimSpace(r.GuestName),
		},
		GuestCount: r.GuestCount,
	}, nil
}

type ListBookingsQuery struct {
	As     string `form:"as" binding:"omitempty,oneof=guest host"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
}
