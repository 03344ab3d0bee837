package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/pkg/errs"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionUpdatePrice    ActionType = "UPDATE_PRICE"
	ActionBlockDates     ActionType = "BLOCK_DATES"
	ActionUnblockDates   ActionType = "UNBLOCK_DATES"
	ActionApproveBooking ActionType = "APPROVE_BOOKING"
	ActionDeclineBooking ActionType = "DECLINE_BOOKING"
	ActionCancelBooking  ActionType = "CANCEL_BOOKING"
	ActionAddProperty    ActionType = "ADD_PROPERTY"
)

const DefaultBlockReason = "blocked"

var (
	ErrUnknownAction  = errs.Validation(errs.New("unknown action type"))
	ErrMissingPayload = errs.Validation(errs.New("action payload is required"))
)

// Action is one intent accepted by the Dispatcher. The set is closed: only
// types in this package implement it.
type Action interface {
	Type() ActionType
	isAction()
}

// UpdatePrice sets a nightly price on one date or on every day from
// StartDate to EndDate inclusive.
type UpdatePrice struct {
	PropertyID uuid.UUID      `json:"propertyId" validate:"required"`
	Price      *int64         `json:"price" validate:"required,gte=0,lte=1000000000000"`
	Date       *calendar.Date `json:"date,omitempty"`
	StartDate  *calendar.Date `json:"startDate,omitempty"`
	EndDate    *calendar.Date `json:"endDate,omitempty"`
	ApplyTo    string         `json:"applyTo,omitempty" validate:"omitempty,oneof=all weekdays weekends"`
}

type BlockDates struct {
	PropertyID uuid.UUID     `json:"propertyId" validate:"required"`
	StartDate  calendar.Date `json:"startDate"`
	EndDate    calendar.Date `json:"endDate"`
	Reason     string        `json:"reason,omitempty" validate:"max=500"`
}

type UnblockDates struct {
	PropertyID uuid.UUID     `json:"propertyId" validate:"required"`
	StartDate  calendar.Date `json:"startDate"`
	EndDate    calendar.Date `json:"endDate"`
}

type ApproveBooking struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
}

type DeclineBooking struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
}

type CancelBooking struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
}

type AddProperty struct {
	HostID          *uuid.UUID `json:"hostId,omitempty"`
	Title           string     `json:"title" validate:"required,max=200"`
	Location        string     `json:"location" validate:"required,max=200"`
	WeekdayPrice    int64      `json:"weekdayPrice" validate:"gte=0,lte=1000000000000"`
	WeekendPrice    int64      `json:"weekendPrice" validate:"gte=0,lte=1000000000000"`
	ExtraGuestPrice int64      `json:"extraGuestPrice" validate:"gte=0,lte=1000000000000"`
	BaseGuests      int        `json:"baseGuests" validate:"gte=0"`
	MaxGuests       int        `json:"maxGuests" validate:"required,gte=1"`
	Currency        string     `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

func (*UpdatePrice) Type() ActionType    { return ActionUpdatePrice }
func (*BlockDates) Type() ActionType     { return ActionBlockDates }
func (*UnblockDates) Type() ActionType   { return ActionUnblockDates }
func (*ApproveBooking) Type() ActionType { return ActionApproveBooking }
func (*DeclineBooking) Type() ActionType { return ActionDeclineBooking }
func (*CancelBooking) Type() ActionType  { return ActionCancelBooking }
func (*AddProperty) Type() ActionType    { return ActionAddProperty }

func (*UpdatePrice) isAction()    {}
func (*BlockDates) isAction()     {}
func (*UnblockDates) isAction()   {}
func (*ApproveBooking) isAction() {}
func (*DeclineBooking) isAction() {}
func (*CancelBooking) isAction()  {}
func (*AddProperty) isAction()    {}

// InclusiveRange turns a first/last day selection into the half-open range
// the calendar works with.
func InclusiveRange(first, last calendar.Date) (calendar.DateRange, error) {
	if first.IsZero() || last.IsZero() {
		return calendar.DateRange{}, errs.Validationf("startDate and endDate are required")
	}
	if last.Before(first) {
		return calendar.DateRange{}, errs.Validationf("endDate %s is before startDate %s", last, first)
	}
	return calendar.NewDateRange(first, last.AddDays(1))
}

func (a *UpdatePrice) dateRange() (calendar.DateRange, error) {
	switch {
	case a.Date != nil && (a.StartDate != nil || a.EndDate != nil):
		return calendar.DateRange{}, errs.Validationf("give either date or startDate/endDate, not both")
	case a.Date != nil:
		return calendar.SingleDay(*a.Date), nil
	case a.StartDate != nil && a.EndDate != nil:
		return InclusiveRange(*a.StartDate, *a.EndDate)
	default:
		return calendar.DateRange{}, errs.Validationf("date or startDate/endDate is required")
	}
}

func (a *UpdatePrice) filter() (calendar.DayFilter, error) {
	return calendar.ParseDayFilter(a.ApplyTo)
}

func (a *BlockDates) reason() string {
	if r := strings.TrimSpace(a.Reason); r != "" {
		return r
	}
	return DefaultBlockReason
}

type envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newAction(t ActionType) (Action, error) {
	switch t {
	case ActionUpdatePrice:
		return &UpdatePrice{}, nil
	case ActionBlockDates:
		return &BlockDates{}, nil
	case ActionUnblockDates:
		return &UnblockDates{}, nil
	case ActionApproveBooking:
		return &ApproveBooking{}, nil
	case ActionDeclineBooking:
		return &DeclineBooking{}, nil
	case ActionCancelBooking:
		return &CancelBooking{}, nil
	case ActionAddProperty:
		return &AddProperty{}, nil
	default:
		return nil, errs.Wrapf(ErrUnknownAction, "%q", t)
	}
}

// DecodeAction parses a {"type": ..., "payload": {...}} envelope into the
// matching Action. Unknown types and unknown payload fields are rejected.
func DecodeAction(raw []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Validationf("malformed action envelope: %v", err)
	}
	action, err := newAction(ActionType(strings.ToUpper(strings.TrimSpace(string(env.Type)))))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(env.Payload)) == 0 || bytes.Equal(bytes.TrimSpace(env.Payload), []byte("null")) {
		return nil, ErrMissingPayload
	}

	dec := json.NewDecoder(bytes.NewReader(env.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(action); err != nil {
		return nil, errs.Validation(fmt.Errorf("invalid %s payload: %w", action.Type(), err))
	}
	return action, nil
}
