package commands

import (
	"context"
	"log/slog"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

type DispatchResult struct {
	Type   ActionType `json:"type"`
	Result any        `json:"result"`
}

type ActionDispatcher interface {
	Dispatch(ctx context.Context, actor user.Actor, action Action) (*DispatchResult, error)
}

// Dispatcher routes each Action to exactly one calendar, booking or property
// command. It checks payload shape and fills defaults; everything else is the
// commands' job.
type Dispatcher struct {
	calendars  CalendarCommands
	bookings   BookingCommands
	properties PropertyCommands
	validate   *validator.Validate
}

func NewDispatcher(calendars CalendarCommands, bookings BookingCommands, properties PropertyCommands) *Dispatcher {
	return &Dispatcher{
		calendars:  calendars,
		bookings:   bookings,
		properties: properties,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, actor user.Actor, action Action) (*DispatchResult, error) {
	if action == nil {
		return nil, ErrMissingPayload
	}
	if err := d.validate.Struct(action); err != nil {
		return nil, errs.Validation(errs.Wrapf(err, "invalid %s payload", action.Type()))
	}

	result, err := d.route(ctx, actor, action)
	if err != nil {
		slog.Info("action failed",
			"type", string(action.Type()),
			"actor_id", actor.ID.String(),
			"error", err.Error())
		return nil, err
	}
	return &DispatchResult{Type: action.Type(), Result: result}, nil
}

func (d *Dispatcher) route(ctx context.Context, actor user.Actor, action Action) (any, error) {
	switch a := action.(type) {
	case *UpdatePrice:
		r, err := a.dateRange()
		if err != nil {
			return nil, errs.Validation(err)
		}
		filter, err := a.filter()
		if err != nil {
			return nil, errs.Validation(err)
		}
		return d.calendars.ApplyBulkEdit(ctx, actor, BulkEditInput{
			PropertyID: a.PropertyID,
			Range:      r,
			Edit:       calendar.BulkEdit{Price: a.Price},
			Filter:     filter,
		})

	case *BlockDates:
		r, err := InclusiveRange(a.StartDate, a.EndDate)
		if err != nil {
			return nil, errs.Validation(err)
		}
		status := calendar.StatusBlocked
		reason := a.reason()
		return d.calendars.ApplyBulkEdit(ctx, actor, BulkEditInput{
			PropertyID: a.PropertyID,
			Range:      r,
			Edit:       calendar.BulkEdit{Status: &status, Note: &reason},
			Filter:     calendar.FilterAll,
		})

	case *UnblockDates:
		r, err := InclusiveRange(a.StartDate, a.EndDate)
		if err != nil {
			return nil, errs.Validation(err)
		}
		status := calendar.StatusAvailable
		return d.calendars.ApplyBulkEdit(ctx, actor, BulkEditInput{
			PropertyID: a.PropertyID,
			Range:      r,
			Edit:       calendar.BulkEdit{Status: &status, ClearBlockNote: true},
			Filter:     calendar.FilterAll,
		})

	case *ApproveBooking:
		return d.bookings.ApproveBooking(ctx, actor, a.BookingID)

	case *DeclineBooking:
		return d.bookings.DeclineBooking(ctx, actor, a.BookingID)

	case *CancelBooking:
		return d.bookings.CancelBooking(ctx, actor, a.BookingID)

	case *AddProperty:
		return d.properties.AddProperty(ctx, actor, AddPropertyInput{
			HostID:          a.HostID,
			Title:           a.Title,
			Location:        a.Location,
			WeekdayPrice:    a.WeekdayPrice,
			WeekendPrice:    a.WeekendPrice,
			ExtraGuestPrice: a.ExtraGuestPrice,
			BaseGuests:      a.BaseGuests,
			MaxGuests:       a.MaxGuests,
			Currency:        a.Currency,
		})

	default:
		return nil, errs.Wrapf(ErrUnknownAction, "%T", action)
	}
}
