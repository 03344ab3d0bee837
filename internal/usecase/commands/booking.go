package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/queries"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBookingForbidden = errs.Mark(errs.New("actor may not change this booking"), errs.ErrForbidden)

type CreateBookingInput struct {
	PropertyID uuid.UUID
	Stay       calendar.DateRange
	Guest      booking.Guest
	GuestCount int
}

type CreateBookingResult struct {
	Booking *queries.BookingView
	Quote   *queries.QuoteView
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error)
	ApproveBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error)
	DeclineBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow             shared.UnitOfWork
	calculator      *pricing.Calculator
	clock           clock.Clock
	requireApproval bool
}

func NewBookingCommands(uow shared.UnitOfWork, calculator *pricing.Calculator, clk clock.Clock, requireApproval bool) BookingCommands {
	return &bookingCommandsImpl{
		uow:             uow,
		calculator:      calculator,
		clock:           clk,
		requireApproval: requireApproval,
	}
}

// CreateBooking reserves a stay. The booking row and the calendar marking
// commit together; a conflict found at write time rolls both back.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	if err := calendar.ValidateStay(in.Stay); err != nil {
		return nil, errs.Validation(err)
	}
	now := c.clock.Now()

	var (
		created *booking.Booking
		quote   pricing.Quote
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Properties().FindByID(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if !p.Accommodates(in.GuestCount) {
			return errs.Validation(booking.ErrGuestCount)
		}

		cal, err := tx.Calendars().Get(ctx, p.ID())
		if err != nil {
			return err
		}
		if unavailable := calendar.UnavailableDates(cal, in.Stay); len(unavailable) > 0 {
			return errs.NewConflictError(unavailable)
		}

		quote, err = c.calculator.Quote(p.Rates(), cal, in.Stay, in.GuestCount)
		if err != nil {
			return errs.Validation(err)
		}

		b, err := booking.NewBooking(booking.NewBookingParams{
			Property:        p,
			Guest:           in.Guest,
			GuestCount:      in.GuestCount,
			Stay:            in.Stay,
			Quote:           quote,
			MinStay:         calendar.RequiredMinStay(cal, in.Stay),
			RequireApproval: c.requireApproval,
		}, now)
		if err != nil {
			return errs.Validation(err)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		patch := calendar.BookingPatch(cal, in.Stay, b.ID(), b.Guest().DisplayName)
		if _, err := tx.Calendars().Apply(ctx, p.ID(), cal.Version(), patch); err != nil {
			return err
		}
		if err := enqueueBookingEvent(ctx, tx, shared.TopicBookingCreated, b, now); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		slog.Info("booking rejected",
			"property_id", in.PropertyID.String(),
			"stay", in.Stay.String(),
			"error", err.Error())
		return nil, shared.TranslateStoreErr(err)
	}

	slog.Info("booking created",
		"booking_id", created.ID().String(),
		"property_id", created.PropertyID().String(),
		"stay", created.Stay().String(),
		"status", created.Status().String(),
		"total", created.Total())

	view := queries.ToBookingView(created)
	qv := queries.ToQuoteView(created.PropertyID(), in.Stay, in.GuestCount, quote)
	return &CreateBookingResult{Booking: &view, Quote: &qv}, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, transition{
		name:      "cancel",
		topic:     shared.TopicBookingCancelled,
		authorize: func(b *booking.Booking) bool { return actor.CanCancel(b.Guest().ID, b.HostID()) },
		apply:     (*booking.Booking).Cancel,
	})
}

func (c *bookingCommandsImpl) ApproveBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, transition{
		name:      "approve",
		topic:     shared.TopicBookingConfirmed,
		authorize: func(b *booking.Booking) bool { return actor.CanManage(b.HostID()) },
		apply:     (*booking.Booking).Approve,
	})
}

func (c *bookingCommandsImpl) DeclineBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, transition{
		name:      "decline",
		topic:     shared.TopicBookingCancelled,
		authorize: func(b *booking.Booking) bool { return actor.CanManage(b.HostID()) },
		apply:     (*booking.Booking).Decline,
	})
}

type transition struct {
	name      string
	topic     string
	authorize func(b *booking.Booking) bool
	apply     func(b *booking.Booking, now time.Time) error
}

// transition changes a booking's status and, when the booking stops holding
// its dates, returns exactly the days carrying its reference to available.
func (c *bookingCommandsImpl) transition(ctx context.Context, bookingID uuid.UUID, t transition) (*queries.BookingView, error) {
	now := c.clock.Now()

	var (
		updated  *booking.Booking
		released int
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !t.authorize(b) {
			return ErrBookingForbidden
		}

		held := b.Status().HoldsDates()
		if err := t.apply(b, now); err != nil {
			return errs.Validation(err)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return err
		}

		if held && !b.Status().HoldsDates() {
			cal, err := tx.Calendars().Get(ctx, b.PropertyID())
			if err != nil {
				return err
			}
			patch := calendar.ReleasePatch(cal, b.ID())
			if patch.Len() > 0 {
				if _, err := tx.Calendars().Apply(ctx, b.PropertyID(), cal.Version(), patch); err != nil {
					return err
				}
			}
			released = patch.Len()
		}

		if err := enqueueBookingEvent(ctx, tx, t.topic, b, now); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	slog.Info("booking "+t.name,
		"booking_id", updated.ID().String(),
		"property_id", updated.PropertyID().String(),
		"status", updated.Status().String(),
		"released_days", released)

	view := queries.ToBookingView(updated)
	return &view, nil
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, now time.Time) error {
	payload, err := json.Marshal(shared.BookingNotification{
		BookingID:  b.ID(),
		PropertyID: b.PropertyID(),
		HostID:     b.HostID(),
		GuestID:    b.Guest().ID,
		Start:      b.Stay().Start().String(),
		End:        b.Stay().End().String(),
		Status:     b.Status().String(),
		OccurredAt: now,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode booking notification")
	}
	return tx.Notifications().CreateJob(ctx, shared.NotificationKindEmail, topic, payload, now)
}
