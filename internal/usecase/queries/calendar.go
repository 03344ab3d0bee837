package queries

import (
	"context"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultCalendarWindowDays = 90
	MaxCalendarWindowDays     = 366
)

var ErrWindowTooLarge = errs.Validation(errs.New("calendar window cannot exceed 366 days"))

type CalendarQueries interface {
	// Window returns every day of r; the view's To is the last day shown.
	// viewer may be nil for anonymous callers.
	Window(ctx context.Context, propertyID uuid.UUID, r calendar.DateRange, viewer *user.Actor) (*CalendarView, error)
	// ExportICS renders blocked and booked days from today onward.
	ExportICS(ctx context.Context, propertyID uuid.UUID) ([]byte, error)
}

type calendarQueriesImpl struct {
	properties PropertyReadStore
	calendars  CalendarReadStore
	clock      clock.Clock
}

func NewCalendarQueries(properties PropertyReadStore, calendars CalendarReadStore, clk clock.Clock) CalendarQueries {
	return &calendarQueriesImpl{
		properties: properties,
		calendars:  calendars,
		clock:      clk,
	}
}

func (q *calendarQueriesImpl) Window(ctx context.Context, propertyID uuid.UUID, r calendar.DateRange, viewer *user.Actor) (*CalendarView, error) {
	if r.Nights() > MaxCalendarWindowDays {
		return nil, ErrWindowTooLarge
	}

	p, err := q.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	cal, err := q.calendars.Get(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	private := viewer != nil && viewer.CanManage(p.HostID())
	rates := p.Rates()

	view := &CalendarView{
		PropertyID: propertyID,
		Version:    cal.Version(),
		From:       r.Start().String(),
		To:         r.End().AddDays(-1).String(),
		Currency:   rates.Currency,
		Days:       make([]CalendarDayView, 0, r.Nights()),
	}
	for _, d := range r.Dates() {
		s := cal.Day(d)
		price, source := cal.EffectivePrice(d, rates.WeekdayPrice, rates.WeekendPrice)
		day := CalendarDayView{
			Date:        d.String(),
			Status:      s.Status.String(),
			Price:       price,
			PriceSource: string(source),
			IsWeekend:   d.IsWeekend(),
			MinStay:     s.MinStay,
		}
		if private {
			day.Note = s.Note
			day.GuestName = s.GuestName
			day.BookingID = s.BookingRef
		}
		view.Days = append(view.Days, day)
	}
	return view, nil
}

func (q *calendarQueriesImpl) ExportICS(ctx context.Context, propertyID uuid.UUID) ([]byte, error) {
	p, err := q.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	cal, err := q.calendars.Get(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	now := q.clock.Now().UTC()
	out, err := renderICS(p.Title(), cal, calendar.DateOf(now), now)
	if err != nil {
		return nil, errs.Wrap(err, "render calendar export")
	}
	return out, nil
}
