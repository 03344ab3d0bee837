package queries

import (
	"context"
	"log/slog"
	"strings"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	maxSearchResults = 100
	searchPageSize   = 100
)

var ErrGuestsExceedCapacity = errs.Validation(errs.New("guest count exceeds property capacity"))

// PropertyFilter pages through matches ordered by created_at DESC, id DESC.
// After is the last row of the previous page.
type PropertyFilter struct {
	Location  string
	MinGuests int
	Limit     int
	After     *Keyset
}

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	Search(ctx context.Context, filter PropertyFilter) ([]*property.Property, error)
}

type CalendarReadStore interface {
	Get(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error)
	GetMany(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*calendar.Calendar, error)
}

type SearchInput struct {
	Location  string
	Stay      *calendar.DateRange
	MinGuests int
	Limit     int
}

type PropertyQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
	Search(ctx context.Context, in SearchInput) ([]*SearchResult, error)
	Quote(ctx context.Context, propertyID uuid.UUID, stay calendar.DateRange, guests int) (*QuoteView, error)
}

type propertyQueriesImpl struct {
	properties PropertyReadStore
	calendars  CalendarReadStore
	calculator *pricing.Calculator
}

func NewPropertyQueries(properties PropertyReadStore, calendars CalendarReadStore, calculator *pricing.Calculator) PropertyQueries {
	return &propertyQueriesImpl{
		properties: properties,
		calendars:  calendars,
		calculator: calculator,
	}
}

func (q *propertyQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error) {
	p, err := q.properties.FindByID(ctx, id)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	view := ToPropertyView(p)
	return &view, nil
}

// Search filters by location and capacity in the store, then drops
// properties whose calendar is not free for the whole stay. Candidate pages
// are read until limit results are found or the matches run out.
func (q *propertyQueriesImpl) Search(ctx context.Context, in SearchInput) ([]*SearchResult, error) {
	limit := in.Limit
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	if in.MinGuests < 0 {
		return nil, errs.Validationf("minGuests cannot be negative")
	}

	filter := PropertyFilter{
		Location:  strings.TrimSpace(in.Location),
		MinGuests: in.MinGuests,
		Limit:     limit,
	}
	if in.Stay == nil {
		candidates, err := q.properties.Search(ctx, filter)
		if err != nil {
			return nil, shared.TranslateStoreErr(err)
		}
		out := make([]*SearchResult, len(candidates))
		for i, p := range candidates {
			out[i] = &SearchResult{Property: ToPropertyView(p)}
		}
		return out, nil
	}
	if err := calendar.ValidateStay(*in.Stay); err != nil {
		return nil, errs.Validation(err)
	}

	filter.Limit = searchPageSize
	guests := max(in.MinGuests, 1)
	out := make([]*SearchResult, 0, limit)
	scanned := 0
	for len(out) < limit {
		candidates, err := q.properties.Search(ctx, filter)
		if err != nil {
			return nil, shared.TranslateStoreErr(err)
		}
		scanned += len(candidates)

		available, err := q.availableOnly(ctx, candidates, *in.Stay, guests, limit-len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, available...)

		if len(candidates) < filter.Limit {
			break
		}
		last := candidates[len(candidates)-1]
		filter.After = &Keyset{CreatedAt: last.CreatedAt(), ID: last.ID()}
	}

	slog.Debug("property search",
		"location", in.Location,
		"stay", in.Stay.String(),
		"candidates", scanned,
		"available", len(out))
	return out, nil
}

// availableOnly quotes the candidates free for the whole stay, stopping once
// want results are collected.
func (q *propertyQueriesImpl) availableOnly(ctx context.Context, candidates []*property.Property, stay calendar.DateRange, guests, want int) ([]*SearchResult, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(candidates))
	for i, p := range candidates {
		ids[i] = p.ID()
	}
	cals, err := q.calendars.GetMany(ctx, ids)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	var out []*SearchResult
	for _, p := range candidates {
		if len(out) == want {
			break
		}
		cal, ok := cals[p.ID()]
		if !ok {
			cal = calendar.NewCalendar(p.ID())
		}
		if !calendar.IsRangeFree(cal, stay) {
			continue
		}
		if stay.Nights() < calendar.RequiredMinStay(cal, stay) {
			continue
		}
		quote, err := q.calculator.Quote(p.Rates(), cal, stay, guests)
		if err != nil {
			return nil, errs.Validation(err)
		}
		qv := ToQuoteView(p.ID(), stay, guests, quote)
		out = append(out, &SearchResult{Property: ToPropertyView(p), Quote: &qv})
	}
	return out, nil
}

// Quote prices a stay without reserving it. Availability is not checked.
func (q *propertyQueriesImpl) Quote(ctx context.Context, propertyID uuid.UUID, stay calendar.DateRange, guests int) (*QuoteView, error) {
	p, err := q.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	if guests > p.MaxGuests() {
		return nil, ErrGuestsExceedCapacity
	}

	cal, err := q.calendars.Get(ctx, propertyID)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	quote, err := q.calculator.Quote(p.Rates(), cal, stay, guests)
	if err != nil {
		return nil, errs.Validation(err)
	}
	view := ToQuoteView(propertyID, stay, guests, quote)
	return &view, nil
}

func ToPropertyView(p *property.Property) PropertyView {
	rates := p.Rates()
	return PropertyView{
		ID:              p.ID(),
		HostID:          p.HostID(),
		Title:           p.Title(),
		Location:        p.Location(),
		WeekdayPrice:    rates.WeekdayPrice,
		WeekendPrice:    rates.WeekendPrice,
		ExtraGuestPrice: rates.ExtraGuestPrice,
		BaseGuests:      rates.BaseGuests,
		MaxGuests:       p.MaxGuests(),
		Currency:        rates.Currency,
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func ToQuoteView(propertyID uuid.UUID, stay calendar.DateRange, guests int, q pricing.Quote) QuoteView {
	nights := make([]NightView, len(q.Nights))
	for i, n := range q.Nights {
		nights[i] = NightView{
			Date:      n.Date.String(),
			Price:     n.Price,
			IsWeekend: n.IsWeekend,
			Source:    string(n.Source),
		}
	}
	return QuoteView{
		PropertyID:    propertyID,
		CheckIn:       stay.Start().String(),
		CheckOut:      stay.End().String(),
		Guests:        guests,
		Nights:        nights,
		NightCount:    q.NightCount,
		BaseTotal:     q.BaseTotal,
		ExtraGuestFee: q.ExtraGuestFee,
		ServiceFee:    q.ServiceFee,
		Tax:           q.Tax,
		GrandTotal:    q.GrandTotal,
		Currency:      q.Currency,
	}
}
