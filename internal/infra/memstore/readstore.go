package memstore

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
)

// PropertyReadStore, CalendarReadStore and BookingReadStore serve committed
// state only; they never wait on property locks.
type PropertyReadStore struct{ s *Store }

func NewPropertyReadStore(s *Store) *PropertyReadStore { return &PropertyReadStore{s: s} }

func (r *PropertyReadStore) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.properties[id]
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (r *PropertyReadStore) Search(_ context.Context, f queries.PropertyFilter) ([]*property.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(f.Location)
	var out []*property.Property
	for _, p := range r.s.properties {
		if needle != "" && !strings.Contains(strings.ToLower(p.Location()), needle) {
			continue
		}
		if f.MinGuests > 0 && p.MaxGuests() < f.MinGuests {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return keysetLess(propertyKey(out[j]), propertyKey(out[i]))
	})
	if f.After != nil {
		cut := sort.Search(len(out), func(i int) bool {
			return keysetLess(propertyKey(out[i]), *f.After)
		})
		out = out[cut:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type CalendarReadStore struct{ s *Store }

func NewCalendarReadStore(s *Store) *CalendarReadStore { return &CalendarReadStore{s: s} }

func (r *CalendarReadStore) Get(_ context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cal, ok := r.s.calendars[propertyID]
	if !ok {
		return nil, infra.WrapRepoErr("calendar not found", nil, infra.KindNotFound)
	}
	return cal, nil
}

func (r *CalendarReadStore) GetMany(_ context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*calendar.Calendar, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[uuid.UUID]*calendar.Calendar, len(propertyIDs))
	for _, id := range propertyIDs {
		if cal, ok := r.s.calendars[id]; ok {
			out[id] = cal
		}
	}
	return out, nil
}

type BookingReadStore struct{ s *Store }

func NewBookingReadStore(s *Store) *BookingReadStore { return &BookingReadStore{s: s} }

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func (r *BookingReadStore) List(_ context.Context, f queries.BookingFilter, after *queries.Keyset, limit int32) ([]*booking.Booking, error) {
	r.s.mu.RLock()
	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if matchesFilter(b, f) {
			out = append(out, cloneBooking(b))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return keysetLess(keyOf(out[j]), keyOf(out[i]))
	})

	if after != nil {
		start := len(out)
		for i, b := range out {
			if keysetLess(keyOf(b), *after) {
				start = i
				break
			}
		}
		out = out[start:]
	}
	if limit > 0 && len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func matchesFilter(b *booking.Booking, f queries.BookingFilter) bool {
	switch {
	case f.GuestID != nil:
		return b.Guest().ID == *f.GuestID
	case f.HostID != nil:
		return b.HostID() == *f.HostID
	case f.PropertyID != nil:
		return b.PropertyID() == *f.PropertyID
	default:
		return false
	}
}

// keyOf truncates to microseconds so cursors round-trip the same way they do
// against Postgres.
func keyOf(b *booking.Booking) queries.Keyset {
	return queries.Keyset{CreatedAt: b.CreatedAt().UTC().Truncate(time.Microsecond), ID: b.ID()}
}

func keysetLess(a, b queries.Keyset) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

func propertyKey(p *property.Property) queries.Keyset {
	return queries.Keyset{CreatedAt: p.CreatedAt(), ID: p.ID()}
}
