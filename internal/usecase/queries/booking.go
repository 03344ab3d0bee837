package queries

import (
	"context"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBookingAccess = errs.Mark(errs.New("booking access denied"), errs.ErrForbidden)

type ListAs string

const (
	ListAsGuest ListAs = "guest"
	ListAsHost  ListAs = "host"
)

func ParseListAs(s string) (ListAs, error) {
	switch ListAs(s) {
	case "", ListAsGuest:
		return ListAsGuest, nil
	case ListAsHost:
		return ListAsHost, nil
	default:
		return "", errs.Validationf("as must be guest or host, got %q", s)
	}
}

// BookingFilter selects bookings by exactly one owner column.
type BookingFilter struct {
	GuestID    *uuid.UUID
	HostID     *uuid.UUID
	PropertyID *uuid.UUID
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	List(ctx context.Context, filter BookingFilter, after *Keyset, limit int32) ([]*booking.Booking, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor user.Actor, as ListAs, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListByProperty(ctx context.Context, actor user.Actor, propertyID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	bookings   BookingReadStore
	properties PropertyReadStore
}

func NewBookingQueries(bookings BookingReadStore, properties PropertyReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, properties: properties}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}
	if !actor.CanCancel(b.Guest().ID, b.HostID()) {
		return nil, ErrBookingAccess
	}
	view := ToBookingView(b)
	return &view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor user.Actor, as ListAs, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	var filter BookingFilter
	switch as {
	case ListAsHost:
		switch actor.Role {
		case user.RoleHost, user.RoleAgent, user.RoleAdmin:
		default:
			return nil, nil, ErrBookingAccess
		}
		filter.HostID = &actor.ID
	case ListAsGuest:
		filter.GuestID = &actor.ID
	default:
		return nil, nil, errs.Validationf("unknown listing perspective %q", as)
	}
	return q.page(ctx, filter, cursor, limit)
}

func (q *bookingQueriesImpl) ListByProperty(ctx context.Context, actor user.Actor, propertyID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	p, err := q.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, nil, shared.TranslateStoreErr(err)
	}
	if !actor.CanManage(p.HostID()) {
		return nil, nil, ErrBookingAccess
	}
	return q.page(ctx, BookingFilter{PropertyID: &propertyID}, cursor, limit)
}

func (q *bookingQueriesImpl) page(ctx context.Context, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var after *Keyset
	if cursor != nil && cursor.After != "" {
		k, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		after = &k
	}

	rows, err := q.bookings.List(ctx, filter, after, int32(limit+1))
	if err != nil {
		return nil, nil, shared.TranslateStoreErr(err)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}

	out := make([]*BookingView, len(rows))
	for i, b := range rows {
		v := ToBookingView(b)
		out[i] = &v
	}
	return out, next, nil
}

func ToBookingView(b *booking.Booking) BookingView {
	stay := b.Stay()
	return BookingView{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		HostID:     b.HostID(),
		GuestID:    b.Guest().ID,
		GuestName:  b.Guest().DisplayName,
		GuestCount: b.GuestCount(),
		CheckIn:    stay.Start().String(),
		CheckOut:   stay.End().String(),
		Nights:     stay.Nights(),
		Total:      b.Total(),
		Currency:   b.Currency(),
		Status:     b.Status().String(),
		CreatedAt:  b.CreatedAt().UTC().Truncate(time.Microsecond),
		UpdatedAt:  b.UpdatedAt().UTC().Truncate(time.Microsecond),
	}
}
