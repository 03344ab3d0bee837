package shared

import (
	"context"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. Everything written through tx commits
	// together or not at all.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Properties() PropertyRepository
	Calendars() CalendarRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
}

type PropertyRepository interface {
	Create(ctx context.Context, p *property.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

// CalendarRepository reads lock the document for the rest of the transaction.
type CalendarRepository interface {
	Create(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error)
	Get(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error)
	// Apply re-checks p against the stored document and writes the merged
	// result with version+1. A patch built from an older version is merged
	// when none of its dates conflict.
	Apply(ctx context.Context, propertyID uuid.UUID, expectedVersion int64, p calendar.Patch) (*calendar.Calendar, error)
	PruneBefore(ctx context.Context, propertyID uuid.UUID, cutoff calendar.Date) (*calendar.Calendar, int, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindByID locks the booking for the rest of the transaction.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
