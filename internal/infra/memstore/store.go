// Package memstore keeps properties, calendars and bookings in process
// memory. It gives the same per-property serialisation and all-or-nothing
// commit as the Postgres unit of work and backs STORAGE_DRIVER=memory and the
// use-case tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/pkg/config"

	"github.com/google/uuid"
)

type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
	Status  string
}

type Store struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]*property.Property
	calendars  map[uuid.UUID]*calendar.Calendar
	bookings   map[uuid.UUID]*booking.Booking
	jobs       []NotificationJob

	locksMu sync.Mutex
	locks   map[uuid.UUID]chan struct{}

	opTimeout time.Duration
	maxBytes  int
}

func New(cfg config.StoreConfig) *Store {
	return &Store{
		properties: make(map[uuid.UUID]*property.Property),
		calendars:  make(map[uuid.UUID]*calendar.Calendar),
		bookings:   make(map[uuid.UUID]*booking.Booking),
		locks:      make(map[uuid.UUID]chan struct{}),
		opTimeout:  cfg.OpTimeout,
		maxBytes:   cfg.CalendarMaxBytes,
	}
}

// NotificationJobs returns a copy of the committed outbox.
func (s *Store) NotificationJobs() []NotificationJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]NotificationJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *Store) propertyLock(id uuid.UUID) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[id] = l
	}
	return l
}

// lock blocks until the property is free or ctx ends.
func (s *Store) lock(ctx context.Context, id uuid.UUID) error {
	select {
	case s.propertyLock(id) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return infra.WrapRepoErr("timed out waiting for calendar lock", ctx.Err(), infra.KindTransient)
	}
}

func (s *Store) unlock(id uuid.UUID) {
	<-s.propertyLock(id)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.PropertyID(), b.HostID(),
		b.Guest(), b.GuestCount(), b.Stay(),
		b.Total(), b.Currency(), b.Status(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}
