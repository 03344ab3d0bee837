package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

type UoW struct {
	store *Store
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.store.opTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.store.opTimeout)
		defer cancel()
	}

	tx := &memTx{
		store:      u.store,
		held:       make(map[uuid.UUID]struct{}),
		properties: make(map[uuid.UUID]*property.Property),
		calendars:  make(map[uuid.UUID]*calendar.Calendar),
		bookings:   make(map[uuid.UUID]*booking.Booking),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		if infra.IsKind(err, infra.KindTransient) {
			return errs.Mark(err, errs.ErrTransient)
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "transaction expired before commit"), errs.ErrTransient)
	}
	tx.commit()
	return nil
}

type memTx struct {
	store *Store
	held  map[uuid.UUID]struct{}

	properties map[uuid.UUID]*property.Property
	calendars  map[uuid.UUID]*calendar.Calendar
	bookings   map[uuid.UUID]*booking.Booking
	jobs       []NotificationJob
}

func (t *memTx) Properties() shared.PropertyRepository       { return &propertyRepo{tx: t} }
func (t *memTx) Calendars() shared.CalendarRepository        { return &calendarRepo{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository          { return &bookingRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository { return &notificationRepo{tx: t} }

// acquire takes the property lock once per transaction.
func (t *memTx) acquire(ctx context.Context, propertyID uuid.UUID) error {
	if _, ok := t.held[propertyID]; ok {
		return nil
	}
	if err := t.store.lock(ctx, propertyID); err != nil {
		return err
	}
	t.held[propertyID] = struct{}{}
	return nil
}

func (t *memTx) release() {
	for id := range t.held {
		t.store.unlock(id)
	}
	t.held = nil
}

func (t *memTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range t.properties {
		s.properties[id] = p
	}
	for id, c := range t.calendars {
		s.calendars[id] = c
	}
	for id, b := range t.bookings {
		s.bookings[id] = b
	}
	s.jobs = append(s.jobs, t.jobs...)
}

func (t *memTx) property(id uuid.UUID) (*property.Property, bool) {
	if p, ok := t.properties[id]; ok {
		return p, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	p, ok := t.store.properties[id]
	return p, ok
}

func (t *memTx) calendar(propertyID uuid.UUID) (*calendar.Calendar, bool) {
	if c, ok := t.calendars[propertyID]; ok {
		return c, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	c, ok := t.store.calendars[propertyID]
	return c, ok
}

func (t *memTx) booking(id uuid.UUID) (*booking.Booking, bool) {
	if b, ok := t.bookings[id]; ok {
		return b, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	b, ok := t.store.bookings[id]
	return b, ok
}

// liveBookings lists committed and staged bookings of a property that still
// hold their dates.
func (t *memTx) liveBookings(propertyID uuid.UUID) []*booking.Booking {
	seen := make(map[uuid.UUID]*booking.Booking)
	t.store.mu.RLock()
	for id, b := range t.store.bookings {
		if b.PropertyID() == propertyID {
			seen[id] = b
		}
	}
	t.store.mu.RUnlock()
	for id, b := range t.bookings {
		if b.PropertyID() == propertyID {
			seen[id] = b
		}
	}

	out := make([]*booking.Booking, 0, len(seen))
	for _, b := range seen {
		if b.Status().HoldsDates() {
			out = append(out, b)
		}
	}
	return out
}

type propertyRepo struct{ tx *memTx }

func (r *propertyRepo) Create(ctx context.Context, p *property.Property) error {
	if err := r.tx.acquire(ctx, p.ID()); err != nil {
		return err
	}
	if _, exists := r.tx.property(p.ID()); exists {
		return infra.WrapRepoErr("property already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.properties[p.ID()] = p
	return nil
}

func (r *propertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := r.tx.property(id)
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return p, nil
}

type calendarRepo struct{ tx *memTx }

func (r *calendarRepo) Create(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	if err := r.tx.acquire(ctx, propertyID); err != nil {
		return nil, err
	}
	if _, exists := r.tx.calendar(propertyID); exists {
		return nil, infra.WrapRepoErr("calendar already exists", nil, infra.KindDuplicateKey)
	}
	cal := calendar.NewCalendar(propertyID)
	r.tx.calendars[propertyID] = cal
	return cal, nil
}

func (r *calendarRepo) Get(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	if err := r.tx.acquire(ctx, propertyID); err != nil {
		return nil, err
	}
	cal, ok := r.tx.calendar(propertyID)
	if !ok {
		return nil, infra.WrapRepoErr("calendar not found", nil, infra.KindNotFound)
	}
	return cal, nil
}

func (r *calendarRepo) Apply(ctx context.Context, propertyID uuid.UUID, expectedVersion int64, p calendar.Patch) (*calendar.Calendar, error) {
	current, err := r.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if current.Version() != expectedVersion {
		slog.Debug("merging patch onto newer calendar",
			"property_id", propertyID.String(),
			"expected_version", expectedVersion,
			"current_version", current.Version(),
			"origin", p.Origin.String())
	}

	next, err := current.Apply(p)
	if err != nil {
		return nil, err
	}
	if err := r.stage(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *calendarRepo) PruneBefore(ctx context.Context, propertyID uuid.UUID, cutoff calendar.Date) (*calendar.Calendar, int, error) {
	current, err := r.Get(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	pruned, removed := current.PruneBefore(cutoff)
	if removed == 0 {
		return current, 0, nil
	}
	next := pruned.WithVersion(current.Version() + 1)
	if err := r.stage(next); err != nil {
		return nil, 0, err
	}
	return next, removed, nil
}

func (r *calendarRepo) stage(next *calendar.Calendar) error {
	if max := r.tx.store.maxBytes; max > 0 {
		raw, err := converter.EncodeCalendarDays(next)
		if err != nil {
			return infra.WrapRepoErr("failed to encode calendar", err, infra.KindDBFailure)
		}
		if len(raw) > max {
			msg := fmt.Sprintf("calendar document is %d bytes, limit %d; prune past dates", len(raw), max)
			return infra.WrapRepoErr(msg, nil, infra.KindPayloadTooLarge)
		}
	}
	r.tx.calendars[next.PropertyID()] = next
	return nil
}

type bookingRepo struct{ tx *memTx }

func (r *bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.tx.acquire(ctx, b.PropertyID()); err != nil {
		return err
	}
	if _, exists := r.tx.booking(b.ID()); exists {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	var taken []calendar.Date
	for _, other := range r.tx.liveBookings(b.PropertyID()) {
		if overlap, ok := b.Stay().Intersect(other.Stay()); ok {
			taken = append(taken, overlap.Dates()...)
		}
	}
	if len(taken) > 0 {
		sort.Slice(taken, func(i, j int) bool { return taken[i].Before(taken[j]) })
		return errs.NewConflictError(taken)
	}
	r.tx.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.tx.booking(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if err := r.tx.acquire(ctx, b.PropertyID()); err != nil {
		return nil, err
	}
	// Re-read under the lock; another transaction may have committed meanwhile.
	b, _ = r.tx.booking(id)
	return cloneBooking(b), nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	if err := r.tx.acquire(ctx, b.PropertyID()); err != nil {
		return err
	}
	if _, ok := r.tx.booking(b.ID()); !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.tx.bookings[b.ID()] = cloneBooking(b)
	return nil
}

type notificationRepo struct{ tx *memTx }

func (r *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.tx.jobs = append(r.tx.jobs, NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: append([]byte(nil), payload...),
		RunAt:   runAt,
		Status:  "queued",
	})
	return nil
}
