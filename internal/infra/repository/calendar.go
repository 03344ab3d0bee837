package repository

import (
	"context"
	"fmt"
	"log/slog"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	createCalendar = `INSERT INTO calendars (property_id, days, version) VALUES ($1, '{}'::jsonb, 0)`

	getCalendarForUpdate = `SELECT days, version FROM calendars WHERE property_id = $1 FOR UPDATE`

	updateCalendar = `
UPDATE calendars
SET days = $2::jsonb, version = $3, updated_at = now()
WHERE property_id = $1 AND version = $4`
)

// CalendarRepository stores each calendar as one JSONB document guarded by
// a row lock and a version compare-and-swap.
type CalendarRepository struct {
	db       db.DBTX
	maxBytes int
}

func NewCalendarRepository(dbtx db.DBTX, maxBytes int) *CalendarRepository {
	return &CalendarRepository{db: dbtx, maxBytes: maxBytes}
}

func (r *CalendarRepository) Create(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	if _, err := r.db.Exec(ctx, createCalendar, propertyID); err != nil {
		return nil, infra.WrapRepoErr("failed to create calendar", err)
	}
	return calendar.NewCalendar(propertyID), nil
}

func (r *CalendarRepository) Get(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	var (
		raw     []byte
		version int64
	)
	if err := r.db.QueryRow(ctx, getCalendarForUpdate, propertyID).Scan(&raw, &version); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load calendar", err)
	}

	cal, err := converter.DecodeCalendar(propertyID, raw, version)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode calendar", err, infra.KindDBFailure)
	}
	return cal, nil
}

func (r *CalendarRepository) Apply(ctx context.Context, propertyID uuid.UUID, expectedVersion int64, p calendar.Patch) (*calendar.Calendar, error) {
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
	if err := r.save(ctx, next, current.Version()); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *CalendarRepository) PruneBefore(ctx context.Context, propertyID uuid.UUID, cutoff calendar.Date) (*calendar.Calendar, int, error) {
	current, err := r.Get(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	pruned, removed := current.PruneBefore(cutoff)
	if removed == 0 {
		return current, 0, nil
	}

	next := pruned.WithVersion(current.Version() + 1)
	if err := r.save(ctx, next, current.Version()); err != nil {
		return nil, 0, err
	}
	return next, removed, nil
}

func (r *CalendarRepository) save(ctx context.Context, next *calendar.Calendar, prevVersion int64) error {
	raw, err := converter.EncodeCalendarDays(next)
	if err != nil {
		return infra.WrapRepoErr("failed to encode calendar", err, infra.KindDBFailure)
	}
	if r.maxBytes > 0 && len(raw) > r.maxBytes {
		msg := fmt.Sprintf("calendar document is %d bytes, limit %d; prune past dates", len(raw), r.maxBytes)
		return infra.WrapRepoErr(msg, nil, infra.KindPayloadTooLarge)
	}

	tag, err := r.db.Exec(ctx, updateCalendar, next.PropertyID(), string(raw), next.Version(), prevVersion)
	if err != nil {
		return infra.WrapRepoErr("failed to write calendar", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("calendar version moved during write", nil, infra.KindVersionConflict)
	}
	return nil
}
