package readstore

import (
	"context"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	getCalendar = `SELECT days, version FROM calendars WHERE property_id = $1`

	getCalendars = `SELECT property_id, days, version FROM calendars WHERE property_id = ANY($1)`
)

type CalendarReadStore struct {
	db db.DBTX
}

func NewCalendarReadStore(dbtx db.DBTX) *CalendarReadStore {
	return &CalendarReadStore{db: dbtx}
}

func (r *CalendarReadStore) Get(ctx context.Context, propertyID uuid.UUID) (*calendar.Calendar, error) {
	var (
		raw     []byte
		version int64
	)
	if err := r.db.QueryRow(ctx, getCalendar, propertyID).Scan(&raw, &version); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get calendar", err)
	}
	cal, err := converter.DecodeCalendar(propertyID, raw, version)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode calendar", err, infra.KindDBFailure)
	}
	return cal, nil
}

func (r *CalendarReadStore) GetMany(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*calendar.Calendar, error) {
	out := make(map[uuid.UUID]*calendar.Calendar, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, getCalendars, propertyIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get calendars", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      uuid.UUID
			raw     []byte
			version int64
		)
		if err := rows.Scan(&id, &raw, &version); err != nil {
			return nil, infra.WrapRepoErr("failed to scan calendar", err)
		}
		cal, err := converter.DecodeCalendar(id, raw, version)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode calendar", err, infra.KindDBFailure)
		}
		out[id] = cal
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate calendars", err)
	}
	return out, nil
}
