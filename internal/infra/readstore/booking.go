package readstore

import (
	"context"
	"fmt"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/pgconv"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const getBookingByID = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1`

// ownerColumn is trusted SQL; it never comes from user input.
func listBookingsFirstPage(ownerColumn string) string {
	return fmt.Sprintf(`
SELECT %s FROM bookings
WHERE %s = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`, converter.BookingColumns, ownerColumn)
}

func listBookingsKeyset(ownerColumn string) string {
	return fmt.Sprintf(`
SELECT %s FROM bookings
WHERE %s = $1 AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4`, converter.BookingColumns, ownerColumn)
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, getBookingByID, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingReadStore) List(ctx context.Context, f queries.BookingFilter, after *queries.Keyset, limit int32) ([]*booking.Booking, error) {
	var (
		column string
		owner  uuid.UUID
	)
	switch {
	case f.GuestID != nil:
		column, owner = "guest_id", *f.GuestID
	case f.HostID != nil:
		column, owner = "host_id", *f.HostID
	case f.PropertyID != nil:
		column, owner = "property_id", *f.PropertyID
	default:
		return nil, infra.WrapRepoErr("booking filter has no owner", nil, infra.KindDBFailure)
	}

	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.db.Query(ctx, listBookingsFirstPage(column), owner, limit)
	} else {
		rows, err = r.db.Query(ctx, listBookingsKeyset(column), owner, pgconv.TimeToPgtype(after.CreatedAt), after.ID, limit)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		var row converter.BookingRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		b, err := converter.BookingToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}
