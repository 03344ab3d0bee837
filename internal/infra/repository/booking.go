package repository

import (
	"context"
	"errors"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	createBooking = `
INSERT INTO bookings (` + converter.BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	getBookingByIDForUpdate = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	updateBookingStatus = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	pgErrExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToInfra(b)
	_, err := r.db.Exec(ctx, createBooking,
		row.ID, row.PropertyID, row.HostID, row.GuestID, row.GuestName, row.GuestCount,
		row.StartDate, row.EndDate, row.Total, row.Currency, row.Status,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		// bookings_no_overlap backs up the calendar check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrExclusionViolation {
			return errs.NewConflictError(b.Stay().Dates())
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, getBookingByIDForUpdate, id).Scan(row.ScanTargets()...); err != nil {
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

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStatus, b.ID(), b.Status().String(), pgconv.TimeToPgtype(b.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
