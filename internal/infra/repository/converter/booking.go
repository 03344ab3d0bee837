package converter

import (
	"fmt"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the column order ScanTargets expects.
const BookingColumns = `id, property_id, host_id, guest_id, guest_name, guest_count,
	start_date, end_date, total, currency, status, created_at, updated_at`

type BookingRow struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	HostID     uuid.UUID
	GuestID    uuid.UUID
	GuestName  string
	GuestCount int32
	StartDate  pgtype.Date
	EndDate    pgtype.Date
	Total      int64
	Currency   string
	Status     string
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

// ScanTargets lists the row fields in BookingColumns order.
func (r *BookingRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.PropertyID, &r.HostID, &r.GuestID, &r.GuestName, &r.GuestCount,
		&r.StartDate, &r.EndDate, &r.Total, &r.Currency, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func BookingToInfra(b *booking.Booking) BookingRow {
	stay := b.Stay()
	return BookingRow{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		HostID:     b.HostID(),
		GuestID:    b.Guest().ID,
		GuestName:  b.Guest().DisplayName,
		GuestCount: int32(b.GuestCount()),
		StartDate:  pgconv.DateToPgtype(stay.Start()),
		EndDate:    pgconv.DateToPgtype(stay.End()),
		Total:      b.Total(),
		Currency:   b.Currency(),
		Status:     b.Status().String(),
		CreatedAt:  pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToDomain(r BookingRow) (*booking.Booking, error) {
	start, err := pgconv.DateFromPgtype(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := pgconv.DateFromPgtype(r.EndDate)
	if err != nil {
		return nil, err
	}
	stay, err := calendar.NewDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}

	return booking.ReconstructBooking(
		r.ID, r.PropertyID, r.HostID,
		booking.Guest{ID: r.GuestID, DisplayName: r.GuestName},
		int(r.GuestCount),
		stay,
		r.Total,
		r.Currency,
		status,
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimeFromPgtype(r.UpdatedAt),
	), nil
}
