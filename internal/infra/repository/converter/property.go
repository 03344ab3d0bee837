package converter

import (
	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// PropertyColumns is the column order ScanTargets expects.
const PropertyColumns = `id, host_id, title, location, weekday_price, weekend_price,
	extra_guest_price, base_guests, max_guests, currency, created_at, updated_at`

type PropertyRow struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Title           string
	Location        string
	WeekdayPrice    int64
	WeekendPrice    int64
	ExtraGuestPrice int64
	BaseGuests      int32
	MaxGuests       int32
	Currency        string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// ScanTargets lists the row fields in PropertyColumns order.
func (r *PropertyRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.HostID, &r.Title, &r.Location,
		&r.WeekdayPrice, &r.WeekendPrice, &r.ExtraGuestPrice,
		&r.BaseGuests, &r.MaxGuests, &r.Currency,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func PropertyToInfra(p *property.Property) PropertyRow {
	rates := p.Rates()
	return PropertyRow{
		ID:              p.ID(),
		HostID:          p.HostID(),
		Title:           p.Title(),
		Location:        p.Location(),
		WeekdayPrice:    rates.WeekdayPrice,
		WeekendPrice:    rates.WeekendPrice,
		ExtraGuestPrice: rates.ExtraGuestPrice,
		BaseGuests:      int32(rates.BaseGuests),
		MaxGuests:       int32(p.MaxGuests()),
		Currency:        rates.Currency,
		CreatedAt:       pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func PropertyToDomain(r PropertyRow) *property.Property {
	return property.ReconstructProperty(
		r.ID, r.HostID,
		r.Title, r.Location,
		property.Rates{
			WeekdayPrice:    r.WeekdayPrice,
			WeekendPrice:    r.WeekendPrice,
			ExtraGuestPrice: r.ExtraGuestPrice,
			BaseGuests:      int(r.BaseGuests),
			Currency:        r.Currency,
		},
		int(r.MaxGuests),
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimeFromPgtype(r.UpdatedAt),
	)
}
