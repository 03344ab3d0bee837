//go:build unit || e2e

package builder

import (
	"time"

	"stay-calendar/internal/domain/property"
	reqdto "stay-calendar/internal/handler/dto/request"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
)

type PropertyBuilder struct {
	HostID          uuid.UUID
	Title           string
	Location        string
	WeekdayPrice    int64
	WeekendPrice    int64
	ExtraGuestPrice int64
	BaseGuests      int
	MaxGuests       int
	Currency        string
	CreatedAt       time.Time
}

func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		HostID:          uuid.New(),
		Title:           "Seaside Cabin",
		Location:        "Kamakura, Kanagawa",
		WeekdayPrice:    10000,
		WeekendPrice:    15000,
		ExtraGuestPrice: 2000,
		BaseGuests:      2,
		MaxGuests:       4,
		Currency:        "JPY",
		CreatedAt:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *PropertyBuilder) With(mutate func(*PropertyBuilder)) *PropertyBuilder {
	mutate(b)
	return b
}

func (b *PropertyBuilder) WithHost(id uuid.UUID) *PropertyBuilder {
	b.HostID = id
	return b
}

func (b *PropertyBuilder) WithPrices(weekday, weekend int64) *PropertyBuilder {
	b.WeekdayPrice = weekday
	b.WeekendPrice = weekend
	return b
}

func (b *PropertyBuilder) Params() property.NewPropertyParams {
	return property.NewPropertyParams{
		HostID:          b.HostID,
		Title:           b.Title,
		Location:        b.Location,
		WeekdayPrice:    b.WeekdayPrice,
		WeekendPrice:    b.WeekendPrice,
		ExtraGuestPrice: b.ExtraGuestPrice,
		BaseGuests:      b.BaseGuests,
		MaxGuests:       b.MaxGuests,
		Currency:        b.Currency,
	}
}

func (b *PropertyBuilder) BuildDomain() (*property.Property, error) {
	return property.NewProperty(b.Params(), b.CreatedAt)
}

func (b *PropertyBuilder) BuildView() *queries.PropertyView {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	v := queries.ToPropertyView(p)
	return &v
}

func (b *PropertyBuilder) BuildAddRequestDTO() reqdto.AddPropertyRequest {
	return reqdto.AddPropertyRequest{
		Title:           b.Title,
		Location:        b.Location,
		WeekdayPrice:    b.WeekdayPrice,
		WeekendPrice:    b.WeekendPrice,
		ExtraGuestPrice: b.ExtraGuestPrice,
		BaseGuests:      b.BaseGuests,
		MaxGuests:       b.MaxGuests,
		Currency:        b.Currency,
	}
}
