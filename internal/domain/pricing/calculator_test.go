//go:build unit

package pricing_test

import (
	"math"
	"testing"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/domain/property"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seaside() property.Rates {
	return property.Rates{
		WeekdayPrice:    10000,
		WeekendPrice:    14000,
		ExtraGuestPrice: 1000,
		BaseGuests:      6,
		Currency:        "JPY",
	}
}

func TestQuoteNightlyBreakdown(t *testing.T) {
	r, err := calendar.ParseDateRange("2025-12-04", "2025-12-07")
	require.NoError(t, err)

	q, err := pricing.NewDefaultCalculator().Quote(seaside(), calendar.NewCalendar(uuid.New()), r, 2)
	require.NoError(t, err)

	require.Len(t, q.Nights, 3)
	assert.Equal(t, int64(10000), q.Nights[0].Price)
	assert.False(t, q.Nights[0].IsWeekend)
	assert.Equal(t, int64(14000), q.Nights[1].Price)
	assert.Equal(t, int64(14000), q.Nights[2].Price)
	assert.Equal(t, calendar.PriceSourceWeekend, q.Nights[2].Source)
	assert.Equal(t, int64(38000), q.BaseTotal)
	assert.Equal(t, 3, q.NightCount)
	assert.Zero(t, q.ExtraGuestFee)
}

func TestQuoteFeesAndTax(t *testing.T) {
	r, err := calendar.ParseDateRange("2025-12-04", "2025-12-07")
	require.NoError(t, err)

	q, err := pricing.NewDefaultCalculator().Quote(seaside(), calendar.NewCalendar(uuid.New()), r, 8)
	require.NoError(t, err)

	assert.Equal(t, int64(38000), q.BaseTotal)
	assert.Equal(t, int64(6000), q.ExtraGuestFee)
	assert.Equal(t, int64(3520), q.ServiceFee)
	assert.Equal(t, int64(8553), q.Tax)
	assert.Equal(t, int64(56073), q.GrandTotal)
	assert.Equal(t, "JPY", q.Currency)
}

func TestQuoteRounding(t *testing.T) {
	r, err := calendar.ParseDateRange("2025-12-04", "2025-12-07")
	require.NoError(t, err)
	cal := calendar.NewCalendar(uuid.New())

	tests := []struct {
		rounding pricing.Rounding
		tax      int64
	}{
		{rounding: pricing.RoundFloor, tax: 8553},
		{rounding: pricing.RoundNearest, tax: 8554},
	}
	for _, tt := range tests {
		t.Run(string(tt.rounding), func(t *testing.T) {
			calc := &pricing.Calculator{ServiceFeeBps: 800, TaxBps: 1800, Rounding: tt.rounding}
			q, err := calc.Quote(seaside(), cal, r, 8)
			require.NoError(t, err)
			assert.Equal(t, tt.tax, q.Tax)
			assert.Equal(t, q.BaseTotal+q.ExtraGuestFee+q.ServiceFee+q.Tax, q.GrandTotal)
		})
	}
}

func TestQuoteUsesOverrides(t *testing.T) {
	cal := calendar.NewCalendar(uuid.New())
	p := calendar.NewPatch(calendar.EditOrigin())
	price := int64(20000)
	p.Set(calendar.MustParseDate("2025-12-05"), calendar.DaySettings{Status: calendar.StatusAvailable, Price: &price})
	cal, err := cal.Apply(p)
	require.NoError(t, err)

	r, err := calendar.ParseDateRange("2025-12-04", "2025-12-07")
	require.NoError(t, err)

	q, err := pricing.NewDefaultCalculator().Quote(seaside(), cal, r, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10000+20000+14000), q.BaseTotal)
	assert.Equal(t, calendar.PriceSourceOverride, q.Nights[1].Source)
}

func TestQuoteIsDeterministic(t *testing.T) {
	r, err := calendar.ParseDateRange("2025-12-01", "2025-12-31")
	require.NoError(t, err)
	cal := calendar.NewCalendar(uuid.New())
	calc := pricing.NewDefaultCalculator()

	first, err := calc.Quote(seaside(), cal, r, 7)
	require.NoError(t, err)
	for range 5 {
		again, err := calc.Quote(seaside(), cal, r, 7)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuoteRejectsZeroGuests(t *testing.T) {
	r, err := calendar.ParseDateRange("2025-12-04", "2025-12-05")
	require.NoError(t, err)

	_, err = pricing.NewDefaultCalculator().Quote(seaside(), calendar.NewCalendar(uuid.New()), r, 0)
	require.ErrorIs(t, err, pricing.ErrInvalidGuestCount)
}

func TestQuoteLargeAmounts(t *testing.T) {
	cal := calendar.NewCalendar(uuid.New())
	calc := pricing.NewDefaultCalculator()

	t.Run("fees on a huge nightly price stay exact", func(t *testing.T) {
		r, err := calendar.ParseDateRange("2025-12-01", "2025-12-02")
		require.NoError(t, err)
		rates := seaside()
		rates.WeekdayPrice = 9_000_000_000_000_000

		q, err := calc.Quote(rates, cal, r, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(720_000_000_000_000), q.ServiceFee)
		assert.Equal(t, int64(1_749_600_000_000_000), q.Tax)
		assert.Equal(t, int64(11_469_600_000_000_000), q.GrandTotal)
	})

	t.Run("capped prices for a full year with a full house", func(t *testing.T) {
		r, err := calendar.ParseDateRange("2025-01-01", "2026-01-01")
		require.NoError(t, err)
		rates := property.Rates{
			WeekdayPrice:    calendar.MaxPrice,
			WeekendPrice:    calendar.MaxPrice,
			ExtraGuestPrice: calendar.MaxPrice,
			BaseGuests:      1,
			Currency:        "JPY",
		}

		q, err := calc.Quote(rates, cal, r, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(365_000_000_000_000), q.BaseTotal)
		assert.Equal(t, int64(36_135_000_000_000_000), q.ExtraGuestFee)
		assert.Equal(t, int64(2_920_000_000_000_000), q.ServiceFee)
		assert.Equal(t, int64(7_095_600_000_000_000), q.Tax)
		assert.Equal(t, int64(46_515_600_000_000_000), q.GrandTotal)
	})

	tests := []struct {
		name   string
		mutate func(*property.Rates)
		guests int
	}{
		{
			name:   "nightly sum",
			mutate: func(r *property.Rates) { r.WeekdayPrice = math.MaxInt64/2 + 1 },
			guests: 1,
		},
		{
			name:   "extra guest product",
			mutate: func(r *property.Rates) { r.BaseGuests, r.ExtraGuestPrice = 1, math.MaxInt64/2 },
			guests: 4,
		},
	}
	for _, tt := range tests {
		t.Run("overflow in "+tt.name, func(t *testing.T) {
			r, err := calendar.ParseDateRange("2025-12-01", "2025-12-03")
			require.NoError(t, err)
			rates := seaside()
			tt.mutate(&rates)

			_, err = calc.Quote(rates, cal, r, tt.guests)
			require.ErrorIs(t, err, pricing.ErrAmountOverflow)
		})
	}
}

func TestQuoteRejectsOverlongStay(t *testing.T) {
	r, err := calendar.ParseDateRange("0002-01-01", "9999-12-31")
	require.NoError(t, err)

	_, err = pricing.NewDefaultCalculator().Quote(seaside(), calendar.NewCalendar(uuid.New()), r, 1)
	require.ErrorIs(t, err, calendar.ErrStayTooLong)
}

func TestParseRounding(t *testing.T) {
	r, err := pricing.ParseRounding("")
	require.NoError(t, err)
	assert.Equal(t, pricing.RoundFloor, r)

	_, err = pricing.ParseRounding("bankers")
	require.ErrorIs(t, err, pricing.ErrInvalidRounding)
}

