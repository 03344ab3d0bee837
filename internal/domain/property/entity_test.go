//go:build unit

package property_test

import (
	"testing"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"
	"stay-calendar/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.PropertyBuilder)
	errIs  error
}

func TestProperty(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewPropertyBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Seaside Cabin", actual.Title())
		assert.Equal(t, 2, actual.Rates().BaseGuests)
		assert.True(t, actual.Accommodates(4))
		assert.False(t, actual.Accommodates(5))
		assert.False(t, actual.Accommodates(0))
	})

	t.Run("defaults", func(t *testing.T) {
		actual, err := builder.NewPropertyBuilder().With(func(b *builder.PropertyBuilder) {
			b.BaseGuests = 0
			b.Currency = " usd "
		}).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, 1, actual.Rates().BaseGuests)
		assert.Equal(t, "USD", actual.Rates().Currency)

		actual, err = builder.NewPropertyBuilder().With(func(b *builder.PropertyBuilder) { b.Currency = "" }).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, property.DefaultCurrency, actual.Rates().Currency)
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "empty title", mutate: func(b *builder.PropertyBuilder) { b.Title = "  " }, errIs: property.ErrTitleRequired},
			{name: "empty location", mutate: func(b *builder.PropertyBuilder) { b.Location = "" }, errIs: property.ErrLocationRequired},
			{name: "negative weekday", mutate: func(b *builder.PropertyBuilder) { b.WeekdayPrice = -1 }, errIs: property.ErrNegativeRate},
			{name: "negative extra guest", mutate: func(b *builder.PropertyBuilder) { b.ExtraGuestPrice = -1 }, errIs: property.ErrNegativeRate},
			{name: "weekend above cap", mutate: func(b *builder.PropertyBuilder) { b.WeekendPrice = calendar.MaxPrice + 1 }, errIs: property.ErrRateTooLarge},
			{name: "max below base", mutate: func(b *builder.PropertyBuilder) { b.MaxGuests = 1 }, errIs: property.ErrInvalidGuestLimits},
			{name: "bad currency", mutate: func(b *builder.PropertyBuilder) { b.Currency = "YEN!" }, errIs: property.ErrInvalidCurrency},
			{name: "free stay allowed", mutate: func(b *builder.PropertyBuilder) { b.WeekdayPrice, b.WeekendPrice = 0, 0 }},
		})
	})

	t.Run("rates are kept as given", func(t *testing.T) {
		actual, err := builder.NewPropertyBuilder().WithPrices(12000, 15000).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, int64(12000), actual.Rates().WeekdayPrice)
		assert.Equal(t, int64(15000), actual.Rates().WeekendPrice)
	})

	t.Run("host check", func(t *testing.T) {
		host := uuid.New()
		actual, err := builder.NewPropertyBuilder().WithHost(host).BuildDomain()
		require.NoError(t, err)
		assert.True(t, actual.IsHostedBy(host))
		assert.False(t, actual.IsHostedBy(uuid.New()))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewPropertyBuilder().With(c.mutate).BuildDomain()
			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
				return
			}
			require.Nil(t, actual)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}
