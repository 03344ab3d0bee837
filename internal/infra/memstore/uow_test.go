//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/infra/memstore"
	"stay-calendar/internal/pkg/config"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"
	"stay-calendar/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBooking(t *testing.T, uow *memstore.UoW, b *booking.Booking) error {
	t.Helper()
	return uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
}

func stayBooking(propertyID uuid.UUID, checkIn, checkOut string, status booking.Status) *booking.Booking {
	return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.PropertyID = propertyID
		b.CheckIn = checkIn
		b.CheckOut = checkOut
		b.Status = status
	}).BuildDomain()
}

func TestBookingCreate_OverlapConflict(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     []string
	}{
		{
			name:    "tail of an earlier stay",
			checkIn: "2030-03-06", checkOut: "2030-03-09",
			want: []string{"2030-03-06", "2030-03-07"},
		},
		{
			name:    "spans two stays",
			checkIn: "2030-03-06", checkOut: "2030-03-12",
			want: []string{"2030-03-06", "2030-03-07", "2030-03-10"},
		},
		{
			name:    "inside a stay",
			checkIn: "2030-03-05", checkOut: "2030-03-06",
			want: []string{"2030-03-05"},
		},
		{
			name:    "cancelled stay does not count",
			checkIn: "2030-03-13", checkOut: "2030-03-16",
			want: []string{"2030-03-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := memstore.NewUoW(memstore.New(config.StoreConfig{OpTimeout: time.Second}))
			propertyID := uuid.New()
			for _, existing := range []*booking.Booking{
				stayBooking(propertyID, "2030-03-04", "2030-03-08", booking.StatusConfirmed),
				stayBooking(propertyID, "2030-03-10", "2030-03-11", booking.StatusPending),
				stayBooking(propertyID, "2030-03-12", "2030-03-15", booking.StatusCancelled),
				stayBooking(propertyID, "2030-03-15", "2030-03-20", booking.StatusConfirmed),
			} {
				require.NoError(t, createBooking(t, uow, existing))
			}

			err := createBooking(t, uow, stayBooking(propertyID, tt.checkIn, tt.checkOut, booking.StatusConfirmed))
			require.Error(t, err)

			var conflict *errs.ConflictError
			require.True(t, errs.As(err, &conflict))
			assert.Equal(t, tt.want, conflict.Dates)
			assert.True(t, errs.Is(err, errs.ErrConflict))
		})
	}
}

func TestBookingCreate_OtherPropertyDoesNotConflict(t *testing.T) {
	uow := memstore.NewUoW(memstore.New(config.StoreConfig{OpTimeout: time.Second}))

	require.NoError(t, createBooking(t, uow, stayBooking(uuid.New(), "2030-03-04", "2030-03-08", booking.StatusConfirmed)))
	assert.NoError(t, createBooking(t, uow, stayBooking(uuid.New(), "2030-03-04", "2030-03-08", booking.StatusConfirmed)))
}
