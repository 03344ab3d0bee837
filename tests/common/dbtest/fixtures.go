//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestProperty inserts a property with an empty calendar and returns its id.
func CreateTestProperty(t *testing.T, db DBLike, hostID uuid.UUID, title string, weekdayPrice, weekendPrice int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO properties (id, host_id, title, location, weekday_price, weekend_price,
		    extra_guest_price, base_guests, max_guests, currency, created_at, updated_at)
		VALUES ($1, $2, $3, 'Kamakura, Kanagawa', $4, $5, 0, 2, 4, 'JPY', now(), now())`,
		id, hostID, title, weekdayPrice, weekendPrice)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO calendars (property_id, days, version) VALUES ($1, '{}'::jsonb, 0)`, id)
	require.NoError(t, err)

	return id
}

func CalendarVersion(t *testing.T, db DBLike, propertyID uuid.UUID) int64 {
	t.Helper()

	var version int64
	err := db.QueryRow(context.Background(), `SELECT version FROM calendars WHERE property_id = $1`, propertyID).Scan(&version)
	require.NoError(t, err)
	return version
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `SELECT count(*) FROM notification_jobs WHERE topic = $1`, topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// resetTables lists every table a test can write to, children first.
var resetTables = []string{"notification_jobs", "bookings", "calendars", "properties"}

// ResetDB empties the outbox, booking, calendar and property tables.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(resetTables, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate %s: %w", strings.Join(resetTables, ", "), err)
	}
	return nil
}
