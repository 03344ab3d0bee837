//go:build unit

package queries

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 11, 1, 9, 30, 15, 123456789, time.UTC)

	k, err := DecodeAfterCursor(EncodeAfterCursor(created, id))
	require.NoError(t, err)
	assert.Equal(t, id, k.ID)
	assert.True(t, created.Truncate(time.Microsecond).Equal(k.CreatedAt))
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "%%%"},
		{name: "wrong version", cursor: enc("v0:1-" + uuid.NewString())},
		{name: "missing separator", cursor: enc("v1:12345")},
		{name: "bad timestamp", cursor: enc("v1:abc-" + uuid.NewString())},
		{name: "bad uuid", cursor: enc("v1:12345-not-a-uuid")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ValidateLimit(0))
	assert.Equal(t, DefaultListLimit, ValidateLimit(-5))
	assert.Equal(t, 7, ValidateLimit(7))
	assert.Equal(t, MaxListLimit, ValidateLimit(MaxListLimit+1))
}
