package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 42, NormalizeLimit(42))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000))
	assert.Equal(t, 43, LimitWithBuffer(42))
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := ParseCursor(EncodeCursor(original))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, original.CreatedAt.Equal(parsed.CreatedAt))
	assert.Equal(t, original.ID, parsed.ID)
}

func TestParseCursorEdgeCases(t *testing.T) {
	parsed, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = ParseCursor("not-base64!!")
	require.Error(t, err)

	_, err = ParseCursor("Zm9vYmFy") // decodes but has no separator
	require.Error(t, err)
}
