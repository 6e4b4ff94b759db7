package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got)

	got, err = Normalize("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", got)

	for _, bad := range []string{"2025/03", "2025-3", "03-2025", "2025-13", "2025-02-30", ""} {
		_, err := Normalize(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestParseYear(t *testing.T) {
	y, err := ParseYear("2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)

	_, err = ParseYear("24")
	assert.Error(t, err)
	assert.Equal(t, "2024-%", YearPattern(2024))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn("2024-02-01"))
	assert.Equal(t, 31, DaysIn("2025-03"))
	assert.Equal(t, 30, DaysIn("2025-04-15"))
	assert.Equal(t, 28, DaysIn("2025-02-01 00:00:00"))
	assert.Equal(t, 30, DaysIn("garbage"))
}

func TestLastAndFirst(t *testing.T) {
	now := time.Date(2025, time.February, 17, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-02-01", First(now))
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02"}, Last(now, 4))
	assert.Equal(t, []string{"2025-02"}, Last(now, 1))
}
