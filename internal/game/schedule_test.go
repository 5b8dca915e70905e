package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseLocalDateDropsTimeOfDay(t *testing.T) {
	got, err := ParseLocalDate("2024-01-01T23:45:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, localDate(2024, time.January, 1), got)

	got, err = ParseLocalDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, localDate(2024, time.January, 1), got)

	_, err = ParseLocalDate("january first")
	assert.Error(t, err)
}

func TestHoleAvailableDate(t *testing.T) {
	d, err := HoleAvailableDate("2024-01-01", 1)
	require.NoError(t, err)
	assert.Equal(t, localDate(2024, time.January, 1), d)

	d, err = HoleAvailableDate("2024-01-01", 5)
	require.NoError(t, err)
	assert.Equal(t, localDate(2024, time.January, 5), d)

	// Month boundary.
	d, err = HoleAvailableDate("2024-01-30", 3)
	require.NoError(t, err)
	assert.Equal(t, localDate(2024, time.February, 1), d)
}

func TestHoleAvailabilityOn(t *testing.T) {
	start := "2024-01-01"

	cases := []struct {
		hole int
		now  time.Time
		want Availability
	}{
		{1, localDate(2023, time.December, 31), AvailabilityLocked},
		{1, localDate(2024, time.January, 1), AvailabilityAvailable},
		{1, time.Date(2024, time.January, 1, 23, 59, 0, 0, time.Local), AvailabilityAvailable},
		{1, localDate(2024, time.January, 2), AvailabilityPast},
		{2, localDate(2024, time.January, 1), AvailabilityLocked},
		{2, localDate(2024, time.January, 2), AvailabilityAvailable},
		{5, localDate(2024, time.January, 5), AvailabilityAvailable},
		{5, localDate(2024, time.January, 4), AvailabilityLocked},
		{5, localDate(2024, time.January, 6), AvailabilityPast},
	}
	for _, c := range cases {
		got, err := HoleAvailabilityOn(start, c.hole, c.now)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "hole %d on %s", c.hole, c.now.Format("2006-01-02"))
	}
}

func TestAtMostOneHoleAvailablePerDay(t *testing.T) {
	start := "2024-01-01"
	for day := 0; day < 10; day++ {
		now := localDate(2024, time.January, 1).AddDate(0, 0, day)
		available := 0
		for hole := 1; hole <= 9; hole++ {
			a, err := HoleAvailabilityOn(start, hole, now)
			require.NoError(t, err)
			if a == AvailabilityAvailable {
				available++
			}
		}
		assert.LessOrEqual(t, available, 1, "day offset %d", day)
	}
}

func TestTodaysHoleNumber(t *testing.T) {
	start := "2024-01-01"

	n, ok := TodaysHoleNumber(start, 9, localDate(2024, time.January, 3))
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	// Before the round starts and after it ends there is no hole for today.
	_, ok = TodaysHoleNumber(start, 9, localDate(2023, time.December, 25))
	assert.False(t, ok)
	_, ok = TodaysHoleNumber(start, 9, localDate(2024, time.February, 1))
	assert.False(t, ok)
}

func TestFormatHoleDate(t *testing.T) {
	assert.Equal(t, "Jan 1", FormatHoleDate("2024-01-01", 1))
	assert.Equal(t, "Feb 1", FormatHoleDate("2024-01-30", 3))
	assert.Empty(t, FormatHoleDate("bogus", 1))
}
