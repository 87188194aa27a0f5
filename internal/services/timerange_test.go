package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRangeConvertsLocalDaysToUTC(t *testing.T) {
	from, to, err := DayRange("2025-03-01", "2025-03-02", LoadZone("Asia/Bishkek"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 28, 18, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.UTC, from.Location())
}

func TestDayRangeSingleDay(t *testing.T) {
	from, to, err := DayRange(" 2024-12-31 ", "2024-12-31", LoadZone("Asia/Bishkek"))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
	assert.Equal(t, time.Date(2024, 12, 30, 18, 0, 0, 0, time.UTC), from)
}

func TestDayRangeHandlesDST(t *testing.T) {
	// в Берлине 30 марта 2025 длится 23 часа
	berlin := LoadZone("Europe/Berlin")
	from, to, err := DayRange("2025-03-30", "2025-03-30", berlin)
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, to.Sub(from))
}

func TestDayRangeErrors(t *testing.T) {
	loc := LoadZone("Asia/Bishkek")

	_, _, err := DayRange("2025-13-01", "2025-12-01", loc)
	assert.ErrorIs(t, err, ErrBadDate)

	_, _, err = DayRange("2025-01-01", "tomorrow", loc)
	assert.ErrorIs(t, err, ErrBadDate)

	_, _, err = DayRange("2025-01-02", "2025-01-01", loc)
	assert.ErrorIs(t, err, ErrBadPeriod)
}

func TestLoadZoneFallsBackToFixedOffset(t *testing.T) {
	loc := LoadZone("Mars/Olympus")
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 6*60*60, offset)
}
