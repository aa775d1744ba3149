package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WholeDaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, WholeDaysBetween(start, start.Add(24*time.Hour)))
	assert.Equal(t, 10, WholeDaysBetween(start, start.Add(10*Day+time.Minute)))
	assert.Equal(t, 0, WholeDaysBetween(start, start.Add(-48*time.Hour)))
}

func TestFormatBizDate_UsesBusinessZone(t *testing.T) {
	// 2026-03-31 16:00 UTC is already April 1st in Tokyo.
	ts := time.Date(2026, 3, 31, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-04-01", FormatBizDate(ts))
}

func TestStartOfDayUTC(t *testing.T) {
	ts := time.Date(2026, 3, 31, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
}

func TestAddDays(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), AddDays(ts, 7))
}

func TestFormatBizDateTime(t *testing.T) {
	ts := time.Date(2026, 3, 31, 16, 5, 0, 0, time.UTC)
	assert.Equal(t, "2026-04-01 01:05 JST", FormatBizDateTime(ts))
}
