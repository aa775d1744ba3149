// Package biztime provides the business timezone used for date boundaries.
// Storage and transport stay in UTC; only calendar arithmetic such as
// "maturing within N days" or dated export file names uses the business zone.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Tokyo"

	// Day is the fixed length used for day-count arithmetic.
	Day = 24 * time.Hour
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns 00:00 of t's business day, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// FormatBizDate formats t as YYYY-MM-DD in the business timezone.
func FormatBizDate(t time.Time) string {
	return t.In(Location()).Format(time.DateOnly)
}

// FormatBizDateTime formats t as "YYYY-MM-DD HH:MM MST" in the business timezone.
func FormatBizDateTime(t time.Time) string {
	return t.In(Location()).Format("2006-01-02 15:04 MST")
}

// WholeDaysBetween returns the number of complete 24h periods from start to end.
// It is zero when end is before start.
func WholeDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / Day)
}

// AddDays adds n fixed-length days to t.
func AddDays(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * Day)
}
