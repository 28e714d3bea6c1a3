// Package biztime provides the time helpers shared by quota windows,
// retention cutoffs, and analytics buckets. Everything is UTC: storage,
// window boundaries, and histogram dates. Implicit local time is prohibited.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfUTCDay returns UTC midnight of t's UTC calendar date. It floors
// histogram buckets and quota windows.
func StartOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextMidnightUTC returns the next UTC midnight strictly after the given time.
// Quota daily windows reset at this boundary.
func NextMidnightUTC(t time.Time) time.Time {
	return StartOfUTCDay(t).Add(24 * time.Hour)
}

// UTCDateKey formats the UTC calendar date of t as "2006-01-02".
// Quota daily windows compare these keys to detect a day rollover.
func UTCDateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// UTCHour returns the hour of day (0-23) of t in UTC.
// Quota hourly windows compare these values to detect an hour rollover.
func UTCHour(t time.Time) int {
	return t.UTC().Hour()
}

// ParseUTCDateKey parses a "2006-01-02" date key as UTC midnight.
func ParseUTCDateKey(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t, nil
}
