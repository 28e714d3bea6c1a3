package usage

import (
	"context"
	"time"
)

// DayCount is one bucket of the daily event histogram.
type DayCount struct {
	Date  string // UTC date key, e.g. "2026-08-25"
	Count int64
}

// EventRepository defines the interface for usage event persistence and
// aggregation. Events are append-only: there is no update method, and the
// only delete is the retention sweep.
type EventRepository interface {
	// Create appends a usage event
	Create(ctx context.Context, event *Event) error

	// ListByUserID returns a page of one identity's events, newest first,
	// along with the total count
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*Event, int64, error)

	// CountInRange counts events with occurredAt in [from, to)
	CountInRange(ctx context.Context, from, to time.Time) (int64, error)

	// CountSuccessInRange counts successful events with occurredAt in [from, to)
	CountSuccessInRange(ctx context.Context, from, to time.Time) (int64, error)

	// CountDistinctUsersInRange counts distinct identities with at least one
	// event in [from, to)
	CountDistinctUsersInRange(ctx context.Context, from, to time.Time) (int64, error)

	// DailyCounts returns per-day event counts for occurredAt in [from, to),
	// bucketed by UTC date. Days without events are absent from the result.
	DailyCounts(ctx context.Context, from, to time.Time) ([]DayCount, error)

	// AverageProcessingMsSince returns the mean processing time of successful
	// events since the given instant, and how many events contributed to it
	AverageProcessingMsSince(ctx context.Context, since time.Time) (float64, int64, error)

	// DeleteOlderThan removes events that occurred before the cutoff and
	// returns how many were removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
