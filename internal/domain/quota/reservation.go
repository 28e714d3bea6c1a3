package quota

import "time"

// CounterSnapshot captures the four counter fields a conditional update
// compares against. Two snapshots are equal iff no concurrent writer touched
// the row in between.
type CounterSnapshot struct {
	DailyRequests  int
	LastResetDate  string
	HourlyRequests int
	LastResetHour  int
}

// Reservation records a consumed unit and the windows it was taken from.
// A failed processing attempt hands its reservation back via Tracker.Release.
type Reservation struct {
	UserID   string
	DateKey  string // daily window marker at consumption time
	Hour     int    // hourly window marker at consumption time
	Snapshot Snapshot
}

// Snapshot reports an identity's budget position at one instant.
type Snapshot struct {
	DailyLimit      int
	DailyUsed       int
	DailyRemaining  int
	DailyResetAt    time.Time
	HourlyLimit     int
	HourlyUsed      int
	HourlyRemaining int
	HourlyResetAt   time.Time
}
