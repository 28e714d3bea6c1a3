package quota

import (
	"fmt"
	"time"

	"chroma/internal/shared/biztime"
)

// State holds one identity's counters across both quota windows. The window
// markers (lastResetDate, lastResetHour) record which UTC day and hour the
// counters currently belong to; Rollover advances them lazily.
type State struct {
	id             uint
	userID         string
	dailyRequests  int
	lastResetDate  string // UTC calendar date key, "2006-01-02"
	hourlyRequests int
	lastResetHour  int // 0-23, UTC
	createdAt      time.Time
	updatedAt      time.Time
}

// NewState creates a zeroed quota state anchored to the current windows.
func NewState(userID string, now time.Time) (*State, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now = now.UTC()
	return &State{
		userID:        userID,
		lastResetDate: biztime.UTCDateKey(now),
		lastResetHour: biztime.UTCHour(now),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructState reconstructs a quota state entity from persistence
func ReconstructState(
	id uint,
	userID string,
	dailyRequests int,
	lastResetDate string,
	hourlyRequests int,
	lastResetHour int,
	createdAt, updatedAt time.Time,
) (*State, error) {
	if id == 0 {
		return nil, fmt.Errorf("quota state ID cannot be zero")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if dailyRequests < 0 || hourlyRequests < 0 {
		return nil, fmt.Errorf("request counters cannot be negative")
	}
	if lastResetHour < 0 || lastResetHour > 23 {
		return nil, fmt.Errorf("last reset hour must be 0-23, got %d", lastResetHour)
	}

	return &State{
		id:             id,
		userID:         userID,
		dailyRequests:  dailyRequests,
		lastResetDate:  lastResetDate,
		hourlyRequests: hourlyRequests,
		lastResetHour:  lastResetHour,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ID returns the quota state record ID
func (s *State) ID() uint {
	return s.id
}

// UserID returns the owning identity's user ID
func (s *State) UserID() string {
	return s.userID
}

// DailyRequests returns the count consumed in the current daily window
func (s *State) DailyRequests() int {
	return s.dailyRequests
}

// LastResetDate returns the UTC date key the daily counter belongs to
func (s *State) LastResetDate() string {
	return s.lastResetDate
}

// HourlyRequests returns the count consumed in the current hourly window
func (s *State) HourlyRequests() int {
	return s.hourlyRequests
}

// LastResetHour returns the UTC hour (0-23) the hourly counter belongs to
func (s *State) LastResetHour() int {
	return s.lastResetHour
}

// CreatedAt returns when the quota state was created
func (s *State) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the counters last changed
func (s *State) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the quota state record ID (only for persistence layer use)
func (s *State) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("quota state ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("quota state ID cannot be zero")
	}
	s.id = id
	return nil
}

// Counters captures the comparable counter fields for conditional updates.
func (s *State) Counters() CounterSnapshot {
	return CounterSnapshot{
		DailyRequests:  s.dailyRequests,
		LastResetDate:  s.lastResetDate,
		HourlyRequests: s.hourlyRequests,
		LastResetHour:  s.lastResetHour,
	}
}

// Rollover advances the window markers to the current UTC day and hour,
// zeroing counters whose window has elapsed. A day rollover implicitly rolls
// the hour as well. Returns true when anything changed. Must run before
// every limit comparison.
func (s *State) Rollover(now time.Time) bool {
	now = now.UTC()
	today := biztime.UTCDateKey(now)
	hour := biztime.UTCHour(now)

	if s.lastResetDate != today {
		s.dailyRequests = 0
		s.hourlyRequests = 0
		s.lastResetDate = today
		s.lastResetHour = hour
		s.updatedAt = now
		return true
	}
	if s.lastResetHour != hour {
		s.hourlyRequests = 0
		s.lastResetHour = hour
		s.updatedAt = now
		return true
	}
	return false
}

// CheckLimits compares the (already rolled-over) counters against the
// budget. Daily is checked before hourly. The daily retry hint aligns to the
// next UTC midnight; the hourly hint is one wall-clock hour from now, not
// the top of the next hour.
func (s *State) CheckLimits(limits Limits, now time.Time) error {
	now = now.UTC()
	if s.dailyRequests >= limits.Daily {
		return &LimitExceededError{
			Window:  WindowDaily,
			Limit:   limits.Daily,
			ResetAt: biztime.NextMidnightUTC(now),
		}
	}
	if s.hourlyRequests >= limits.Hourly() {
		return &LimitExceededError{
			Window:  WindowHourly,
			Limit:   limits.Hourly(),
			ResetAt: now.Add(time.Hour),
		}
	}
	return nil
}

// Consume takes one unit from both windows.
func (s *State) Consume(now time.Time) {
	s.dailyRequests++
	s.hourlyRequests++
	s.updatedAt = now.UTC()
}

// Refund returns the unit taken by a reservation made in the window
// identified by dateKey and hour. Units never cross window boundaries: if a
// window rolled since the reservation, its reset already discarded the unit
// and no decrement applies there. Returns true when a counter changed.
func (s *State) Refund(dateKey string, hour int, now time.Time) bool {
	changed := false
	if s.lastResetDate == dateKey {
		if s.dailyRequests > 0 {
			s.dailyRequests--
			changed = true
		}
		if s.lastResetHour == hour && s.hourlyRequests > 0 {
			s.hourlyRequests--
			changed = true
		}
	}
	if changed {
		s.updatedAt = now.UTC()
	}
	return changed
}

// SnapshotAt reports the effective budget position at the given instant.
// Callers must Rollover first for the counters to be current.
func (s *State) SnapshotAt(limits Limits, now time.Time) Snapshot {
	now = now.UTC()

	dailyRemaining := limits.Daily - s.dailyRequests
	if dailyRemaining < 0 {
		dailyRemaining = 0
	}
	hourlyRemaining := limits.Hourly() - s.hourlyRequests
	if hourlyRemaining < 0 {
		hourlyRemaining = 0
	}

	return Snapshot{
		DailyLimit:      limits.Daily,
		DailyUsed:       s.dailyRequests,
		DailyRemaining:  dailyRemaining,
		DailyResetAt:    biztime.NextMidnightUTC(now),
		HourlyLimit:     limits.Hourly(),
		HourlyUsed:      s.hourlyRequests,
		HourlyRemaining: hourlyRemaining,
		HourlyResetAt:   now.Add(time.Hour),
	}
}

// Validate performs domain-level validation
func (s *State) Validate() error {
	if s.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if s.dailyRequests < 0 || s.hourlyRequests < 0 {
		return fmt.Errorf("request counters cannot be negative")
	}
	if s.lastResetHour < 0 || s.lastResetHour > 23 {
		return fmt.Errorf("last reset hour must be 0-23, got %d", s.lastResetHour)
	}
	if s.lastResetDate != "" {
		if _, err := biztime.ParseUTCDateKey(s.lastResetDate); err != nil {
			return fmt.Errorf("last reset date is malformed: %w", err)
		}
	}
	return nil
}
