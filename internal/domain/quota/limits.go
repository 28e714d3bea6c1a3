// Package quota implements dual-window request budgeting per identity.
// Both windows reset lazily: every check first rolls the counters forward
// to the current UTC day and hour, then compares against the limits. No
// background scheduler touches the counters.
package quota

const (
	// DefaultDailyLimit is the fixed per-identity daily budget. Designed as
	// an extension point for per-tier limits; currently uniform.
	DefaultDailyLimit = 20

	// hourlyShare divides the daily budget to derive the hourly cap.
	hourlyShare = 4

	// minHourlyLimit keeps the hourly cap usable for small daily budgets.
	minHourlyLimit = 3
)

// Limits holds the per-identity request budget. The hourly cap is derived,
// never stored.
type Limits struct {
	Daily int
}

// NewLimits builds a Limits from the configured daily budget, falling back
// to the default when the value is unset or nonsensical.
func NewLimits(daily int) Limits {
	if daily <= 0 {
		daily = DefaultDailyLimit
	}
	return Limits{Daily: daily}
}

// Hourly returns the derived hourly cap: a quarter of the daily budget,
// floor-rounded, never below minHourlyLimit.
func (l Limits) Hourly() int {
	h := l.Daily / hourlyShare
	if h < minHourlyLimit {
		h = minHourlyLimit
	}
	return h
}
