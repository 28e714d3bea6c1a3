package quota

import (
	"context"
	"time"

	"chroma/internal/shared/errors"
)

// maxReserveAttempts bounds the conditional-update retry loop. Every lost
// round implies another writer made progress on the same identity's row, so
// contention is self-limiting; losing this many rounds in a row indicates
// something is wrong.
const maxReserveAttempts = 8

// Tracker enforces the dual-window budget. Reserve combines the lazy
// rollover, the limit check, and the consumption into one conditional
// update so that two concurrent requests can never both pass a full window.
// No lock is held across the slow processing call: callers Reserve before
// the call and Release if it fails.
type Tracker struct {
	states StateRepository
	limits Limits
}

// NewTracker creates a quota tracker with the given budget.
func NewTracker(states StateRepository, limits Limits) *Tracker {
	return &Tracker{
		states: states,
		limits: limits,
	}
}

// Limits returns the tracker's configured budget.
func (t *Tracker) Limits() Limits {
	return t.limits
}

// Reserve takes one unit from both windows after rolling them forward and
// checking the limits. Returns LimitExceededError when a window is
// exhausted. The returned reservation carries the window markers needed to
// refund the unit if the protected call fails.
func (t *Tracker) Reserve(ctx context.Context, userID string, now time.Time) (*Reservation, error) {
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		state, err := t.states.GetByUserID(ctx, userID)
		if err != nil {
			if !errors.IsNotFoundError(err) {
				return nil, err
			}
			if err := t.createFresh(ctx, userID, now); err != nil {
				return nil, err
			}
			continue
		}

		expected := state.Counters()
		state.Rollover(now)

		if err := state.CheckLimits(t.limits, now); err != nil {
			// Persist the rollover when it changed anything so stored
			// counters stay current; a lost race means another writer
			// already advanced the window.
			if state.Counters() != expected {
				if _, casErr := t.states.UpdateCounters(ctx, state, expected); casErr != nil {
					return nil, casErr
				}
			}
			return nil, err
		}

		state.Consume(now)

		ok, err := t.states.UpdateCounters(ctx, state, expected)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Reservation{
				UserID:   userID,
				DateKey:  state.LastResetDate(),
				Hour:     state.LastResetHour(),
				Snapshot: state.SnapshotAt(t.limits, now),
			}, nil
		}
	}
	return nil, errors.NewInternalError("quota reservation failed", "contention retries exhausted")
}

// Release refunds a reservation after a failed processing attempt. The unit
// goes back only to the windows it was taken from; elapsed windows already
// discarded it during rollover.
func (t *Tracker) Release(ctx context.Context, res *Reservation, now time.Time) error {
	if res == nil {
		return nil
	}

	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		state, err := t.states.GetByUserID(ctx, res.UserID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil
			}
			return err
		}

		expected := state.Counters()
		state.Rollover(now)

		if !state.Refund(res.DateKey, res.Hour, now) && state.Counters() == expected {
			return nil
		}

		ok, err := t.states.UpdateCounters(ctx, state, expected)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return errors.NewInternalError("quota release failed", "contention retries exhausted")
}

// Peek reports the effective budget position without consuming anything.
// The rollover is applied in memory only; the stored row is untouched.
func (t *Tracker) Peek(ctx context.Context, userID string, now time.Time) (Snapshot, error) {
	state, err := t.states.GetByUserID(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	state.Rollover(now)
	return state.SnapshotAt(t.limits, now), nil
}

// EnsureExists creates a zeroed state for the identity if none exists and
// returns the effective snapshot either way. Authentication calls this so
// that the first protected request always finds a row.
func (t *Tracker) EnsureExists(ctx context.Context, userID string, now time.Time) (Snapshot, error) {
	state, err := t.states.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			return Snapshot{}, err
		}
		if err := t.createFresh(ctx, userID, now); err != nil {
			return Snapshot{}, err
		}
		fresh, err := NewState(userID, now)
		if err != nil {
			return Snapshot{}, err
		}
		return fresh.SnapshotAt(t.limits, now), nil
	}

	state.Rollover(now)
	return state.SnapshotAt(t.limits, now), nil
}

func (t *Tracker) createFresh(ctx context.Context, userID string, now time.Time) error {
	fresh, err := NewState(userID, now)
	if err != nil {
		return err
	}
	return t.states.Create(ctx, fresh)
}
