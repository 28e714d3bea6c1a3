package quota

import "context"

// StateRepository persists per-identity quota state. One row per identity.
type StateRepository interface {
	// Create inserts a zeroed state. Inserting an existing user ID is a
	// no-op, never an error: concurrent first requests race to create.
	Create(ctx context.Context, state *State) error

	GetByUserID(ctx context.Context, userID string) (*State, error)

	// UpdateCounters persists the state's counters only if the stored row
	// still matches the expected previous values (a conditional update).
	// Returns false when a concurrent writer modified the row first; the
	// caller re-reads and retries.
	UpdateCounters(ctx context.Context, state *State, expected CounterSnapshot) (bool, error)
}
