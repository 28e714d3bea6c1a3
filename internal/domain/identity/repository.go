package identity

import (
	"context"
	"time"
)

// IdentityRepository persists identities keyed by user ID (= fingerprint).
// Creation is idempotent: re-authenticating with a known fingerprint must
// never produce a second row.
type IdentityRepository interface {
	Create(ctx context.Context, ident *Identity) error
	GetByUserID(ctx context.Context, userID string) (*Identity, error)
	Update(ctx context.Context, ident *Identity) error

	// IncrementUsage atomically folds one successful processing attempt into
	// the lifetime counters without a read-modify-write round trip.
	IncrementUsage(ctx context.Context, userID string, processingMs uint64) error

	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountSeenSince(ctx context.Context, since time.Time) (int64, error)
}

// SessionRepository persists login events. The recent view is bounded at
// query time; rows persist until the retention sweep removes them.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetBySessionID(ctx context.Context, sessionID string) (*Session, error)
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*Session, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
