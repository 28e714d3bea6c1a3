package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/errors"
)

type mockIdentityRepository struct {
	CreateFunc            func(ctx context.Context, ident *identity.Identity) error
	GetByUserIDFunc       func(ctx context.Context, userID string) (*identity.Identity, error)
	UpdateFunc            func(ctx context.Context, ident *identity.Identity) error
	IncrementUsageFunc    func(ctx context.Context, userID string, processingMs uint64) error
	CountFunc             func(ctx context.Context) (int64, error)
	CountCreatedSinceFunc func(ctx context.Context, since time.Time) (int64, error)
	CountSeenSinceFunc    func(ctx context.Context, since time.Time) (int64, error)
}

func (m *mockIdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ident)
	}
	return nil
}

func (m *mockIdentityRepository) GetByUserID(ctx context.Context, userID string) (*identity.Identity, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, errors.NewNotFoundError("identity not found")
}

func (m *mockIdentityRepository) Update(ctx context.Context, ident *identity.Identity) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ident)
	}
	return nil
}

func (m *mockIdentityRepository) IncrementUsage(ctx context.Context, userID string, processingMs uint64) error {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, userID, processingMs)
	}
	return nil
}

func (m *mockIdentityRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockIdentityRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountCreatedSinceFunc != nil {
		return m.CountCreatedSinceFunc(ctx, since)
	}
	return 0, nil
}

func (m *mockIdentityRepository) CountSeenSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSeenSinceFunc != nil {
		return m.CountSeenSinceFunc(ctx, since)
	}
	return 0, nil
}

type mockSessionRepository struct {
	CreateFunc             func(ctx context.Context, session *identity.Session) error
	GetBySessionIDFunc     func(ctx context.Context, sessionID string) (*identity.Session, error)
	ListRecentByUserIDFunc func(ctx context.Context, userID string, limit int) ([]*identity.Session, error)
	CountByUserIDFunc      func(ctx context.Context, userID string) (int64, error)
	DeleteOlderThanFunc    func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, session *identity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*identity.Session, error) {
	if m.GetBySessionIDFunc != nil {
		return m.GetBySessionIDFunc(ctx, sessionID)
	}
	return nil, errors.NewNotFoundError("session not found")
}

func (m *mockSessionRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*identity.Session, error) {
	if m.ListRecentByUserIDFunc != nil {
		return m.ListRecentByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

// memStateRepo is an in-memory quota.StateRepository so tests can run a real
// Tracker instead of stubbing reservation semantics.
type memStateRepo struct {
	mu     sync.Mutex
	rows   map[string]*quota.State
	nextID uint
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{rows: make(map[string]*quota.State)}
}

func (r *memStateRepo) Create(_ context.Context, state *quota.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[state.UserID()]; ok {
		return nil
	}
	r.nextID++
	stored, err := quota.ReconstructState(
		r.nextID, state.UserID(),
		state.DailyRequests(), state.LastResetDate(),
		state.HourlyRequests(), state.LastResetHour(),
		state.CreatedAt(), state.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	r.rows[state.UserID()] = stored
	return nil
}

func (r *memStateRepo) GetByUserID(_ context.Context, userID string) (*quota.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rows[userID]
	if !ok {
		return nil, errors.NewNotFoundError("quota state not found")
	}
	return quota.ReconstructState(
		stored.ID(), stored.UserID(),
		stored.DailyRequests(), stored.LastResetDate(),
		stored.HourlyRequests(), stored.LastResetHour(),
		stored.CreatedAt(), stored.UpdatedAt(),
	)
}

func (r *memStateRepo) UpdateCounters(_ context.Context, state *quota.State, expected quota.CounterSnapshot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rows[state.UserID()]
	if !ok {
		return false, nil
	}
	if stored.Counters() != expected {
		return false, nil
	}
	updated, err := quota.ReconstructState(
		stored.ID(), stored.UserID(),
		state.DailyRequests(), state.LastResetDate(),
		state.HourlyRequests(), state.LastResetHour(),
		stored.CreatedAt(), state.UpdatedAt(),
	)
	if err != nil {
		return false, err
	}
	r.rows[state.UserID()] = updated
	return true, nil
}

type mockCredentialIssuer struct {
	GenerateFunc func(userID, sessionID string) (*IssuedCredential, error)
}

func (m *mockCredentialIssuer) Generate(userID, sessionID string) (*IssuedCredential, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, sessionID)
	}
	return &IssuedCredential{
		Token:     fmt.Sprintf("token-%s-%s", userID, sessionID),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		ExpiresIn: 86400,
	}, nil
}

// passThroughTxRunner runs the function directly; rollback behavior is owned
// by the real TransactionManager and covered in repository tests.
type passThroughTxRunner struct{}

func (passThroughTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
