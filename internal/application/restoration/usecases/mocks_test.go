package usecases

import (
	"context"
	"sync"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/domain/usage"
	"chroma/internal/infrastructure/restoration"
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

type mockEventRepository struct {
	CreateFunc                   func(ctx context.Context, event *usage.Event) error
	ListByUserIDFunc             func(ctx context.Context, userID string, limit, offset int) ([]*usage.Event, int64, error)
	CountInRangeFunc             func(ctx context.Context, from, to time.Time) (int64, error)
	CountSuccessInRangeFunc      func(ctx context.Context, from, to time.Time) (int64, error)
	CountDistinctUsersInRangeFunc func(ctx context.Context, from, to time.Time) (int64, error)
	DailyCountsFunc              func(ctx context.Context, from, to time.Time) ([]usage.DayCount, error)
	AverageProcessingMsSinceFunc func(ctx context.Context, since time.Time) (float64, int64, error)
	DeleteOlderThanFunc          func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *usage.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*usage.Event, int64, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockEventRepository) CountInRange(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountInRangeFunc != nil {
		return m.CountInRangeFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockEventRepository) CountSuccessInRange(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountSuccessInRangeFunc != nil {
		return m.CountSuccessInRangeFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockEventRepository) CountDistinctUsersInRange(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountDistinctUsersInRangeFunc != nil {
		return m.CountDistinctUsersInRangeFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockEventRepository) DailyCounts(ctx context.Context, from, to time.Time) ([]usage.DayCount, error) {
	if m.DailyCountsFunc != nil {
		return m.DailyCountsFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockEventRepository) AverageProcessingMsSince(ctx context.Context, since time.Time) (float64, int64, error) {
	if m.AverageProcessingMsSinceFunc != nil {
		return m.AverageProcessingMsSinceFunc(ctx, since)
	}
	return 0, 0, nil
}

func (m *mockEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockRestorer struct {
	RestoreFunc func(ctx context.Context, image []byte, contentType string) (*restoration.Result, []restoration.Attempt, error)
	calls       int
}

func (m *mockRestorer) RestoreWithAttempts(ctx context.Context, image []byte, contentType string) (*restoration.Result, []restoration.Attempt, error) {
	m.calls++
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, image, contentType)
	}
	return &restoration.Result{
		ResultURL: "https://cdn.example/out.png",
		ModelID:   "deoldify-v2",
		ElapsedMs: 1500,
	}, nil, nil
}

// memStateRepo backs a real quota.Tracker in these tests, with the same
// conditional-update contract as the persistent repository.
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
