package usecases

import (
	"context"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/usage"
	"chroma/internal/shared/errors"
)

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

type mockEventRepository struct {
	CreateFunc                    func(ctx context.Context, event *usage.Event) error
	ListByUserIDFunc              func(ctx context.Context, userID string, limit, offset int) ([]*usage.Event, int64, error)
	CountInRangeFunc              func(ctx context.Context, from, to time.Time) (int64, error)
	CountSuccessInRangeFunc       func(ctx context.Context, from, to time.Time) (int64, error)
	CountDistinctUsersInRangeFunc func(ctx context.Context, from, to time.Time) (int64, error)
	DailyCountsFunc               func(ctx context.Context, from, to time.Time) ([]usage.DayCount, error)
	AverageProcessingMsSinceFunc  func(ctx context.Context, since time.Time) (float64, int64, error)
	DeleteOlderThanFunc           func(ctx context.Context, cutoff time.Time) (int64, error)
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
