package usecases

import (
	"context"
	"fmt"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/usage"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/logger"
)

const (
	defaultSessionRetention = 7 * 24 * time.Hour
	defaultEventRetention   = 90 * 24 * time.Hour
)

type RetentionSweepResult struct {
	SessionsDeleted int64
	EventsDeleted   int64
}

// RunRetentionSweepUseCase prunes expired sessions and usage events. It runs
// from the sweeper worker on a timer; handlers never call it.
type RunRetentionSweepUseCase struct {
	sessionRepo      identity.SessionRepository
	eventRepo        usage.EventRepository
	sessionRetention time.Duration
	eventRetention   time.Duration
	logger           logger.Interface
}

func NewRunRetentionSweepUseCase(
	sessionRepo identity.SessionRepository,
	eventRepo usage.EventRepository,
	sessionRetention time.Duration,
	eventRetention time.Duration,
	logger logger.Interface,
) *RunRetentionSweepUseCase {
	if sessionRetention <= 0 {
		sessionRetention = defaultSessionRetention
	}
	if eventRetention <= 0 {
		eventRetention = defaultEventRetention
	}
	return &RunRetentionSweepUseCase{
		sessionRepo:      sessionRepo,
		eventRepo:        eventRepo,
		sessionRetention: sessionRetention,
		eventRetention:   eventRetention,
		logger:           logger,
	}
}

// Execute prunes both tables. A failure on one table does not stop the other;
// the first error is returned after both deletes were attempted.
func (uc *RunRetentionSweepUseCase) Execute(ctx context.Context) (*RetentionSweepResult, error) {
	now := biztime.NowUTC()
	result := &RetentionSweepResult{}

	var sweepErr error

	sessionCutoff := now.Add(-uc.sessionRetention)
	sessions, err := uc.sessionRepo.DeleteOlderThan(ctx, sessionCutoff)
	if err != nil {
		uc.logger.Errorw("failed to prune sessions", "error", err, "cutoff", sessionCutoff)
		sweepErr = fmt.Errorf("failed to prune sessions: %w", err)
	} else {
		result.SessionsDeleted = sessions
	}

	eventCutoff := now.Add(-uc.eventRetention)
	events, err := uc.eventRepo.DeleteOlderThan(ctx, eventCutoff)
	if err != nil {
		uc.logger.Errorw("failed to prune usage events", "error", err, "cutoff", eventCutoff)
		if sweepErr == nil {
			sweepErr = fmt.Errorf("failed to prune usage events: %w", err)
		}
	} else {
		result.EventsDeleted = events
	}

	if sweepErr != nil {
		return nil, sweepErr
	}

	uc.logger.Infow("retention sweep completed",
		"sessions_deleted", result.SessionsDeleted,
		"events_deleted", result.EventsDeleted,
		"session_cutoff", sessionCutoff,
		"event_cutoff", eventCutoff)

	return result, nil
}
