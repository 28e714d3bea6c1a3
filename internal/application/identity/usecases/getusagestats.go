package usecases

import (
	"context"
	"fmt"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
)

// recentSessionLimit bounds the session view. Older rows stay in storage
// until the retention sweep removes them; only the display is trimmed.
const recentSessionLimit = 5

type GetUsageStatsCommand struct {
	UserID string
}

// SessionView is the display shape of one recent login.
type SessionView struct {
	SessionID  string
	IPAddress  string
	UserAgent  string
	AppVersion string
	CreatedAt  time.Time
}

type GetUsageStatsResult struct {
	UserID              string
	RequestCount        uint64
	TotalProcessingMs   uint64
	AverageProcessingMs uint64
	KnownIPs            []string
	CreatedAt           time.Time
	LastSeenAt          time.Time
	Limits              quota.Snapshot
	RecentSessions      []SessionView
}

// GetUsageStatsUseCase reports an identity's lifetime counters, current
// budget position, and recent logins. Read only: the stored quota row is
// never touched, even when a window rollover is due.
type GetUsageStatsUseCase struct {
	identityRepo identity.IdentityRepository
	sessionRepo  identity.SessionRepository
	tracker      *quota.Tracker
	logger       logger.Interface
}

func NewGetUsageStatsUseCase(
	identityRepo identity.IdentityRepository,
	sessionRepo identity.SessionRepository,
	tracker *quota.Tracker,
	logger logger.Interface,
) *GetUsageStatsUseCase {
	return &GetUsageStatsUseCase{
		identityRepo: identityRepo,
		sessionRepo:  sessionRepo,
		tracker:      tracker,
		logger:       logger,
	}
}

func (uc *GetUsageStatsUseCase) Execute(ctx context.Context, cmd GetUsageStatsCommand) (*GetUsageStatsResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user ID is required")
	}

	ident, err := uc.identityRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load identity", "error", err)
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	now := biztime.NowUTC()
	snapshot, err := uc.tracker.Peek(ctx, cmd.UserID, now)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to read quota state", "error", err)
			return nil, fmt.Errorf("failed to read quota state: %w", err)
		}
		// Identity exists but never got a quota row; report an untouched
		// budget instead of creating one on a read path.
		fresh, ferr := quota.NewState(cmd.UserID, now)
		if ferr != nil {
			return nil, fmt.Errorf("failed to derive quota snapshot: %w", ferr)
		}
		snapshot = fresh.SnapshotAt(uc.tracker.Limits(), now)
	}

	sessions, err := uc.sessionRepo.ListRecentByUserID(ctx, cmd.UserID, recentSessionLimit)
	if err != nil {
		uc.logger.Errorw("failed to list recent sessions", "error", err)
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}

	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, SessionView{
			SessionID:  s.SessionID(),
			IPAddress:  s.IPAddress(),
			UserAgent:  s.UserAgent(),
			AppVersion: s.AppVersion(),
			CreatedAt:  s.CreatedAt(),
		})
	}

	return &GetUsageStatsResult{
		UserID:              ident.UserID(),
		RequestCount:        ident.RequestCount(),
		TotalProcessingMs:   ident.TotalProcessingMs(),
		AverageProcessingMs: ident.AverageProcessingMs(),
		KnownIPs:            ident.KnownIPs(),
		CreatedAt:           ident.CreatedAt(),
		LastSeenAt:          ident.LastSeenAt(),
		Limits:              snapshot,
		RecentSessions:      views,
	}, nil
}
