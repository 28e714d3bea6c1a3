package handlers

import (
	"context"

	identityUsecases "chroma/internal/application/identity/usecases"
	maintenanceUsecases "chroma/internal/application/maintenance/usecases"
	restorationUsecases "chroma/internal/application/restoration/usecases"
	statsUsecases "chroma/internal/application/stats/usecases"
	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
)

// Use case interfaces for handlers - enables unit testing with mocks.

type authenticateUseCase interface {
	Execute(ctx context.Context, cmd identityUsecases.AuthenticateCommand) (*identityUsecases.AuthenticateResult, error)
}

type usageStatsUseCase interface {
	Execute(ctx context.Context, cmd identityUsecases.GetUsageStatsCommand) (*identityUsecases.GetUsageStatsResult, error)
}

type colorizeUseCase interface {
	Execute(ctx context.Context, cmd restorationUsecases.ColorizeCommand) (*restorationUsecases.ColorizeResult, error)
}

type summaryUseCase interface {
	Execute(ctx context.Context, cmd statsUsecases.GetSummaryCommand) (*statsUsecases.GetSummaryResult, error)
}

type retentionSweepUseCase interface {
	Execute(ctx context.Context) (*maintenanceUsecases.RetentionSweepResult, error)
}

// Read-only repository views used by the debug handler.

type identityReader interface {
	GetByUserID(ctx context.Context, userID string) (*identity.Identity, error)
}

type quotaStateReader interface {
	GetByUserID(ctx context.Context, userID string) (*quota.State, error)
}
