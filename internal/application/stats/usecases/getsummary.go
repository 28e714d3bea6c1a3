package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/usage"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/logger"
)

const (
	defaultHistogramDays = 7
	// maxHistogramDays matches the event retention window; older buckets
	// would always read zero.
	maxHistogramDays = 90

	newReturningWindow = 24 * time.Hour
)

// SummaryCache stores rendered summaries keyed by window. Implementations
// may lose entries at any time; the usecase recomputes on every miss.
type SummaryCache interface {
	GetSummary(ctx context.Context, key string) ([]byte, bool, error)
	SetSummary(ctx context.Context, key string, payload []byte) error
}

type GetSummaryCommand struct {
	// Days is the histogram window; zero means the default.
	Days int
}

// DailyBucket is one fixed histogram bucket. Days without events carry an
// explicit zero.
type DailyBucket struct {
	Date  string
	Count int64
}

type GetSummaryResult struct {
	WindowDays             int
	TotalIdentities        int64
	TotalEvents            int64
	SuccessfulEvents       int64
	DistinctUsers          int64
	AvgProcessingMs        float64
	NewIdentities24h       int64
	ReturningIdentities24h int64
	Daily                  []DailyBucket
	GeneratedAt            time.Time
}

// GetSummaryUseCase aggregates the usage event log into anonymous service
// statistics. Everything here is whole-population; no per-identity detail
// leaves this layer.
type GetSummaryUseCase struct {
	identityRepo identity.IdentityRepository
	eventRepo    usage.EventRepository
	cache        SummaryCache
	logger       logger.Interface
}

// NewGetSummaryUseCase creates the summary usecase. cache may be nil when no
// Redis is configured; summaries are then computed on every call.
func NewGetSummaryUseCase(
	identityRepo identity.IdentityRepository,
	eventRepo usage.EventRepository,
	cache SummaryCache,
	logger logger.Interface,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		identityRepo: identityRepo,
		eventRepo:    eventRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *GetSummaryUseCase) Execute(ctx context.Context, cmd GetSummaryCommand) (*GetSummaryResult, error) {
	days := cmd.Days
	if days <= 0 {
		days = defaultHistogramDays
	}
	if days > maxHistogramDays {
		days = maxHistogramDays
	}

	cacheKey := fmt.Sprintf("%dd", days)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	now := biztime.NowUTC()
	from := biztime.StartOfUTCDay(now).AddDate(0, 0, -(days - 1))

	totalIdentities, err := uc.identityRepo.Count(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count identities", "error", err)
		return nil, fmt.Errorf("failed to count identities: %w", err)
	}

	totalEvents, err := uc.eventRepo.CountInRange(ctx, from, now)
	if err != nil {
		uc.logger.Errorw("failed to count events", "error", err)
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	successEvents, err := uc.eventRepo.CountSuccessInRange(ctx, from, now)
	if err != nil {
		uc.logger.Errorw("failed to count successful events", "error", err)
		return nil, fmt.Errorf("failed to count successful events: %w", err)
	}

	distinctUsers, err := uc.eventRepo.CountDistinctUsersInRange(ctx, from, now)
	if err != nil {
		uc.logger.Errorw("failed to count distinct users", "error", err)
		return nil, fmt.Errorf("failed to count distinct users: %w", err)
	}

	avgMs, _, err := uc.eventRepo.AverageProcessingMsSince(ctx, from)
	if err != nil {
		uc.logger.Errorw("failed to average processing time", "error", err)
		return nil, fmt.Errorf("failed to average processing time: %w", err)
	}

	buckets, err := uc.histogram(ctx, from, now, days)
	if err != nil {
		return nil, err
	}

	since := now.Add(-newReturningWindow)
	newIdentities, err := uc.identityRepo.CountCreatedSince(ctx, since)
	if err != nil {
		uc.logger.Errorw("failed to count new identities", "error", err)
		return nil, fmt.Errorf("failed to count new identities: %w", err)
	}
	activeIdentities, err := uc.identityRepo.CountSeenSince(ctx, since)
	if err != nil {
		uc.logger.Errorw("failed to count active identities", "error", err)
		return nil, fmt.Errorf("failed to count active identities: %w", err)
	}
	returning := activeIdentities - newIdentities
	if returning < 0 {
		returning = 0
	}

	result := &GetSummaryResult{
		WindowDays:             days,
		TotalIdentities:        totalIdentities,
		TotalEvents:            totalEvents,
		SuccessfulEvents:       successEvents,
		DistinctUsers:          distinctUsers,
		AvgProcessingMs:        avgMs,
		NewIdentities24h:       newIdentities,
		ReturningIdentities24h: returning,
		Daily:                  buckets,
		GeneratedAt:            now,
	}

	uc.toCache(ctx, cacheKey, result)
	return result, nil
}

// histogram densifies the per-day counts into one bucket per window day.
func (uc *GetSummaryUseCase) histogram(ctx context.Context, from, now time.Time, days int) ([]DailyBucket, error) {
	counts, err := uc.eventRepo.DailyCounts(ctx, from, now)
	if err != nil {
		uc.logger.Errorw("failed to load daily counts", "error", err)
		return nil, fmt.Errorf("failed to load daily counts: %w", err)
	}

	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}

	buckets := make([]DailyBucket, 0, days)
	for d := 0; d < days; d++ {
		key := biztime.UTCDateKey(from.AddDate(0, 0, d))
		buckets = append(buckets, DailyBucket{Date: key, Count: byDate[key]})
	}
	return buckets, nil
}

// fromCache returns a cached summary or nil. Cache trouble degrades to a
// recompute, never an error.
func (uc *GetSummaryUseCase) fromCache(ctx context.Context, key string) *GetSummaryResult {
	if uc.cache == nil {
		return nil
	}
	payload, ok, err := uc.cache.GetSummary(ctx, key)
	if err != nil {
		uc.logger.Warnw("stats cache read failed", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var cached GetSummaryResult
	if err := json.Unmarshal(payload, &cached); err != nil {
		uc.logger.Warnw("stats cache payload unreadable", "key", key, "error", err)
		return nil
	}
	return &cached
}

func (uc *GetSummaryUseCase) toCache(ctx context.Context, key string, result *GetSummaryResult) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		uc.logger.Warnw("stats cache encode failed", "key", key, "error", err)
		return
	}
	if err := uc.cache.SetSummary(ctx, key, payload); err != nil {
		uc.logger.Warnw("stats cache write failed", "key", key, "error", err)
	}
}
