package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chroma/internal/domain/usage"
	"chroma/internal/infrastructure/persistence/mappers"
	"chroma/internal/infrastructure/persistence/models"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/db"
	"chroma/internal/shared/logger"
)

// UsageEventRepositoryImpl implements the usage.EventRepository interface.
type UsageEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UsageEventMapper
	logger logger.Interface
}

// NewUsageEventRepository creates a new usage event repository instance.
func NewUsageEventRepository(db *gorm.DB, logger logger.Interface) usage.EventRepository {
	return &UsageEventRepositoryImpl{
		db:     db,
		mapper: mappers.NewUsageEventMapper(),
		logger: logger,
	}
}

// Create appends a usage event.
func (r *UsageEventRepositoryImpl) Create(ctx context.Context, event *usage.Event) error {
	model := r.mapper.ToModel(event)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create usage event", "user_id", event.UserID(), "error", err)
		return fmt.Errorf("failed to create usage event: %w", err)
	}

	if err := event.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set usage event ID", "error", err)
		return fmt.Errorf("failed to set usage event ID: %w", err)
	}

	return nil
}

// ListByUserID returns a page of one identity's events, newest first.
func (r *UsageEventRepositoryImpl) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*usage.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.UsageEventModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count usage events", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to count usage events: %w", err)
	}

	var eventModels []*models.UsageEventModel
	if err := tx.Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&eventModels).Error; err != nil {
		r.logger.Errorw("failed to list usage events", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list usage events: %w", err)
	}

	entities, err := r.mapper.ToEntities(eventModels)
	if err != nil {
		r.logger.Errorw("failed to map usage event models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map usage events: %w", err)
	}

	return entities, total, nil
}

// CountInRange counts events with occurredAt in [from, to).
func (r *UsageEventRepositoryImpl) CountInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UsageEventModel{}).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count usage events in range", "error", err)
		return 0, fmt.Errorf("failed to count usage events: %w", err)
	}

	return count, nil
}

// CountSuccessInRange counts successful events with occurredAt in [from, to).
func (r *UsageEventRepositoryImpl) CountSuccessInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UsageEventModel{}).
		Where("success = ? AND occurred_at >= ? AND occurred_at < ?", true, from, to).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count successful usage events", "error", err)
		return 0, fmt.Errorf("failed to count successful usage events: %w", err)
	}

	return count, nil
}

// CountDistinctUsersInRange counts distinct identities active in [from, to).
func (r *UsageEventRepositoryImpl) CountDistinctUsersInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UsageEventModel{}).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count distinct users", "error", err)
		return 0, fmt.Errorf("failed to count distinct users: %w", err)
	}

	return count, nil
}

// DailyCounts returns per-day event counts for occurredAt in [from, to),
// bucketed by UTC date. SQL date bucketing scans differently across the two
// supported drivers, so this issues one indexed count per day instead.
func (r *UsageEventRepositoryImpl) DailyCounts(ctx context.Context, from, to time.Time) ([]usage.DayCount, error) {
	counts := make([]usage.DayCount, 0)

	dayStart := biztime.StartOfUTCDay(from)
	for dayStart.Before(to) {
		dayEnd := dayStart.Add(24 * time.Hour)

		rangeStart := dayStart
		if rangeStart.Before(from) {
			rangeStart = from
		}
		rangeEnd := dayEnd
		if to.Before(rangeEnd) {
			rangeEnd = to
		}

		count, err := r.CountInRange(ctx, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			counts = append(counts, usage.DayCount{
				Date:  biztime.UTCDateKey(dayStart),
				Count: count,
			})
		}

		dayStart = dayEnd
	}

	return counts, nil
}

// AverageProcessingMsSince returns the mean processing time of successful
// events since the given instant, with the contributing event count.
func (r *UsageEventRepositoryImpl) AverageProcessingMsSince(ctx context.Context, since time.Time) (float64, int64, error) {
	var agg struct {
		AvgMs sql.NullFloat64 `gorm:"column:avg_ms"`
		Cnt   int64           `gorm:"column:cnt"`
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UsageEventModel{}).
		Select("AVG(processing_ms) AS avg_ms, COUNT(*) AS cnt").
		Where("success = ? AND occurred_at >= ?", true, since).
		Scan(&agg).Error; err != nil {
		r.logger.Errorw("failed to compute average processing time", "error", err)
		return 0, 0, fmt.Errorf("failed to compute average processing time: %w", err)
	}

	if !agg.AvgMs.Valid {
		return 0, 0, nil
	}

	return agg.AvgMs.Float64, agg.Cnt, nil
}

// DeleteOlderThan removes events that occurred before the cutoff.
func (r *UsageEventRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Scopes(db.OccurredBefore(cutoff)).Delete(&models.UsageEventModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete old usage events", "cutoff", cutoff, "error", result.Error)
		return 0, fmt.Errorf("failed to delete old usage events: %w", result.Error)
	}

	return result.RowsAffected, nil
}
