package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chroma/internal/domain/quota"
	"chroma/internal/infrastructure/persistence/mappers"
	"chroma/internal/infrastructure/persistence/models"
	"chroma/internal/shared/db"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
)

// QuotaStateRepositoryImpl implements the quota.StateRepository interface.
type QuotaStateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.QuotaStateMapper
	logger logger.Interface
}

// NewQuotaStateRepository creates a new quota state repository instance.
func NewQuotaStateRepository(db *gorm.DB, logger logger.Interface) quota.StateRepository {
	return &QuotaStateRepositoryImpl{
		db:     db,
		mapper: mappers.NewQuotaStateMapper(),
		logger: logger,
	}
}

// Create inserts a fresh quota state. An existing row for the same user ID
// is left untouched, which makes concurrent first-time creation safe.
func (r *QuotaStateRepositoryImpl) Create(ctx context.Context, state *quota.State) error {
	model := r.mapper.ToModel(state)

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to create quota state", "user_id", state.UserID(), "error", err)
		return fmt.Errorf("failed to create quota state: %w", err)
	}

	// On conflict the insert is skipped and the model keeps a zero ID.
	if state.ID() == 0 && model.ID != 0 {
		if err := state.SetID(model.ID); err != nil {
			r.logger.Warnw("failed to set quota state ID", "error", err)
		}
	}

	return nil
}

// GetByUserID retrieves the quota state for an identity.
func (r *QuotaStateRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*quota.State, error) {
	var model models.QuotaStateModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("quota state not found")
		}
		r.logger.Errorw("failed to get quota state by user ID", "error", err)
		return nil, fmt.Errorf("failed to get quota state: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map quota state model to entity", "error", err)
		return nil, fmt.Errorf("failed to map quota state: %w", err)
	}

	return entity, nil
}

// UpdateCounters writes the state's counters only if the stored row still
// holds the expected values, and reports whether the write won. This is the
// atomic check-and-consume primitive: losing the compare means another
// request updated the row first, and the caller re-reads and retries.
//
// The MySQL driver reports changed rows rather than matched rows, so callers
// must never submit a counter set equal to the expected one; every writer
// here changes at least one counter or marker.
func (r *QuotaStateRepositoryImpl) UpdateCounters(ctx context.Context, state *quota.State, expected quota.CounterSnapshot) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.QuotaStateModel{}).
		Where("user_id = ? AND daily_requests = ? AND last_reset_date = ? AND hourly_requests = ? AND last_reset_hour = ?",
			state.UserID(),
			expected.DailyRequests,
			expected.LastResetDate,
			expected.HourlyRequests,
			expected.LastResetHour,
		).
		Updates(map[string]interface{}{
			"daily_requests":  state.DailyRequests(),
			"last_reset_date": state.LastResetDate(),
			"hourly_requests": state.HourlyRequests(),
			"last_reset_hour": state.LastResetHour(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update quota counters", "user_id", state.UserID(), "error", result.Error)
		return false, fmt.Errorf("failed to update quota counters: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}
