package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chroma/internal/domain/identity"
	"chroma/internal/infrastructure/persistence/mappers"
	"chroma/internal/infrastructure/persistence/models"
	"chroma/internal/shared/db"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
)

// SessionRepositoryImpl implements the identity.SessionRepository interface.
type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
	logger logger.Interface
}

// NewSessionRepository creates a new session repository instance.
func NewSessionRepository(db *gorm.DB, logger logger.Interface) identity.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSessionMapper(),
		logger: logger,
	}
}

// Create persists a new session.
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *identity.Session) error {
	model := r.mapper.ToModel(session)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create session in database", "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := session.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set session ID", "error", err)
		return fmt.Errorf("failed to set session ID: %w", err)
	}

	return nil
}

// GetBySessionID retrieves a session by its UUID.
func (r *SessionRepositoryImpl) GetBySessionID(ctx context.Context, sessionID string) (*identity.Session, error) {
	var model models.SessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("session_id = ?", sessionID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		r.logger.Errorw("failed to get session by session ID", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListRecentByUserID returns one identity's newest sessions, capped at limit.
func (r *SessionRepositoryImpl) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*identity.Session, error) {
	var sessionModels []*models.SessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list recent sessions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}

	return r.mapper.ToEntities(sessionModels)
}

// CountByUserID counts one identity's stored sessions.
func (r *SessionRepositoryImpl) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.SessionModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count sessions", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// DeleteOlderThan removes sessions created before the cutoff. Tokens minted
// from those sessions stay valid; the rows are observational only.
func (r *SessionRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Scopes(db.CreatedBefore(cutoff)).Delete(&models.SessionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete old sessions", "cutoff", cutoff, "error", result.Error)
		return 0, fmt.Errorf("failed to delete old sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}
