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

// IdentityRepositoryImpl implements the identity.IdentityRepository interface.
type IdentityRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.IdentityMapper
	logger logger.Interface
}

// NewIdentityRepository creates a new identity repository instance.
func NewIdentityRepository(db *gorm.DB, logger logger.Interface) identity.IdentityRepository {
	return &IdentityRepositoryImpl{
		db:     db,
		mapper: mappers.NewIdentityMapper(),
		logger: logger,
	}
}

// Create persists a new identity. A duplicate user ID maps to a conflict
// error so callers can fall back to fetching the row another writer won.
func (r *IdentityRepositoryImpl) Create(ctx context.Context, ident *identity.Identity) error {
	model, err := r.mapper.ToModel(ident)
	if err != nil {
		r.logger.Errorw("failed to map identity entity to model", "error", err)
		return fmt.Errorf("failed to map identity entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("identity already exists")
		}
		r.logger.Errorw("failed to create identity in database", "error", err)
		return fmt.Errorf("failed to create identity: %w", err)
	}

	if err := ident.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set identity ID", "error", err)
		return fmt.Errorf("failed to set identity ID: %w", err)
	}

	return nil
}

// GetByUserID retrieves an identity by its stable user ID.
func (r *IdentityRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*identity.Identity, error) {
	var model models.IdentityModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("identity not found")
		}
		r.logger.Errorw("failed to get identity by user ID", "error", err)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map identity model to entity", "error", err)
		return nil, fmt.Errorf("failed to map identity: %w", err)
	}

	return entity, nil
}

// Update saves the full identity row, including the known IP set.
func (r *IdentityRepositoryImpl) Update(ctx context.Context, ident *identity.Identity) error {
	model, err := r.mapper.ToModel(ident)
	if err != nil {
		r.logger.Errorw("failed to map identity entity to model", "error", err)
		return fmt.Errorf("failed to map identity entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Save(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update identity in database", "error", result.Error)
		return fmt.Errorf("failed to update identity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("identity not found")
	}

	return nil
}

// IncrementUsage accumulates one successful request into the lifetime
// counters in a single statement, so concurrent requests never lose counts.
func (r *IdentityRepositoryImpl) IncrementUsage(ctx context.Context, userID string, processingMs uint64) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.IdentityModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"request_count":       gorm.Expr("request_count + ?", 1),
			"total_processing_ms": gorm.Expr("total_processing_ms + ?", processingMs),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to increment identity usage", "error", result.Error)
		return fmt.Errorf("failed to increment identity usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("identity not found")
	}

	return nil
}

// Count returns the total number of identities.
func (r *IdentityRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.IdentityModel{}).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count identities", "error", err)
		return 0, fmt.Errorf("failed to count identities: %w", err)
	}

	return count, nil
}

// CountCreatedSince counts identities first seen at or after the given instant.
func (r *IdentityRepositoryImpl) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.IdentityModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count new identities", "error", err)
		return 0, fmt.Errorf("failed to count new identities: %w", err)
	}

	return count, nil
}

// CountSeenSince counts identities that authenticated at or after the given instant.
func (r *IdentityRepositoryImpl) CountSeenSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.IdentityModel{}).
		Where("last_seen_at >= ?", since).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count recently seen identities", "error", err)
		return 0, fmt.Errorf("failed to count recently seen identities: %w", err)
	}

	return count, nil
}
