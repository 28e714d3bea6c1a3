package mappers

import (
	"fmt"

	"chroma/internal/domain/quota"
	"chroma/internal/infrastructure/persistence/models"
)

// QuotaStateMapper handles the conversion between quota State domain entities and persistence models
type QuotaStateMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.QuotaStateModel) (*quota.State, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *quota.State) *models.QuotaStateModel
}

// QuotaStateMapperImpl is the concrete implementation of QuotaStateMapper
type QuotaStateMapperImpl struct{}

// NewQuotaStateMapper creates a new quota state mapper
func NewQuotaStateMapper() QuotaStateMapper {
	return &QuotaStateMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *QuotaStateMapperImpl) ToEntity(model *models.QuotaStateModel) (*quota.State, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := quota.ReconstructState(
		model.ID,
		model.UserID,
		model.DailyRequests,
		model.LastResetDate,
		model.HourlyRequests,
		model.LastResetHour,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct quota state entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *QuotaStateMapperImpl) ToModel(entity *quota.State) *models.QuotaStateModel {
	if entity == nil {
		return nil
	}

	return &models.QuotaStateModel{
		ID:             entity.ID(),
		UserID:         entity.UserID(),
		DailyRequests:  entity.DailyRequests(),
		LastResetDate:  entity.LastResetDate(),
		HourlyRequests: entity.HourlyRequests(),
		LastResetHour:  entity.LastResetHour(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}
