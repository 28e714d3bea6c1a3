package mappers

import (
	"fmt"

	"chroma/internal/domain/usage"
	"chroma/internal/infrastructure/persistence/models"
)

// UsageEventMapper handles the conversion between usage Event domain entities and persistence models
type UsageEventMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UsageEventModel) (*usage.Event, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *usage.Event) *models.UsageEventModel

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.UsageEventModel) ([]*usage.Event, error)
}

// UsageEventMapperImpl is the concrete implementation of UsageEventMapper
type UsageEventMapperImpl struct{}

// NewUsageEventMapper creates a new usage event mapper
func NewUsageEventMapper() UsageEventMapper {
	return &UsageEventMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *UsageEventMapperImpl) ToEntity(model *models.UsageEventModel) (*usage.Event, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := usage.ReconstructEvent(
		model.ID,
		model.SID,
		model.UserID,
		model.EventType,
		model.Success,
		model.ProcessingMs,
		model.ModelUsed,
		model.IPAddress,
		model.OccurredAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct usage event entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *UsageEventMapperImpl) ToModel(entity *usage.Event) *models.UsageEventModel {
	if entity == nil {
		return nil
	}

	return &models.UsageEventModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		UserID:       entity.UserID(),
		EventType:    entity.EventType(),
		Success:      entity.Success(),
		ProcessingMs: entity.ProcessingMs(),
		ModelUsed:    entity.ModelUsed(),
		IPAddress:    entity.IPAddress(),
		OccurredAt:   entity.OccurredAt(),
		CreatedAt:    entity.CreatedAt(),
	}
}

// ToEntities converts multiple persistence models to domain entities
func (m *UsageEventMapperImpl) ToEntities(eventModels []*models.UsageEventModel) ([]*usage.Event, error) {
	if eventModels == nil {
		return nil, nil
	}

	entities := make([]*usage.Event, 0, len(eventModels))
	for _, model := range eventModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}
