package mappers

import (
	"fmt"

	"chroma/internal/domain/identity"
	"chroma/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models
type SessionMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.SessionModel) (*identity.Session, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *identity.Session) *models.SessionModel

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.SessionModel) ([]*identity.Session, error)
}

// SessionMapperImpl is the concrete implementation of SessionMapper
type SessionMapperImpl struct{}

// NewSessionMapper creates a new session mapper
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *SessionMapperImpl) ToEntity(model *models.SessionModel) (*identity.Session, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := identity.ReconstructSession(
		model.ID,
		model.SessionID,
		model.UserID,
		model.IPAddress,
		model.UserAgent,
		model.AppVersion,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct session entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *SessionMapperImpl) ToModel(entity *identity.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}

	return &models.SessionModel{
		ID:         entity.ID(),
		SessionID:  entity.SessionID(),
		UserID:     entity.UserID(),
		IPAddress:  entity.IPAddress(),
		UserAgent:  entity.UserAgent(),
		AppVersion: entity.AppVersion(),
		CreatedAt:  entity.CreatedAt(),
	}
}

// ToEntities converts multiple persistence models to domain entities
func (m *SessionMapperImpl) ToEntities(sessionModels []*models.SessionModel) ([]*identity.Session, error) {
	if sessionModels == nil {
		return nil, nil
	}

	entities := make([]*identity.Session, 0, len(sessionModels))
	for _, model := range sessionModels {
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
