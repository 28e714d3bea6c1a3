package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"chroma/internal/domain/identity"
	"chroma/internal/infrastructure/persistence/models"
)

// IdentityMapper handles the conversion between Identity domain entities and persistence models
type IdentityMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.IdentityModel) (*identity.Identity, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *identity.Identity) (*models.IdentityModel, error)
}

// IdentityMapperImpl is the concrete implementation of IdentityMapper
type IdentityMapperImpl struct{}

// NewIdentityMapper creates a new identity mapper
func NewIdentityMapper() IdentityMapper {
	return &IdentityMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *IdentityMapperImpl) ToEntity(model *models.IdentityModel) (*identity.Identity, error) {
	if model == nil {
		return nil, nil
	}

	var knownIPs []string
	if len(model.KnownIPs) > 0 {
		if err := json.Unmarshal(model.KnownIPs, &knownIPs); err != nil {
			return nil, fmt.Errorf("failed to decode known IPs: %w", err)
		}
	}

	entity, err := identity.ReconstructIdentity(
		model.ID,
		model.UserID,
		model.Fingerprint,
		model.RequestCount,
		model.TotalProcessingMs,
		knownIPs,
		model.LastSeenAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct identity entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *IdentityMapperImpl) ToModel(entity *identity.Identity) (*models.IdentityModel, error) {
	if entity == nil {
		return nil, nil
	}

	knownIPs, err := json.Marshal(entity.KnownIPs())
	if err != nil {
		return nil, fmt.Errorf("failed to encode known IPs: %w", err)
	}

	return &models.IdentityModel{
		ID:                entity.ID(),
		UserID:            entity.UserID(),
		Fingerprint:       entity.Fingerprint(),
		RequestCount:      entity.RequestCount(),
		TotalProcessingMs: entity.TotalProcessingMs(),
		KnownIPs:          datatypes.JSON(knownIPs),
		LastSeenAt:        entity.LastSeenAt(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}
