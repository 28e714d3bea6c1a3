package models

import (
	"time"

	"gorm.io/datatypes"

	"chroma/internal/shared/constants"
)

// IdentityModel represents the database persistence model for anonymous identities
// This is the anti-corruption layer between domain and database
type IdentityModel struct {
	ID                uint           `gorm:"primarykey"`
	UserID            string         `gorm:"column:user_id;uniqueIndex;not null;size:128;comment:device fingerprint, doubles as the stable user ID"`
	Fingerprint       string         `gorm:"not null;size:128"`
	RequestCount      uint64         `gorm:"not null;default:0"`
	TotalProcessingMs uint64         `gorm:"column:total_processing_ms;not null;default:0"`
	KnownIPs          datatypes.JSON `gorm:"column:known_ips"`
	LastSeenAt        time.Time      `gorm:"not null;index"`
	CreatedAt         time.Time      `gorm:"index"`
	UpdatedAt         time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

// TableName specifies the table name for GORM
func (IdentityModel) TableName() string {
	return constants.TableIdentities
}
