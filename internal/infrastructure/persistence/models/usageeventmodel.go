package models

import (
	"time"

	"chroma/internal/shared/constants"
)

// UsageEventModel represents the database persistence model for usage events.
// Rows are append-only; the retention sweep is the only delete path.
type UsageEventModel struct {
	ID           uint      `gorm:"primarykey"`
	SID          string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: evt_xxx"`
	UserID       string    `gorm:"not null;size:128;index:idx_usage_user_occurred,priority:1"`
	EventType    string    `gorm:"not null;size:32"`
	Success      bool      `gorm:"not null;default:false"`
	ProcessingMs *uint64   `gorm:"column:processing_ms"`
	ModelUsed    string    `gorm:"size:100"`
	IPAddress    string    `gorm:"size:45"`
	OccurredAt   time.Time `gorm:"not null;index:idx_usage_user_occurred,priority:2;index:idx_usage_occurred"`
	CreatedAt    time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

// TableName specifies the table name for GORM
func (UsageEventModel) TableName() string {
	return constants.TableUsageEvents
}
