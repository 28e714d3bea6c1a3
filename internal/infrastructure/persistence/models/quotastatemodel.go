package models

import (
	"time"

	"chroma/internal/shared/constants"
)

// QuotaStateModel represents the database persistence model for per-identity
// quota counters. The four counter columns together form the compare set of
// the conditional update in the repository; concurrent consumers only commit
// when all four still hold the values they read.
type QuotaStateModel struct {
	ID             uint      `gorm:"primarykey"`
	UserID         string    `gorm:"column:user_id;uniqueIndex;not null;size:128"`
	DailyRequests  int       `gorm:"not null;default:0"`
	LastResetDate  string    `gorm:"column:last_reset_date;not null;size:10;comment:UTC date key yyyy-mm-dd"`
	HourlyRequests int       `gorm:"not null;default:0"`
	LastResetHour  int       `gorm:"not null;default:0;comment:UTC hour 0-23"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (QuotaStateModel) TableName() string {
	return constants.TableQuotaStates
}
