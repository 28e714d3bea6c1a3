package models

import (
	"time"

	"chroma/internal/shared/constants"
)

// SessionModel represents the database persistence model for authentication
// sessions. Sessions are observational only: tokens stay valid after their
// session row ages out, so there is no expiry column.
type SessionModel struct {
	ID         uint      `gorm:"primarykey"`
	SessionID  string    `gorm:"column:session_id;uniqueIndex;not null;size:36;comment:UUID"`
	UserID     string    `gorm:"not null;size:128;index:idx_sessions_user_created,priority:1"`
	IPAddress  string    `gorm:"size:45"`
	UserAgent  string    `gorm:"size:512"`
	AppVersion string    `gorm:"size:50"`
	CreatedAt  time.Time `gorm:"index:idx_sessions_user_created,priority:2;index:idx_sessions_created"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableSessions
}
