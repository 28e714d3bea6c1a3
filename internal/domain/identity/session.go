package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"chroma/internal/shared/biztime"
)

// Session records one login event for an identity. Sessions are never
// refreshed or extended; a new login always creates a new session.
type Session struct {
	id         uint
	sessionID  string
	userID     string
	ipAddress  string
	userAgent  string
	appVersion string
	createdAt  time.Time
}

// NewSession creates a session for a login event with a fresh UUID.
func NewSession(userID, ipAddress, userAgent, appVersion string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Session{
		sessionID:  uuid.NewString(),
		userID:     userID,
		ipAddress:  ipAddress,
		userAgent:  userAgent,
		appVersion: appVersion,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructSession reconstructs a session entity from persistence
func ReconstructSession(
	id uint,
	sessionID string,
	userID string,
	ipAddress, userAgent, appVersion string,
	createdAt time.Time,
) (*Session, error) {
	if id == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session UUID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Session{
		id:         id,
		sessionID:  sessionID,
		userID:     userID,
		ipAddress:  ipAddress,
		userAgent:  userAgent,
		appVersion: appVersion,
		createdAt:  createdAt,
	}, nil
}

// ID returns the session record ID
func (s *Session) ID() uint {
	return s.id
}

// SessionID returns the session UUID embedded in issued credentials
func (s *Session) SessionID() string {
	return s.sessionID
}

// UserID returns the owning identity's user ID
func (s *Session) UserID() string {
	return s.userID
}

// IPAddress returns the caller address at login
func (s *Session) IPAddress() string {
	return s.ipAddress
}

// UserAgent returns the client user agent at login
func (s *Session) UserAgent() string {
	return s.userAgent
}

// AppVersion returns the client-reported application version, if any
func (s *Session) AppVersion() string {
	return s.appVersion
}

// CreatedAt returns when the login occurred
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// SetID sets the session record ID (only for persistence layer use)
func (s *Session) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = id
	return nil
}

// Validate performs domain-level validation
func (s *Session) Validate() error {
	if s.sessionID == "" {
		return fmt.Errorf("session UUID is required")
	}
	if s.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if _, err := uuid.Parse(s.sessionID); err != nil {
		return fmt.Errorf("session UUID is malformed: %w", err)
	}
	return nil
}
