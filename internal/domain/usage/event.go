// Package usage records processing attempts as append-only events. Events
// feed the aggregate analytics and age out after a fixed retention window;
// nothing ever updates an event in place.
package usage

import (
	"fmt"
	"time"

	"chroma/internal/shared/biztime"
	"chroma/internal/shared/id"
)

// EventTypeColorise is the event type recorded for colorization attempts.
// The only type today; the column exists so future processing modes share
// the same log.
const EventTypeColorise = "colorise"

// Event represents one processing attempt, success or failure.
type Event struct {
	id           uint
	sid          string // Stripe-style ID: evt_xxx
	userID       string
	eventType    string
	success      bool
	processingMs *uint64 // set on success, nil when the attempt never completed
	modelUsed    string  // provider/model that served (or last failed) the attempt
	ipAddress    string
	occurredAt   time.Time
	createdAt    time.Time
}

// NewEvent creates a usage event for a processing attempt.
func NewEvent(
	userID string,
	eventType string,
	success bool,
	processingMs *uint64,
	modelUsed string,
	ipAddress string,
) (*Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	sid, err := id.NewUsageEventID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Event{
		sid:          sid,
		userID:       userID,
		eventType:    eventType,
		success:      success,
		processingMs: processingMs,
		modelUsed:    modelUsed,
		ipAddress:    ipAddress,
		occurredAt:   now,
		createdAt:    now,
	}, nil
}

// ReconstructEvent reconstructs a usage event entity from persistence
func ReconstructEvent(
	id uint,
	sid string,
	userID string,
	eventType string,
	success bool,
	processingMs *uint64,
	modelUsed string,
	ipAddress string,
	occurredAt, createdAt time.Time,
) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("usage event ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("usage event SID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	return &Event{
		id:           id,
		sid:          sid,
		userID:       userID,
		eventType:    eventType,
		success:      success,
		processingMs: processingMs,
		modelUsed:    modelUsed,
		ipAddress:    ipAddress,
		occurredAt:   occurredAt,
		createdAt:    createdAt,
	}, nil
}

// ID returns the usage event record ID
func (e *Event) ID() uint {
	return e.id
}

// SID returns the Stripe-style ID
func (e *Event) SID() string {
	return e.sid
}

// UserID returns the identity that made the attempt
func (e *Event) UserID() string {
	return e.userID
}

// EventType returns the kind of processing attempted
func (e *Event) EventType() string {
	return e.eventType
}

// Success reports whether the attempt completed
func (e *Event) Success() bool {
	return e.success
}

// ProcessingMs returns the processing duration, nil when unavailable
func (e *Event) ProcessingMs() *uint64 {
	return e.processingMs
}

// ModelUsed returns the provider or model involved, if known
func (e *Event) ModelUsed() string {
	return e.modelUsed
}

// IPAddress returns the caller address, if known
func (e *Event) IPAddress() string {
	return e.ipAddress
}

// OccurredAt returns when the attempt happened
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// CreatedAt returns when the event row was written
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// SetID sets the usage event record ID (only for persistence layer use)
func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("usage event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("usage event ID cannot be zero")
	}
	e.id = id
	return nil
}

// Validate performs domain-level validation
func (e *Event) Validate() error {
	if e.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if e.eventType == "" {
		return fmt.Errorf("event type is required")
	}
	if e.success && e.processingMs == nil {
		return fmt.Errorf("successful events must carry a processing time")
	}
	return nil
}
