package identity

import (
	"fmt"
	"time"

	"chroma/internal/shared/biztime"
)

// Identity represents a pseudonymous user keyed by a client-supplied device
// fingerprint. The fingerprint doubles as the stable user ID; no stronger
// identity proofing exists, so the entity only supports abuse mitigation,
// not authentication of a person.
type Identity struct {
	id                uint
	userID            string
	fingerprint       string
	requestCount      uint64
	totalProcessingMs uint64
	knownIPs          []string
	lastSeenAt        time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewIdentity creates a new identity for a device fingerprint. The caller IP,
// when known, seeds the known address set.
func NewIdentity(fingerprint, ipAddress string) (*Identity, error) {
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint is required")
	}

	now := biztime.NowUTC()
	ident := &Identity{
		userID:      fingerprint,
		fingerprint: fingerprint,
		knownIPs:    []string{},
		lastSeenAt:  now,
		createdAt:   now,
		updatedAt:   now,
	}
	if ipAddress != "" {
		ident.knownIPs = append(ident.knownIPs, ipAddress)
	}
	return ident, nil
}

// ReconstructIdentity reconstructs an identity entity from persistence
func ReconstructIdentity(
	id uint,
	userID string,
	fingerprint string,
	requestCount uint64,
	totalProcessingMs uint64,
	knownIPs []string,
	lastSeenAt, createdAt, updatedAt time.Time,
) (*Identity, error) {
	if id == 0 {
		return nil, fmt.Errorf("identity ID cannot be zero")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if knownIPs == nil {
		knownIPs = []string{}
	}

	return &Identity{
		id:                id,
		userID:            userID,
		fingerprint:       fingerprint,
		requestCount:      requestCount,
		totalProcessingMs: totalProcessingMs,
		knownIPs:          knownIPs,
		lastSeenAt:        lastSeenAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

// ID returns the identity record ID
func (i *Identity) ID() uint {
	return i.id
}

// UserID returns the stable user identifier (equal to the fingerprint at creation)
func (i *Identity) UserID() string {
	return i.userID
}

// Fingerprint returns the stored device fingerprint
func (i *Identity) Fingerprint() string {
	return i.fingerprint
}

// RequestCount returns the lifetime number of successful processing requests
func (i *Identity) RequestCount() uint64 {
	return i.requestCount
}

// TotalProcessingMs returns the lifetime sum of processing durations in milliseconds
func (i *Identity) TotalProcessingMs() uint64 {
	return i.totalProcessingMs
}

// AverageProcessingMs returns the running average processing time, derived
// from the lifetime totals. Returns 0 before the first successful request.
func (i *Identity) AverageProcessingMs() uint64 {
	if i.requestCount == 0 {
		return 0
	}
	return i.totalProcessingMs / i.requestCount
}

// KnownIPs returns a copy of the append-only set of caller addresses
func (i *Identity) KnownIPs() []string {
	out := make([]string, len(i.knownIPs))
	copy(out, i.knownIPs)
	return out
}

// LastSeenAt returns when the identity last authenticated
func (i *Identity) LastSeenAt() time.Time {
	return i.lastSeenAt
}

// CreatedAt returns when the identity was first seen
func (i *Identity) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns when the identity record was last modified
func (i *Identity) UpdatedAt() time.Time {
	return i.updatedAt
}

// SetID sets the identity record ID (only for persistence layer use)
func (i *Identity) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("identity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("identity ID cannot be zero")
	}
	i.id = id
	return nil
}

// MatchesFingerprint reports whether the supplied fingerprint equals the
// stored one. A mismatch is logged by callers but never rejects the login:
// fingerprints are client-supplied and spoofable, so rejection would add no
// security while locking out legitimate clients whose fingerprint drifted.
func (i *Identity) MatchesFingerprint(supplied string) bool {
	return i.fingerprint == supplied
}

// RecordLogin updates last-seen and unions the caller IP into the known set.
// The set is append-only; addresses are never removed.
func (i *Identity) RecordLogin(ipAddress string) {
	now := biztime.NowUTC()
	i.lastSeenAt = now
	i.updatedAt = now

	if ipAddress == "" {
		return
	}
	for _, known := range i.knownIPs {
		if known == ipAddress {
			return
		}
	}
	i.knownIPs = append(i.knownIPs, ipAddress)
}

// RecordUsage accumulates one successful processing attempt into the
// lifetime counters. Persistence performs the equivalent update atomically;
// this keeps the in-memory entity consistent for callers that hold one.
func (i *Identity) RecordUsage(processingMs uint64) {
	i.requestCount++
	i.totalProcessingMs += processingMs
	i.updatedAt = biztime.NowUTC()
}

// Validate performs domain-level validation
func (i *Identity) Validate() error {
	if i.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if i.fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	return nil
}
