package usage

import (
	"strings"
	"testing"
	"time"
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func TestNewEvent(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		eventType string
		success   bool
		wantErr   bool
	}{
		{
			name:      "valid success event",
			userID:    "fp-alpha",
			eventType: EventTypeColorise,
			success:   true,
			wantErr:   false,
		},
		{
			name:      "valid failure event",
			userID:    "fp-alpha",
			eventType: EventTypeColorise,
			success:   false,
			wantErr:   false,
		},
		{
			name:      "empty user ID",
			userID:    "",
			eventType: EventTypeColorise,
			wantErr:   true,
		},
		{
			name:      "empty event type",
			userID:    "fp-alpha",
			eventType: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewEvent(tt.userID, tt.eventType, tt.success, nil, "", "203.0.113.9")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.HasPrefix(event.SID(), "evt_") {
				t.Errorf("SID() = %q, want evt_ prefix", event.SID())
			}
			if event.Success() != tt.success {
				t.Errorf("Success() = %v, want %v", event.Success(), tt.success)
			}
			if event.OccurredAt().IsZero() {
				t.Error("OccurredAt() should be set")
			}
			if !event.OccurredAt().Equal(event.CreatedAt()) {
				t.Error("new events should occur at their creation time")
			}
		})
	}
}

func TestNewEventOptionalFields(t *testing.T) {
	event, err := NewEvent("fp-alpha", EventTypeColorise, true, uint64Ptr(1830), "deoldify-v2", "203.0.113.9")
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	if event.ProcessingMs() == nil || *event.ProcessingMs() != 1830 {
		t.Errorf("ProcessingMs() = %v, want 1830", event.ProcessingMs())
	}
	if event.ModelUsed() != "deoldify-v2" {
		t.Errorf("ModelUsed() = %q, want deoldify-v2", event.ModelUsed())
	}
	if event.IPAddress() != "203.0.113.9" {
		t.Errorf("IPAddress() = %q, want 203.0.113.9", event.IPAddress())
	}
}

func TestReconstructEvent(t *testing.T) {
	occurred := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      uint
		sid     string
		userID  string
		evType  string
		wantErr bool
	}{
		{"valid", 7, "evt_AbCdEf123456", "fp-alpha", EventTypeColorise, false},
		{"zero ID", 0, "evt_AbCdEf123456", "fp-alpha", EventTypeColorise, true},
		{"empty SID", 7, "", "fp-alpha", EventTypeColorise, true},
		{"empty user ID", 7, "evt_AbCdEf123456", "", EventTypeColorise, true},
		{"empty event type", 7, "evt_AbCdEf123456", "fp-alpha", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ReconstructEvent(tt.id, tt.sid, tt.userID, tt.evType, true, uint64Ptr(900), "", "", occurred, occurred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReconstructEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && event.ID() != tt.id {
				t.Errorf("ID() = %d, want %d", event.ID(), tt.id)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	valid, err := NewEvent("fp-alpha", EventTypeColorise, true, uint64Ptr(640), "deoldify-v2", "")
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	// A success without a recorded duration is malformed.
	noDuration, err := NewEvent("fp-alpha", EventTypeColorise, true, nil, "deoldify-v2", "")
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if err := noDuration.Validate(); err == nil {
		t.Error("Validate() should reject a successful event without processing time")
	}

	// Failures legitimately have no duration.
	failure, err := NewEvent("fp-alpha", EventTypeColorise, false, nil, "deoldify-v2", "")
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if err := failure.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil for failure event", err)
	}
}

func TestEventSetID(t *testing.T) {
	event, err := NewEvent("fp-alpha", EventTypeColorise, false, nil, "", "")
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	if err := event.SetID(0); err == nil {
		t.Error("SetID(0) should fail")
	}
	if err := event.SetID(42); err != nil {
		t.Errorf("SetID(42) error = %v", err)
	}
	if err := event.SetID(43); err == nil {
		t.Error("SetID() should fail when ID is already set")
	}
	if event.ID() != 42 {
		t.Errorf("ID() = %d, want 42", event.ID())
	}
}
