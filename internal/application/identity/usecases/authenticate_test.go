package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
)

func newAuthenticateUseCase(
	identityRepo *mockIdentityRepository,
	sessionRepo *mockSessionRepository,
	states quota.StateRepository,
) *AuthenticateUseCase {
	return NewAuthenticateUseCase(
		identityRepo,
		sessionRepo,
		quota.NewTracker(states, quota.NewLimits(20)),
		&mockCredentialIssuer{},
		passThroughTxRunner{},
		logger.NewLogger(),
	)
}

func reconstructTestIdentity(t *testing.T, userID, fingerprint string, requestCount uint64, knownIPs []string) *identity.Identity {
	t.Helper()
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	ident, err := identity.ReconstructIdentity(
		1, userID, fingerprint, requestCount, requestCount*1500, knownIPs,
		created, created, created,
	)
	require.NoError(t, err)
	return ident
}

func TestAuthenticateUseCase_Execute_FirstContact(t *testing.T) {
	var createdIdent *identity.Identity
	identityRepo := &mockIdentityRepository{
		CreateFunc: func(ctx context.Context, ident *identity.Identity) error {
			createdIdent = ident
			return ident.SetID(1)
		},
	}

	var savedSession *identity.Session
	sessionRepo := &mockSessionRepository{
		CreateFunc: func(ctx context.Context, session *identity.Session) error {
			savedSession = session
			return session.SetID(10)
		},
	}

	states := newMemStateRepo()
	uc := newAuthenticateUseCase(identityRepo, sessionRepo, states)

	result, err := uc.Execute(context.Background(), AuthenticateCommand{
		Fingerprint: "fp-device-1",
		AppVersion:  "1.4.2",
		IPAddress:   "203.0.113.9",
		UserAgent:   "chroma-ios/1.4.2",
	})

	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "fp-device-1", result.UserID)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(86400), result.ExpiresIn)

	require.NotNil(t, createdIdent)
	assert.Equal(t, "fp-device-1", createdIdent.Fingerprint())
	assert.Equal(t, []string{"203.0.113.9"}, createdIdent.KnownIPs())
	assert.Zero(t, createdIdent.RequestCount())

	require.NotNil(t, savedSession)
	assert.Equal(t, result.SessionID, savedSession.SessionID())
	assert.Equal(t, "fp-device-1", savedSession.UserID())
	assert.Equal(t, "chroma-ios/1.4.2", savedSession.UserAgent())
	assert.Equal(t, "1.4.2", savedSession.AppVersion())

	// A fresh quota row means a full budget.
	assert.Equal(t, 20, result.Limits.DailyLimit)
	assert.Equal(t, 20, result.Limits.DailyRemaining)
	assert.True(t, result.Limits.DailyResetAt.After(time.Now().UTC()))

	// The quota row landed in storage.
	state, err := states.GetByUserID(context.Background(), "fp-device-1")
	require.NoError(t, err)
	assert.Zero(t, state.DailyRequests())
}

func TestAuthenticateUseCase_Execute_MissingFingerprint(t *testing.T) {
	identityTouched := false
	identityRepo := &mockIdentityRepository{
		CreateFunc: func(ctx context.Context, ident *identity.Identity) error {
			identityTouched = true
			return nil
		},
		GetByUserIDFunc: func(ctx context.Context, userID string) (*identity.Identity, error) {
			identityTouched = true
			return nil, errors.NewNotFoundError("identity not found")
		},
	}
	sessionCreated := false
	sessionRepo := &mockSessionRepository{
		CreateFunc: func(ctx context.Context, session *identity.Session) error {
			sessionCreated = true
			return nil
		},
	}

	uc := newAuthenticateUseCase(identityRepo, sessionRepo, newMemStateRepo())

	result, err := uc.Execute(context.Background(), AuthenticateCommand{Fingerprint: ""})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, identityTouched, "no identity access should happen without a fingerprint")
	assert.False(t, sessionCreated, "no session should be written without a fingerprint")
}

func TestAuthenticateUseCase_Execute_RepeatLoginReusesIdentity(t *testing.T) {
	existing := reconstructTestIdentity(t, "fp-device-1", "fp-device-1", 7, []string{"198.51.100.4"})

	createCalled := false
	var updated *identity.Identity
	identityRepo := &mockIdentityRepository{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*identity.Identity, error) {
			return existing, nil
		},
		CreateFunc: func(ctx context.Context, ident *identity.Identity) error {
			createCalled = true
			return nil
		},
		UpdateFunc: func(ctx context.Context, ident *identity.Identity) error {
			updated = ident
			return nil
		},
	}
	sessionRepo := &mockSessionRepository{}

	uc := newAuthenticateUseCase(identityRepo, sessionRepo, newMemStateRepo())

	result, err := uc.Execute(context.Background(), AuthenticateCommand{
		Fingerprint: "fp-device-1",
		IPAddress:   "203.0.113.9",
	})

	require.NoError(t, err)
	assert.False(t, createCalled, "re-authentication must not create a second identity")

	require.NotNil(t, updated)
	assert.Equal(t, uint64(7), updated.RequestCount(), "lifetime counters survive re-auth")
	assert.ElementsMatch(t, []string{"198.51.100.4", "203.0.113.9"}, updated.KnownIPs())
	assert.Equal(t, "fp-device-1", result.UserID)
}

func TestAuthenticateUseCase_Execute_FingerprintMismatchStillAuthenticates(t *testing.T) {
	// Stored fingerprint drifted from the user ID; login proceeds regardless.
	existing := reconstructTestIdentity(t, "fp-device-1", "fp-old-value", 3, nil)

	identityRepo := &mockIdentityRepository{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*identity.Identity, error) {
			return existing, nil
		},
	}

	uc := newAuthenticateUseCase(identityRepo, &mockSessionRepository{}, newMemStateRepo())

	result, err := uc.Execute(context.Background(), AuthenticateCommand{Fingerprint: "fp-device-1"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "fp-device-1", result.UserID)
	assert.NotEmpty(t, result.SessionID)
}

func TestAuthenticateUseCase_Execute_CreateRaceAdoptsWinner(t *testing.T) {
	winner := reconstructTestIdentity(t, "fp-device-1", "fp-device-1", 0, nil)

	lookups := 0
	identityRepo := &mockIdentityRepository{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*identity.Identity, error) {
			lookups++
			if lookups == 1 {
				return nil, errors.NewNotFoundError("identity not found")
			}
			return winner, nil
		},
		CreateFunc: func(ctx context.Context, ident *identity.Identity) error {
			return errors.NewConflictError("identity already exists")
		},
	}

	uc := newAuthenticateUseCase(identityRepo, &mockSessionRepository{}, newMemStateRepo())

	result, err := uc.Execute(context.Background(), AuthenticateCommand{Fingerprint: "fp-device-1"})

	require.NoError(t, err)
	assert.Equal(t, "fp-device-1", result.UserID)
	assert.Equal(t, 2, lookups, "conflict on insert falls back to the winner's row")
}

func TestAuthenticateUseCase_Execute_SnapshotReflectsSpentBudget(t *testing.T) {
	existing := reconstructTestIdentity(t, "fp-device-1", "fp-device-1", 4, nil)
	identityRepo := &mockIdentityRepository{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*identity.Identity, error) {
			return existing, nil
		},
	}

	states := newMemStateRepo()
	tracker := quota.NewTracker(states, quota.NewLimits(20))
	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		_, err := tracker.Reserve(context.Background(), "fp-device-1", now)
		require.NoError(t, err)
	}

	uc := newAuthenticateUseCase(identityRepo, &mockSessionRepository{}, states)

	result, err := uc.Execute(context.Background(), AuthenticateCommand{Fingerprint: "fp-device-1"})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Limits.DailyUsed)
	assert.Equal(t, 16, result.Limits.DailyRemaining)
}

func TestAuthenticateUseCase_Execute_SessionWriteFailureAborts(t *testing.T) {
	identityRepo := &mockIdentityRepository{
		CreateFunc: func(ctx context.Context, ident *identity.Identity) error {
			return ident.SetID(1)
		},
	}
	sessionRepo := &mockSessionRepository{
		CreateFunc: func(ctx context.Context, session *identity.Session) error {
			return errors.NewInternalError("insert failed")
		},
	}

	uc := newAuthenticateUseCase(identityRepo, sessionRepo, newMemStateRepo())

	result, err := uc.Execute(context.Background(), AuthenticateCommand{Fingerprint: "fp-device-1"})

	require.Error(t, err)
	assert.Nil(t, result)
}
