package usecases

import (
	"context"
	"fmt"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// IssuedCredential carries a signed bearer credential and its lifetime.
type IssuedCredential struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn int64
}

// CredentialIssuer signs anonymous bearer credentials for a user/session pair.
type CredentialIssuer interface {
	Generate(userID string, sessionID string) (*IssuedCredential, error)
}

// TransactionRunner runs a function inside a database transaction.
// *db.TransactionManager satisfies it.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuthenticateCommand struct {
	Fingerprint string
	AppVersion  string
	IPAddress   string
	UserAgent   string
}

type AuthenticateResult struct {
	Token     string
	ExpiresIn int64
	UserID    string
	SessionID string
	Limits    quota.Snapshot
}

// AuthenticateUseCase handles fingerprint login: it upserts the identity,
// records a session, makes sure a quota row exists, and issues a credential.
// There is no password to verify; every fingerprint is accepted.
type AuthenticateUseCase struct {
	identityRepo identity.IdentityRepository
	sessionRepo  identity.SessionRepository
	tracker      *quota.Tracker
	issuer       CredentialIssuer
	txMgr        TransactionRunner
	logger       logger.Interface
}

func NewAuthenticateUseCase(
	identityRepo identity.IdentityRepository,
	sessionRepo identity.SessionRepository,
	tracker *quota.Tracker,
	issuer CredentialIssuer,
	txMgr TransactionRunner,
	logger logger.Interface,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		identityRepo: identityRepo,
		sessionRepo:  sessionRepo,
		tracker:      tracker,
		issuer:       issuer,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	// Rejected before any write happens.
	if cmd.Fingerprint == "" {
		return nil, errors.NewValidationError("device fingerprint is required")
	}

	now := biztime.NowUTC()

	var (
		ident   *identity.Identity
		session *identity.Session
		limits  quota.Snapshot
	)
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		ident, err = uc.upsertIdentity(txCtx, cmd)
		if err != nil {
			return err
		}

		session, err = identity.NewSession(ident.UserID(), cmd.IPAddress, cmd.UserAgent, cmd.AppVersion)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		if err = uc.sessionRepo.Create(txCtx, session); err != nil {
			uc.logger.Errorw("failed to save session", "user_id", utils.MaskFingerprint(ident.UserID()), "error", err)
			return fmt.Errorf("failed to save session: %w", err)
		}

		limits, err = uc.tracker.EnsureExists(txCtx, ident.UserID(), now)
		if err != nil {
			uc.logger.Errorw("failed to ensure quota state", "user_id", utils.MaskFingerprint(ident.UserID()), "error", err)
			return fmt.Errorf("failed to ensure quota state: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	cred, err := uc.issuer.Generate(ident.UserID(), session.SessionID())
	if err != nil {
		uc.logger.Errorw("failed to issue credential", "user_id", utils.MaskFingerprint(ident.UserID()), "error", err)
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}

	uc.logger.Infow("identity authenticated",
		"user_id", utils.MaskFingerprint(ident.UserID()),
		"session_id", session.SessionID(),
		"daily_remaining", limits.DailyRemaining,
	)

	return &AuthenticateResult{
		Token:     cred.Token,
		ExpiresIn: cred.ExpiresIn,
		UserID:    ident.UserID(),
		SessionID: session.SessionID(),
		Limits:    limits,
	}, nil
}

// upsertIdentity loads the identity for the fingerprint, creating it on first
// contact. Re-authentication with a known fingerprint never creates a second
// row; concurrent first logins race on the insert and the loser adopts the
// winner's row.
func (uc *AuthenticateUseCase) upsertIdentity(ctx context.Context, cmd AuthenticateCommand) (*identity.Identity, error) {
	ident, err := uc.identityRepo.GetByUserID(ctx, cmd.Fingerprint)
	if err == nil {
		if !ident.MatchesFingerprint(cmd.Fingerprint) {
			// Fingerprints are client-supplied, so a mismatch is worth a log
			// line but never a rejection.
			uc.logger.Warnw("fingerprint mismatch on login",
				"user_id", utils.MaskFingerprint(ident.UserID()),
				"stored", utils.MaskFingerprint(ident.Fingerprint()),
				"supplied", utils.MaskFingerprint(cmd.Fingerprint),
			)
		}
		ident.RecordLogin(cmd.IPAddress)
		if err := uc.identityRepo.Update(ctx, ident); err != nil {
			uc.logger.Errorw("failed to update identity", "user_id", utils.MaskFingerprint(ident.UserID()), "error", err)
			return nil, fmt.Errorf("failed to update identity: %w", err)
		}
		return ident, nil
	}
	if !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to load identity", "error", err)
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	ident, err = identity.NewIdentity(cmd.Fingerprint, cmd.IPAddress)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.identityRepo.Create(ctx, ident); err != nil {
		if errors.IsConflictError(err) {
			// Another login with the same fingerprint won the insert.
			return uc.identityRepo.GetByUserID(ctx, cmd.Fingerprint)
		}
		uc.logger.Errorw("failed to create identity", "error", err)
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	uc.logger.Infow("new identity created", "user_id", utils.MaskFingerprint(ident.UserID()))
	return ident, nil
}
