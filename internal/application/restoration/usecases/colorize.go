package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"chroma/internal/domain/identity"
	"chroma/internal/domain/quota"
	"chroma/internal/domain/usage"
	"chroma/internal/infrastructure/restoration"
	"chroma/internal/shared/biztime"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/id"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

const (
	defaultMaxImageBytes = 10 << 20
	defaultCallTimeout   = 60 * time.Second
)

// allowedImageTypes lists the formats the models accept. The type is sniffed
// from the bytes; whatever the client declared in the upload is ignored.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Restorer runs the ordered provider fallback for one image.
// *restoration.Chain satisfies it.
type Restorer interface {
	RestoreWithAttempts(ctx context.Context, image []byte, contentType string) (*restoration.Result, []restoration.Attempt, error)
}

type ColorizeCommand struct {
	UserID    string
	SessionID string
	IPAddress string
	Image     []byte
}

type ColorizeResult struct {
	RequestID    string
	ResultURL    string
	ModelUsed    string
	ProcessingMs uint64
	Limits       quota.Snapshot
}

// ColorizeUseCase authorizes and runs one colorization. A quota unit is
// reserved before the provider call and handed back if the call fails, so a
// failed attempt never costs budget. No lock is held while a provider runs.
type ColorizeUseCase struct {
	identityRepo  identity.IdentityRepository
	eventRepo     usage.EventRepository
	tracker       *quota.Tracker
	restorer      Restorer
	maxImageBytes int64
	callTimeout   time.Duration
	logger        logger.Interface
}

func NewColorizeUseCase(
	identityRepo identity.IdentityRepository,
	eventRepo usage.EventRepository,
	tracker *quota.Tracker,
	restorer Restorer,
	maxImageBytes int64,
	callTimeout time.Duration,
	logger logger.Interface,
) *ColorizeUseCase {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &ColorizeUseCase{
		identityRepo:  identityRepo,
		eventRepo:     eventRepo,
		tracker:       tracker,
		restorer:      restorer,
		maxImageBytes: maxImageBytes,
		callTimeout:   callTimeout,
		logger:        logger,
	}
}

func (uc *ColorizeUseCase) Execute(ctx context.Context, cmd ColorizeCommand) (*ColorizeResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user ID is required")
	}

	contentType, err := uc.validateImage(cmd.Image)
	if err != nil {
		return nil, err
	}

	requestID, err := id.NewRestorationID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request ID: %w", err)
	}

	// Reserve before the slow call. A full window rejects here, before any
	// provider sees the image.
	reservation, err := uc.tracker.Reserve(ctx, cmd.UserID, biztime.NowUTC())
	if err != nil {
		if quota.IsLimitExceeded(err) {
			return nil, err
		}
		uc.logger.Errorw("quota reservation failed", "user_id", utils.MaskFingerprint(cmd.UserID), "error", err)
		return nil, fmt.Errorf("failed to reserve quota: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	defer cancel()

	result, attempts, err := uc.restorer.RestoreWithAttempts(callCtx, cmd.Image, contentType)

	// Every failed provider attempt leaves an event, whether or not a later
	// provider rescued the request.
	for _, attempt := range attempts {
		uc.recordEvent(ctx, cmd.UserID, false, nil, attempt.Provider, cmd.IPAddress)
	}

	if err != nil {
		if relErr := uc.tracker.Release(ctx, reservation, biztime.NowUTC()); relErr != nil {
			uc.logger.Errorw("failed to release reservation",
				"user_id", utils.MaskFingerprint(cmd.UserID),
				"request_id", requestID,
				"error", relErr,
			)
		}
		uc.logger.Warnw("colorization failed",
			"user_id", utils.MaskFingerprint(cmd.UserID),
			"request_id", requestID,
			"attempts", len(attempts),
			"error", err,
		)
		return nil, uc.classifyFailure(err)
	}

	// The reservation sticks on success; lifetime counters fold in the
	// processing time atomically.
	if err := uc.identityRepo.IncrementUsage(ctx, cmd.UserID, result.ElapsedMs); err != nil {
		uc.logger.Errorw("failed to update identity counters",
			"user_id", utils.MaskFingerprint(cmd.UserID),
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to update identity counters: %w", err)
	}

	elapsed := result.ElapsedMs
	uc.recordEvent(ctx, cmd.UserID, true, &elapsed, result.ModelID, cmd.IPAddress)

	uc.logger.Infow("colorization completed",
		"user_id", utils.MaskFingerprint(cmd.UserID),
		"request_id", requestID,
		"model", result.ModelID,
		"processing_ms", result.ElapsedMs,
		"failed_attempts", len(attempts),
	)

	return &ColorizeResult{
		RequestID:    requestID,
		ResultURL:    result.ResultURL,
		ModelUsed:    result.ModelID,
		ProcessingMs: result.ElapsedMs,
		Limits:       reservation.Snapshot,
	}, nil
}

// validateImage sniffs the upload and enforces the size cap.
func (uc *ColorizeUseCase) validateImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.NewValidationError("image is required")
	}
	if int64(len(image)) > uc.maxImageBytes {
		return "", errors.NewValidationError(
			"image is too large",
			fmt.Sprintf("maximum size is %d bytes", uc.maxImageBytes),
		)
	}
	contentType := http.DetectContentType(image)
	if !allowedImageTypes[contentType] {
		return "", errors.NewValidationError(
			"unsupported image format",
			"only jpeg, png and webp images are accepted",
		)
	}
	return contentType, nil
}

// classifyFailure maps a provider-chain error onto the client-facing
// taxonomy. Timeouts get their own status so clients know the quota unit
// came back.
func (uc *ColorizeUseCase) classifyFailure(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError("colorization timed out", "no quota was consumed")
	}
	if provErr, ok := restoration.AsProviderError(err); ok {
		switch provErr.Category {
		case restoration.FailureRateLimited:
			return errors.NewRateLimitedError("colorization service is busy", "try again shortly")
		case restoration.FailureInvalidInput:
			return errors.NewValidationError("image was rejected", "the model could not process this image")
		}
	}
	return fmt.Errorf("colorization failed: %w", err)
}

// recordEvent appends a usage event. Event writes are observational, so a
// failure here is logged and swallowed rather than failing the request.
func (uc *ColorizeUseCase) recordEvent(ctx context.Context, userID string, success bool, processingMs *uint64, modelUsed, ipAddress string) {
	event, err := usage.NewEvent(userID, usage.EventTypeColorise, success, processingMs, modelUsed, ipAddress)
	if err != nil {
		uc.logger.Errorw("failed to build usage event", "error", err)
		return
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Errorw("failed to record usage event", "success", success, "error", err)
	}
}
