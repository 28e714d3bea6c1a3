package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// DebugIdentityResponse exposes the raw identity row, fingerprint included.
// This shape exists for operators only and is never served without the
// admin key.
type DebugIdentityResponse struct {
	ID                  uint      `json:"id"`
	UserID              string    `json:"user_id"`
	Fingerprint         string    `json:"fingerprint"`
	RequestCount        uint64    `json:"request_count"`
	TotalProcessingMs   uint64    `json:"total_processing_ms"`
	AverageProcessingMs uint64    `json:"average_processing_ms"`
	KnownIPs            []string  `json:"known_ips"`
	LastSeenAt          time.Time `json:"last_seen_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DebugQuotaResponse exposes the stored quota row exactly as persisted.
// Counters are raw: a pending window rollover is NOT applied, which is the
// point when diagnosing reset bugs.
type DebugQuotaResponse struct {
	ID             uint      `json:"id"`
	UserID         string    `json:"user_id"`
	DailyRequests  int       `json:"daily_requests"`
	LastResetDate  string    `json:"last_reset_date"`
	HourlyRequests int       `json:"hourly_requests"`
	LastResetHour  int       `json:"last_reset_hour" example:"14"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SweepResponse struct {
	SessionsDeleted int64 `json:"sessions_deleted"`
	EventsDeleted   int64 `json:"events_deleted"`
}

type DebugHandler struct {
	identities identityReader
	quotaState quotaStateReader
	sweepUC    retentionSweepUseCase
	logger     logger.Interface
}

func NewDebugHandler(identities identityReader, quotaState quotaStateReader, sweepUC retentionSweepUseCase, logger logger.Interface) *DebugHandler {
	return &DebugHandler{
		identities: identities,
		quotaState: quotaState,
		sweepUC:    sweepUC,
		logger:     logger,
	}
}

// GetIdentity godoc
// @Summary Inspect an identity (debug)
// @Description Raw identity row for the given user ID, including the device fingerprint. Requires the admin key.
// @Tags debug
// @Produce json
// @Param id path string true "User ID (fingerprint-derived identifier)"
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} utils.APIResponse{data=DebugIdentityResponse} "Identity"
// @Failure 401 {object} utils.APIResponse "Missing or invalid admin key"
// @Failure 404 {object} utils.APIResponse "Identity not found"
// @Router /debug/identities/{id} [get]
func (h *DebugHandler) GetIdentity(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("user id is required"))
		return
	}

	ident, err := h.identities.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "identity retrieved", DebugIdentityResponse{
		ID:                  ident.ID(),
		UserID:              ident.UserID(),
		Fingerprint:         ident.Fingerprint(),
		RequestCount:        ident.RequestCount(),
		TotalProcessingMs:   ident.TotalProcessingMs(),
		AverageProcessingMs: ident.AverageProcessingMs(),
		KnownIPs:            ident.KnownIPs(),
		LastSeenAt:          ident.LastSeenAt(),
		CreatedAt:           ident.CreatedAt(),
		UpdatedAt:           ident.UpdatedAt(),
	})
}

// GetQuotaState godoc
// @Summary Inspect a quota row (debug)
// @Description Stored quota counters for the given user ID, without applying a pending window reset. Requires the admin key.
// @Tags debug
// @Produce json
// @Param id path string true "User ID (fingerprint-derived identifier)"
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} utils.APIResponse{data=DebugQuotaResponse} "Quota state"
// @Failure 401 {object} utils.APIResponse "Missing or invalid admin key"
// @Failure 404 {object} utils.APIResponse "Quota state not found"
// @Router /debug/quota/{id} [get]
func (h *DebugHandler) GetQuotaState(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("user id is required"))
		return
	}

	state, err := h.quotaState.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "quota state retrieved", DebugQuotaResponse{
		ID:             state.ID(),
		UserID:         state.UserID(),
		DailyRequests:  state.DailyRequests(),
		LastResetDate:  state.LastResetDate(),
		HourlyRequests: state.HourlyRequests(),
		LastResetHour:  state.LastResetHour(),
		CreatedAt:      state.CreatedAt(),
		UpdatedAt:      state.UpdatedAt(),
	})
}

// RunSweep godoc
// @Summary Run the retention sweep (debug)
// @Description Immediately prunes sessions and usage events past their retention windows instead of waiting for the scheduled run. Requires the admin key.
// @Tags debug
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} utils.APIResponse{data=SweepResponse} "Rows deleted"
// @Failure 401 {object} utils.APIResponse "Missing or invalid admin key"
// @Failure 500 {object} utils.APIResponse "Sweep failed"
// @Router /debug/retention/sweep [post]
func (h *DebugHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "retention sweep completed", SweepResponse{
		SessionsDeleted: result.SessionsDeleted,
		EventsDeleted:   result.EventsDeleted,
	})
}
