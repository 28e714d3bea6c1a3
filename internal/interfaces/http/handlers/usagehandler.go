package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identityUsecases "chroma/internal/application/identity/usecases"
	"chroma/internal/shared/constants"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

type UsageResponse struct {
	UserID              string       `json:"user_id"`
	RequestCount        uint64       `json:"request_count" example:"17"`
	TotalProcessingMs   uint64       `json:"total_processing_ms" example:"25500"`
	AverageProcessingMs uint64       `json:"average_processing_ms" example:"1500"`
	KnownIPs            []string     `json:"known_ips"`
	CreatedAt           time.Time    `json:"created_at"`
	LastSeenAt          time.Time    `json:"last_seen_at"`
	Limits              LimitsDTO    `json:"limits"`
	RecentSessions      []SessionDTO `json:"recent_sessions"`
}

type UsageHandler struct {
	usageStatsUC usageStatsUseCase
	logger       logger.Interface
}

func NewUsageHandler(usageStatsUC usageStatsUseCase, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		usageStatsUC: usageStatsUC,
		logger:       logger,
	}
}

// GetUsage godoc
// @Summary Get usage statistics
// @Description Lifetime counters, current quota position, and the five most recent sessions for the authenticated identity.
// @Security Bearer
// @Tags usage
// @Produce json
// @Success 200 {object} utils.APIResponse{data=UsageResponse} "Usage statistics"
// @Failure 401 {object} utils.APIResponse "Invalid or expired credential"
// @Failure 404 {object} utils.APIResponse "Identity not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	identityID := c.GetString(constants.ContextKeyIdentityID)
	if identityID == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("identity not authenticated"))
		return
	}

	cmd := identityUsecases.GetUsageStatsCommand{UserID: identityID}

	result, err := h.usageStatsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "usage statistics retrieved", UsageResponse{
		UserID:              result.UserID,
		RequestCount:        result.RequestCount,
		TotalProcessingMs:   result.TotalProcessingMs,
		AverageProcessingMs: result.AverageProcessingMs,
		KnownIPs:            result.KnownIPs,
		CreatedAt:           result.CreatedAt,
		LastSeenAt:          result.LastSeenAt,
		Limits:              newLimitsDTO(result.Limits),
		RecentSessions:      newSessionDTOs(result.RecentSessions),
	})
}
