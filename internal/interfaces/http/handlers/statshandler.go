package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	statsUsecases "chroma/internal/application/stats/usecases"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

type DailyBucketDTO struct {
	Date  string `json:"date" example:"2025-03-14"`
	Count int64  `json:"count" example:"42"`
}

type SummaryResponse struct {
	WindowDays             int              `json:"window_days" example:"7"`
	TotalIdentities        int64            `json:"total_identities" example:"1204"`
	TotalEvents            int64            `json:"total_events" example:"8731"`
	SuccessfulEvents       int64            `json:"successful_events" example:"8514"`
	DistinctUsers          int64            `json:"distinct_users" example:"310"`
	AvgProcessingMs        float64          `json:"avg_processing_ms" example:"1421.5"`
	NewIdentities24h       int64            `json:"new_identities_24h" example:"12"`
	ReturningIdentities24h int64            `json:"returning_identities_24h" example:"48"`
	Daily                  []DailyBucketDTO `json:"daily"`
	GeneratedAt            time.Time        `json:"generated_at"`
}

type StatsHandler struct {
	summaryUC summaryUseCase
	logger    logger.Interface
}

func NewStatsHandler(summaryUC summaryUseCase, logger logger.Interface) *StatsHandler {
	return &StatsHandler{
		summaryUC: summaryUC,
		logger:    logger,
	}
}

// GetSummary godoc
// @Summary Get service statistics
// @Description Anonymous whole-service aggregates over a trailing window: volumes, success counts, and a per-day histogram. No per-identity detail.
// @Tags stats
// @Produce json
// @Param days query int false "Histogram window in days (default 7, max 90)"
// @Success 200 {object} utils.APIResponse{data=SummaryResponse} "Service statistics"
// @Failure 400 {object} utils.APIResponse "Malformed days parameter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /stats/summary [get]
func (h *StatsHandler) GetSummary(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("days must be an integer"))
			return
		}
		days = parsed
	}

	cmd := statsUsecases.GetSummaryCommand{Days: days}

	result, err := h.summaryUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	daily := make([]DailyBucketDTO, 0, len(result.Daily))
	for _, bucket := range result.Daily {
		daily = append(daily, DailyBucketDTO{Date: bucket.Date, Count: bucket.Count})
	}

	utils.SuccessResponse(c, http.StatusOK, "statistics retrieved", SummaryResponse{
		WindowDays:             result.WindowDays,
		TotalIdentities:        result.TotalIdentities,
		TotalEvents:            result.TotalEvents,
		SuccessfulEvents:       result.SuccessfulEvents,
		DistinctUsers:          result.DistinctUsers,
		AvgProcessingMs:        result.AvgProcessingMs,
		NewIdentities24h:       result.NewIdentities24h,
		ReturningIdentities24h: result.ReturningIdentities24h,
		Daily:                  daily,
		GeneratedAt:            result.GeneratedAt,
	})
}
