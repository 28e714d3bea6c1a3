package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	identityUsecases "chroma/internal/application/identity/usecases"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/constants"
	"chroma/internal/shared/utils"
)

// LimitsDTO is the quota snapshot attached to every budget-relevant response.
// The daily window is the binding budget; the hourly window smooths bursts.
type LimitsDTO struct {
	Daily           int       `json:"daily" example:"20"`
	Remaining       int       `json:"remaining" example:"17"`
	ResetAt         time.Time `json:"reset_at" example:"2026-08-26T00:00:00Z"`
	HourlyLimit     int       `json:"hourly_limit" example:"5"`
	HourlyRemaining int       `json:"hourly_remaining" example:"4"`
	HourlyResetAt   time.Time `json:"hourly_reset_at" example:"2026-08-25T13:04:05Z"`
}

func newLimitsDTO(s quota.Snapshot) LimitsDTO {
	return LimitsDTO{
		Daily:           s.DailyLimit,
		Remaining:       s.DailyRemaining,
		ResetAt:         s.DailyResetAt,
		HourlyLimit:     s.HourlyLimit,
		HourlyRemaining: s.HourlyRemaining,
		HourlyResetAt:   s.HourlyResetAt,
	}
}

// QuotaExceededDTO describes the window that rejected a request. Remaining is
// zero by definition: the window is exhausted until ResetAt.
type QuotaExceededDTO struct {
	Window    string    `json:"window" example:"daily"`
	Limit     int       `json:"limit" example:"20"`
	Remaining int       `json:"remaining" example:"0"`
	ResetAt   time.Time `json:"reset_at" example:"2026-08-26T00:00:00Z"`
}

// respondLimitExceeded renders a quota rejection: 429 with a Retry-After
// header and the exhausted window's limits payload.
func respondLimitExceeded(c *gin.Context, limitErr *quota.LimitExceededError) {
	retryAfter := int(time.Until(limitErr.ResetAt).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))

	c.JSON(http.StatusTooManyRequests, utils.APIResponse{
		Success: false,
		Data: gin.H{
			"limits": QuotaExceededDTO{
				Window:    string(limitErr.Window),
				Limit:     limitErr.Limit,
				Remaining: 0,
				ResetAt:   limitErr.ResetAt,
			},
		},
		Error: &utils.ErrorInfo{
			Type:    "quota_exceeded",
			Message: limitErr.Error(),
		},
	})
}

// SessionDTO is one row of the recent-session view.
type SessionDTO struct {
	SessionID  string    `json:"session_id"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	AppVersion string    `json:"app_version"`
	CreatedAt  time.Time `json:"created_at"`
}

func newSessionDTOs(views []identityUsecases.SessionView) []SessionDTO {
	dtos := make([]SessionDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, SessionDTO{
			SessionID:  v.SessionID,
			IPAddress:  v.IPAddress,
			UserAgent:  v.UserAgent,
			AppVersion: v.AppVersion,
			CreatedAt:  v.CreatedAt,
		})
	}
	return dtos
}
