package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityUsecases "chroma/internal/application/identity/usecases"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// AuthenticateRequest carries the client-supplied device fingerprint.
// The fingerprint IS the identity key: no account, no password.
type AuthenticateRequest struct {
	DeviceFingerprint string `json:"device_fingerprint" binding:"required" validate:"required,max=128" example:"c0ffee54-88d1-4f0b"`
	AppVersion        string `json:"app_version" validate:"omitempty,max=64" example:"1.4.2"`
}

type AuthenticateResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	ExpiresIn int64     `json:"expires_in" example:"86400"`
	Limits    LimitsDTO `json:"limits"`
}

type AuthHandler struct {
	authenticateUC authenticateUseCase
	logger         logger.Interface
}

func NewAuthHandler(authenticateUC authenticateUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		authenticateUC: authenticateUC,
		logger:         logger,
	}
}

// Authenticate godoc
// @Summary Authenticate anonymously
// @Description Mint or refresh an anonymous identity from a device fingerprint and issue a 24h bearer credential
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthenticateRequest true "Device fingerprint"
// @Success 200 {object} utils.APIResponse{data=AuthenticateResponse} "Authenticated"
// @Failure 400 {object} utils.APIResponse "Missing device fingerprint"
// @Failure 429 {object} utils.APIResponse "Too many requests from this address"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /auth/anonymous [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "device_fingerprint is required")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := identityUsecases.AuthenticateCommand{
		Fingerprint: req.DeviceFingerprint,
		AppVersion:  req.AppVersion,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}

	result, err := h.authenticateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "authenticated", AuthenticateResponse{
		Token:     result.Token,
		UserID:    result.UserID,
		SessionID: result.SessionID,
		ExpiresIn: result.ExpiresIn,
		Limits:    newLimitsDTO(result.Limits),
	})
}
