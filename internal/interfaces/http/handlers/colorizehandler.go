package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	restorationUsecases "chroma/internal/application/restoration/usecases"
	"chroma/internal/domain/quota"
	"chroma/internal/shared/constants"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// multipartOverhead is headroom on top of the image cap for multipart
// framing, so the body limit never rejects an image the usecase would accept.
const multipartOverhead = 1 << 20

type ColorizeResponse struct {
	RequestID        string    `json:"request_id" example:"req_4yz1KcpRVq2Nb8w"`
	ResultURL        string    `json:"result_url"`
	ModelUsed        string    `json:"model_used" example:"deoldify-v2"`
	ProcessingTimeMs uint64    `json:"processing_time_ms" example:"1500"`
	Limits           LimitsDTO `json:"limits"`
}

type ColorizeHandler struct {
	colorizeUC     colorizeUseCase
	maxUploadBytes int64
	logger         logger.Interface
}

func NewColorizeHandler(colorizeUC colorizeUseCase, maxUploadBytes int64, logger logger.Interface) *ColorizeHandler {
	return &ColorizeHandler{
		colorizeUC:     colorizeUC,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Colorize godoc
// @Summary Colorize a photo
// @Description Submit a black-and-white photo for colorization. Consumes one request from the identity's quota on success.
// @Security Bearer
// @Tags colorize
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo to colorize (jpeg, png, or webp)"
// @Success 200 {object} utils.APIResponse{data=ColorizeResponse} "Colorized"
// @Failure 400 {object} utils.APIResponse "Missing, oversized, or unsupported image"
// @Failure 401 {object} utils.APIResponse "Invalid or expired credential"
// @Failure 408 {object} utils.APIResponse "Colorization timed out"
// @Failure 429 {object} utils.APIResponse "Quota exhausted (see limits payload and Retry-After)"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /colorize [post]
func (h *ColorizeHandler) Colorize(c *gin.Context) {
	identityID := c.GetString(constants.ContextKeyIdentityID)
	if identityID == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("identity not authenticated"))
		return
	}
	sessionID := c.GetString(constants.ContextKeySessionID)

	// Cap the request body before gin parses the multipart form, so an
	// oversized upload is cut off during the read, not after buffering.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			utils.ErrorResponseWithError(c, errors.NewValidationError("image exceeds the size limit"))
			return
		}
		utils.ErrorResponseWithError(c, errors.NewValidationError("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded image", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read uploaded image"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("failed to read uploaded image", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read uploaded image"))
		return
	}

	cmd := restorationUsecases.ColorizeCommand{
		UserID:    identityID,
		SessionID: sessionID,
		IPAddress: c.ClientIP(),
		Image:     image,
	}

	result, err := h.colorizeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if limitErr, ok := quota.AsLimitExceeded(err); ok {
			respondLimitExceeded(c, limitErr)
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "colorized", ColorizeResponse{
		RequestID:        result.RequestID,
		ResultURL:        result.ResultURL,
		ModelUsed:        result.ModelUsed,
		ProcessingTimeMs: result.ProcessingMs,
		Limits:           newLimitsDTO(result.Limits),
	})
}
