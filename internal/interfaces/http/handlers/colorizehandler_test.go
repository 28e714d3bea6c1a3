package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restorationUsecases "chroma/internal/application/restoration/usecases"
	"chroma/internal/domain/quota"
	"chroma/internal/interfaces/http/handlers/testutil"
	"chroma/internal/shared/constants"
	"chroma/internal/shared/errors"
)

// =====================================================================
// Mock use case
// =====================================================================

type mockColorizeUC struct {
	result *restorationUsecases.ColorizeResult
	err    error
	gotCmd restorationUsecases.ColorizeCommand
	called bool
}

func (m *mockColorizeUC) Execute(ctx context.Context, cmd restorationUsecases.ColorizeCommand) (*restorationUsecases.ColorizeResult, error) {
	m.called = true
	m.gotCmd = cmd
	return m.result, m.err
}

const testMaxUpload = 10 << 20

func newTestColorizeHandler(uc colorizeUseCase) *ColorizeHandler {
	return NewColorizeHandler(uc, testMaxUpload, testutil.NewMockLogger())
}

// =====================================================================
// TestColorizeHandler_Colorize
// =====================================================================

func TestColorizeHandler_Colorize_Success(t *testing.T) {
	imageBytes := []byte("\xff\xd8\xff\xe0fake-jpeg-body")
	mockUC := &mockColorizeUC{result: &restorationUsecases.ColorizeResult{
		RequestID:    "req_4yz1KcpRVq2Nb8w",
		ResultURL:    "https://cdn.example.com/results/req_4yz1KcpRVq2Nb8w.jpg",
		ModelUsed:    "deoldify-v2",
		ProcessingMs: 1500,
		Limits:       testSnapshot(),
	}}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", imageBytes)
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fp-abc123", mockUC.gotCmd.UserID)
	assert.Equal(t, "test-session-id", mockUC.gotCmd.SessionID)
	assert.Equal(t, imageBytes, mockUC.gotCmd.Image)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var data ColorizeResponse
	err = json.Unmarshal(resp.Data, &data)
	require.NoError(t, err)
	assert.Equal(t, "req_4yz1KcpRVq2Nb8w", data.RequestID)
	assert.Equal(t, "https://cdn.example.com/results/req_4yz1KcpRVq2Nb8w.jpg", data.ResultURL)
	assert.Equal(t, "deoldify-v2", data.ModelUsed)
	assert.Equal(t, uint64(1500), data.ProcessingTimeMs)
	assert.Equal(t, 17, data.Limits.Remaining)
}

func TestColorizeHandler_Colorize_MissingAuthContext(t *testing.T) {
	mockUC := &mockColorizeUC{}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", []byte("data"))

	handler.Colorize(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mockUC.called)
}

func TestColorizeHandler_Colorize_MissingFile(t *testing.T) {
	mockUC := &mockColorizeUC{}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "attachment", "photo.jpg", []byte("data"))
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "image file is required")
}

func TestColorizeHandler_Colorize_QuotaExceeded(t *testing.T) {
	resetAt := time.Now().UTC().Add(6 * time.Hour).Truncate(time.Second)
	mockUC := &mockColorizeUC{err: &quota.LimitExceededError{
		Window:  quota.WindowDaily,
		Limit:   20,
		ResetAt: resetAt,
	}}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", []byte("data"))
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	retryAfter, err := strconv.Atoi(w.Header().Get(constants.HeaderRetryAfter))
	require.NoError(t, err, "Retry-After must be set on 429")
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, int((6 * time.Hour).Seconds()))

	var resp testutil.APIResponse
	err = testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "quota_exceeded", resp.Error.Type)

	var data struct {
		Limits QuotaExceededDTO `json:"limits"`
	}
	err = json.Unmarshal(resp.Data, &data)
	require.NoError(t, err)
	assert.Equal(t, "daily", data.Limits.Window)
	assert.Equal(t, 20, data.Limits.Limit)
	assert.Equal(t, 0, data.Limits.Remaining)
	assert.True(t, data.Limits.ResetAt.Equal(resetAt))
}

func TestColorizeHandler_Colorize_WrappedQuotaError(t *testing.T) {
	limitErr := &quota.LimitExceededError{
		Window:  quota.WindowHourly,
		Limit:   5,
		ResetAt: time.Now().UTC().Add(time.Hour),
	}
	mockUC := &mockColorizeUC{err: fmt.Errorf("reserve quota: %w", limitErr)}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", []byte("data"))
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderRetryAfter))
}

func TestColorizeHandler_Colorize_ProviderTimeout(t *testing.T) {
	mockUC := &mockColorizeUC{err: errors.NewTimeoutError("colorization timed out")}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", []byte("data"))
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
}

func TestColorizeHandler_Colorize_UseCaseError(t *testing.T) {
	mockUC := &mockColorizeUC{err: errors.NewInternalError("all providers failed")}
	handler := newTestColorizeHandler(mockUC)

	c, w := testutil.NewMultipartContext(http.MethodPost, "/colorize", "image", "photo.jpg", []byte("data"))
	testutil.SetAuthContext(c, "fp-abc123")

	handler.Colorize(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}
