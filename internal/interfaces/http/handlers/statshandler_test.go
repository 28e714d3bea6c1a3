package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statsUsecases "chroma/internal/application/stats/usecases"
	"chroma/internal/interfaces/http/handlers/testutil"
	"chroma/internal/shared/errors"
)

// =====================================================================
// Mock use case
// =====================================================================

type mockSummaryUC struct {
	result *statsUsecases.GetSummaryResult
	err    error
	gotCmd statsUsecases.GetSummaryCommand
	called bool
}

func (m *mockSummaryUC) Execute(ctx context.Context, cmd statsUsecases.GetSummaryCommand) (*statsUsecases.GetSummaryResult, error) {
	m.called = true
	m.gotCmd = cmd
	return m.result, m.err
}

// =====================================================================
// TestStatsHandler_GetSummary
// =====================================================================

func TestStatsHandler_GetSummary_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockSummaryUC{result: &statsUsecases.GetSummaryResult{
		WindowDays:             7,
		TotalIdentities:        1204,
		TotalEvents:            8731,
		SuccessfulEvents:       8514,
		DistinctUsers:          310,
		AvgProcessingMs:        1421.5,
		NewIdentities24h:       12,
		ReturningIdentities24h: 48,
		Daily: []statsUsecases.DailyBucket{
			{Date: "2025-03-13", Count: 0},
			{Date: "2025-03-14", Count: 42},
		},
		GeneratedAt: now,
	}}
	handler := NewStatsHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/stats/summary", nil)

	handler.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, mockUC.gotCmd.Days, "no query parameter means the default window")

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var data SummaryResponse
	err = json.Unmarshal(resp.Data, &data)
	require.NoError(t, err)
	assert.Equal(t, 7, data.WindowDays)
	assert.Equal(t, int64(1204), data.TotalIdentities)
	assert.Equal(t, int64(8731), data.TotalEvents)
	assert.Equal(t, int64(8514), data.SuccessfulEvents)
	assert.Equal(t, int64(310), data.DistinctUsers)
	assert.InDelta(t, 1421.5, data.AvgProcessingMs, 0.001)
	assert.Equal(t, int64(12), data.NewIdentities24h)
	assert.Equal(t, int64(48), data.ReturningIdentities24h)
	require.Len(t, data.Daily, 2)
	assert.Equal(t, "2025-03-13", data.Daily[0].Date)
	assert.Equal(t, int64(0), data.Daily[0].Count)
	assert.Equal(t, int64(42), data.Daily[1].Count)
}

func TestStatsHandler_GetSummary_DaysQueryPassedThrough(t *testing.T) {
	mockUC := &mockSummaryUC{result: &statsUsecases.GetSummaryResult{WindowDays: 30}}
	handler := NewStatsHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/stats/summary", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "30"})

	handler.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, mockUC.gotCmd.Days)
}

func TestStatsHandler_GetSummary_OutOfRangeDaysLeftToUseCase(t *testing.T) {
	mockUC := &mockSummaryUC{result: &statsUsecases.GetSummaryResult{WindowDays: 90}}
	handler := NewStatsHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/stats/summary", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "365"})

	handler.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 365, mockUC.gotCmd.Days, "clamping happens in the use case, not the handler")
}

func TestStatsHandler_GetSummary_MalformedDays(t *testing.T) {
	mockUC := &mockSummaryUC{}
	handler := NewStatsHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/stats/summary", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "next-week"})

	handler.GetSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "days")
}

func TestStatsHandler_GetSummary_UseCaseError(t *testing.T) {
	mockUC := &mockSummaryUC{err: errors.NewInternalError("aggregation failed")}
	handler := NewStatsHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/stats/summary", nil)

	handler.GetSummary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
