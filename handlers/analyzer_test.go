package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"truth-analyzer/models"
	"truth-analyzer/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	reply string
}

func (s *stubClient) Analyze(prompt string) (string, error) {
	return s.reply, nil
}

func newTestHandler(reply string) *AnalyzerHandler {
	service := services.NewAnalyzerService(
		&stubClient{reply: reply}, nil, nil, nil,
		services.DefaultPromptConfig(), services.DefaultHeuristicConfig(),
	)
	return NewAnalyzerHandler(service)
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler(`{"confidence_score": 85, "prediction": "LIKELY_FAKE", "risk_level": "HIGH"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"text": "some suspicious claim"}`))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 85, result.ConfidenceScore)
	assert.Equal(t, "LIKELY_FAKE", result.Prediction)
	assert.False(t, result.IsFallback)
	assert.NotNil(t, result.VerificationLinks)
}

func TestAnalyzeEndpointMethodNotAllowed(t *testing.T) {
	h := newTestHandler(`{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeEndpointMissingInput(t *testing.T) {
	h := newTestHandler(`{}`)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointInvalidJSON(t *testing.T) {
	h := newTestHandler(`{}`)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointPaused(t *testing.T) {
	h := newTestHandler(`{}`)
	h.service.IsPaused.Store(true)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"text": "anything"}`))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(`{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestVerdictFromCredibility(t *testing.T) {
	assert.Equal(t, "надёжный", verdictFromCredibility(85))
	assert.Equal(t, "надёжный", verdictFromCredibility(70))
	assert.Equal(t, "сомнительный", verdictFromCredibility(55))
	assert.Equal(t, "сомнительный", verdictFromCredibility(40))
	assert.Equal(t, "ненадёжный", verdictFromCredibility(20))
}
