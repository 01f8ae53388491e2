package services

import (
	"errors"
	"sync"
	"testing"

	"truth-analyzer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient — подставной AI провайдер для тестов пайплайна.
type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Analyze(prompt string) (string, error) {
	return f.reply, f.err
}

func newTestAnalyzer(client AIClient) *AnalyzerService {
	return NewAnalyzerService(client, nil, nil, nil, DefaultPromptConfig(), DefaultHeuristicConfig())
}

func TestAnalyzeTextStructuredReply(t *testing.T) {
	client := &fakeClient{reply: `{
		"confidence_score": 92,
		"risk_level": "HIGH",
		"prediction": "FAKE",
		"red_flags": [{"flag": "fabricated quote", "explanation": "no record exists", "severity": "HIGH"}],
		"summary": "The claim contradicts official records."
	}`}

	result := newTestAnalyzer(client).AnalyzeText("some claim", "")

	require.NotNil(t, result)
	assert.Equal(t, 92, result.ConfidenceScore)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, models.PredictionFake, result.Prediction)
	assert.False(t, result.IsFallback)
	require.Len(t, result.RedFlags, 1)
	assert.NotZero(t, result.AnalysisTimestamp)
}

func TestAnalyzeTextOutOfRangeValuesNormalized(t *testing.T) {
	client := &fakeClient{reply: `Sure! {"confidence_score": 999, "risk_level": "extreme"} thanks`}

	result := newTestAnalyzer(client).AnalyzeText("text", "")

	assert.Equal(t, 100, result.ConfidenceScore)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
	assert.False(t, result.IsFallback)
}

func TestAnalyzeTextClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}

	result := newTestAnalyzer(client).AnalyzeText("text", "")
	expected := UnavailableResult()

	expected.AnalysisTimestamp = result.AnalysisTimestamp
	assert.Equal(t, expected, result)
	assert.True(t, result.IsFallback)
}

func TestAnalyzeTextNilClient(t *testing.T) {
	result := newTestAnalyzer(nil).AnalyzeText("text", "")

	assert.True(t, result.IsFallback)
	assert.Equal(t, 50, result.ConfidenceScore)
}

func TestAnalyzeTextHeuristicPath(t *testing.T) {
	// Модель ответила прозой без JSON — результат строится сканом фраз
	client := &fakeClient{reply: "I cannot format this, but officials refuse to comment on the matter."}

	result := newTestAnalyzer(client).AnalyzeText("text", "")

	assert.False(t, result.IsFallback)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, models.PredictionLikelyFake, result.Prediction)
	assert.Equal(t, 80, result.ConfidenceScore)
	require.Len(t, result.RedFlags, 1)
}

func TestAnalyzeTextHeuristicUnavailable(t *testing.T) {
	client := &fakeClient{reply: "prose without structure"}
	s := NewAnalyzerService(client, nil, nil, nil, DefaultPromptConfig(), &HeuristicConfig{})

	result := s.AnalyzeText("text", "")

	assert.True(t, result.IsFallback)
	assert.Equal(t, 50, result.ConfidenceScore)
}

func TestAnalyzeTextProgressCallback(t *testing.T) {
	client := &fakeClient{reply: `{"confidence_score": 80}`}

	var mu sync.Mutex
	var messages []string
	newTestAnalyzer(client).AnalyzeText("text", "", func(msg string) {
		mu.Lock()
		messages = append(messages, msg)
		mu.Unlock()
	})

	assert.NotEmpty(t, messages)
}

func TestAnalyzeTextConcurrent(t *testing.T) {
	client := &fakeClient{reply: `{"confidence_score": 66, "prediction": "LIKELY_REAL"}`}
	s := newTestAnalyzer(client)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := s.AnalyzeText("text", "")
			assert.Equal(t, 66, result.ConfidenceScore)
			assert.Equal(t, models.PredictionLikelyReal, result.Prediction)
		}()
	}
	wg.Wait()
}
