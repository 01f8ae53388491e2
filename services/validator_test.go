package services

import (
	"testing"

	"truth-analyzer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidateConfidenceClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected int
	}{
		{"above range clamps to 100", float64(999), 100},
		{"below range clamps to 0", float64(-5), 0},
		{"numeric string is accepted", "85", 85},
		{"in-range value passes through", float64(42), 42},
		{"boundary 0", float64(0), 0},
		{"boundary 100", float64(100), 100},
		{"non-numeric string falls back to default", "high", defaultConfidence},
		{"absent field falls back to default", nil, defaultConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := models.ParsedCandidate{}
			if tt.value != nil {
				candidate["confidence_score"] = tt.value
			}
			result := ValidateCandidate(candidate)
			assert.Equal(t, tt.expected, result.ConfidenceScore)
		})
	}
}

func TestValidateCandidateEnumNormalization(t *testing.T) {
	tests := []struct {
		name               string
		riskLevel          interface{}
		prediction         interface{}
		expectedRisk       string
		expectedPrediction string
	}{
		{"valid uppercase passes", "HIGH", "FAKE", models.RiskHigh, models.PredictionFake},
		{"lowercase is normalized", "low", "likely_real", models.RiskLow, models.PredictionLikelyReal},
		{"garbage falls back to defaults", "extreme", "banana", models.RiskMedium, models.PredictionUncertain},
		{"wrong type falls back to defaults", float64(3), true, models.RiskMedium, models.PredictionUncertain},
		{"whitespace is trimmed", "  MEDIUM  ", " UNCERTAIN ", models.RiskMedium, models.PredictionUncertain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCandidate(models.ParsedCandidate{
				"risk_level": tt.riskLevel,
				"prediction": tt.prediction,
			})
			assert.Equal(t, tt.expectedRisk, result.RiskLevel)
			assert.Equal(t, tt.expectedPrediction, result.Prediction)
		})
	}
}

func TestValidateCandidateEmptyInput(t *testing.T) {
	for _, candidate := range []models.ParsedCandidate{nil, {}} {
		result := ValidateCandidate(candidate)

		assert.Equal(t, defaultConfidence, result.ConfidenceScore)
		assert.Equal(t, models.RiskMedium, result.RiskLevel)
		assert.Equal(t, models.PredictionUncertain, result.Prediction)
		assert.Equal(t, defaultSummary, result.Summary)
		assert.Equal(t, defaultVerificationNotes, result.VerificationNotes)
		assert.False(t, result.IsFallback)
		assert.NotZero(t, result.AnalysisTimestamp)

		// Списки всегда не nil, даже из пустого кандидата
		assert.NotNil(t, result.RedFlags)
		assert.NotNil(t, result.CredibilityIndicators)
		assert.NotNil(t, result.EducationalInsights)
		assert.NotNil(t, result.VerificationSuggestions)
		assert.NotNil(t, result.VerificationLinks)
	}
}

func TestValidateCandidateRedFlags(t *testing.T) {
	result := ValidateCandidate(models.ParsedCandidate{
		"red_flags": []interface{}{
			map[string]interface{}{"flag": "vague sourcing", "explanation": "no names given", "severity": "high"},
			map[string]interface{}{"flag": "clickbait", "severity": "catastrophic"},
			"not a map",
		},
	})

	require.Len(t, result.RedFlags, 2)
	assert.Equal(t, "vague sourcing", result.RedFlags[0].Flag)
	assert.Equal(t, models.RiskHigh, result.RedFlags[0].Severity)
	// Неизвестная severity заменяется на MEDIUM
	assert.Equal(t, models.RiskMedium, result.RedFlags[1].Severity)
	assert.Equal(t, "", result.RedFlags[1].Explanation)
}

func TestValidateCandidateIndicatorTypeDefault(t *testing.T) {
	result := ValidateCandidate(models.ParsedCandidate{
		"credibility_indicators": []interface{}{
			map[string]interface{}{"indicator": "named expert quoted", "type": "positive"},
			map[string]interface{}{"indicator": "odd framing", "type": "weird"},
		},
	})

	require.Len(t, result.CredibilityIndicators, 2)
	assert.Equal(t, models.IndicatorPositive, result.CredibilityIndicators[0].Type)
	assert.Equal(t, models.IndicatorNegative, result.CredibilityIndicators[1].Type)
}

func TestValidateCandidateStringSlices(t *testing.T) {
	result := ValidateCandidate(models.ParsedCandidate{
		"educational_insights":     []interface{}{"check the source", float64(42), "compare outlets"},
		"verification_suggestions": "not a list",
	})

	assert.Equal(t, []string{"check the source", "compare outlets"}, result.EducationalInsights)
	assert.Equal(t, []string{}, result.VerificationSuggestions)
}

func TestSanitizeLinks(t *testing.T) {
	t.Run("non-list input yields empty slice", func(t *testing.T) {
		assert.Equal(t, []models.VerificationLink{}, SanitizeLinks("nope"))
		assert.Equal(t, []models.VerificationLink{}, SanitizeLinks(nil))
		assert.Equal(t, []models.VerificationLink{}, SanitizeLinks(map[string]interface{}{"url": "https://a"}))
	})

	t.Run("entries without url are dropped, order preserved", func(t *testing.T) {
		raw := []interface{}{
			map[string]interface{}{"title": "A", "url": "https://a.example"},
			map[string]interface{}{"title": "no url"},
			map[string]interface{}{"title": "B", "url": "   "},
			map[string]interface{}{"title": "C", "url": "https://c.example"},
			"garbage entry",
			map[string]interface{}{"url": "https://d.example"},
			map[string]interface{}{"title": "E", "url": "https://e.example"},
			map[string]interface{}{"title": "F", "url": "https://f.example"},
		}
		links := SanitizeLinks(raw)

		require.Len(t, links, 5)
		assert.Equal(t, "https://a.example", links[0].URL)
		assert.Equal(t, "https://c.example", links[1].URL)
		assert.Equal(t, "https://d.example", links[2].URL)
		assert.Equal(t, "https://e.example", links[3].URL)
		assert.Equal(t, "https://f.example", links[4].URL)
	})

	t.Run("three of eight entries carry url", func(t *testing.T) {
		raw := []interface{}{
			map[string]interface{}{"title": "1", "url": "https://one.example"},
			map[string]interface{}{"title": "2"},
			map[string]interface{}{"title": "3"},
			map[string]interface{}{"title": "4", "url": "https://four.example"},
			map[string]interface{}{"title": "5"},
			map[string]interface{}{"title": "6"},
			map[string]interface{}{"title": "7", "url": "https://seven.example"},
			map[string]interface{}{"title": "8"},
		}
		links := SanitizeLinks(raw)

		require.Len(t, links, 3)
		assert.Equal(t, "https://one.example", links[0].URL)
		assert.Equal(t, "https://four.example", links[1].URL)
		assert.Equal(t, "https://seven.example", links[2].URL)
	})

	t.Run("cap at five survivors", func(t *testing.T) {
		raw := make([]interface{}, 0, 9)
		for i := 0; i < 9; i++ {
			raw = append(raw, map[string]interface{}{"url": "https://example.com/" + string(rune('a'+i))})
		}
		assert.Len(t, SanitizeLinks(raw), 5)
	})

	t.Run("defaults for survivors", func(t *testing.T) {
		links := SanitizeLinks([]interface{}{
			map[string]interface{}{"url": "https://only-url.example", "type": "FANZINE"},
		})
		require.Len(t, links, 1)
		assert.Equal(t, "https://only-url.example", links[0].Title) // title := url
		assert.Equal(t, models.LinkNews, links[0].Type)
		assert.Equal(t, "", links[0].Note)
	})

	t.Run("valid type survives case-insensitively", func(t *testing.T) {
		links := SanitizeLinks([]interface{}{
			map[string]interface{}{"url": "https://x.example", "type": "factcheck"},
		})
		require.Len(t, links, 1)
		assert.Equal(t, models.LinkFactCheck, links[0].Type)
	})
}

// Результат валидатора, прогнанный через валидатор повторно, не меняется
// (кроме таймстампа): нормализация идемпотентна.
func TestValidateCandidateIdempotent(t *testing.T) {
	first := ValidateCandidate(models.ParsedCandidate{
		"confidence_score": float64(250),
		"risk_level":       "high",
		"prediction":       "FAKE",
		"red_flags": []interface{}{
			map[string]interface{}{"flag": "x", "explanation": "y", "severity": "LOW"},
		},
		"summary": "Looks fabricated.",
	})

	second := ValidateCandidate(models.ParsedCandidate{
		"confidence_score":       first.ConfidenceScore,
		"risk_level":             first.RiskLevel,
		"prediction":             first.Prediction,
		"red_flags":              []interface{}{map[string]interface{}{"flag": "x", "explanation": "y", "severity": "LOW"}},
		"summary":                first.Summary,
		"verification_notes":     first.VerificationNotes,
	})

	second.AnalysisTimestamp = first.AnalysisTimestamp
	assert.Equal(t, first, second)
}
