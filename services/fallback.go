package services

import (
	"time"

	"truth-analyzer/models"
)

// Канонические деградированные результаты. Оба детерминированы и без
// побочных эффектов, меняется только таймстамп.

func fallbackResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		ConfidenceScore:       50,
		RiskLevel:             models.RiskMedium,
		Prediction:            models.PredictionUncertain,
		RedFlags:              []models.RedFlag{},
		CredibilityIndicators: []models.CredibilityIndicator{},
		EducationalInsights: []string{
			"Always verify information from multiple sources",
			"Look for official confirmations and press releases",
			"Be cautious of emotionally charged language",
		},
		VerificationSuggestions: []string{
			"Check the original source of the information",
			"Look for corroboration from reliable news outlets",
			"Verify any claims with official authorities",
		},
		VerificationLinks: []models.VerificationLink{},
		VerificationNotes: defaultVerificationNotes,
		Summary:           "AI analysis temporarily unavailable. Please verify manually.",
		AnalysisTimestamp: time.Now().Unix(),
		IsFallback:        true,
	}
}

// UnavailableResult — сервис не ответил (сеть, ключ, таймаут, пустой ответ).
func UnavailableResult() *models.AnalysisResult {
	return fallbackResult()
}

// HeuristicFailureResult — ответ был, но ни JSON, ни эвристика не отработали.
// Форма идентична UnavailableResult.
func HeuristicFailureResult() *models.AnalysisResult {
	return fallbackResult()
}
