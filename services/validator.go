package services

import (
	"strconv"
	"strings"
	"time"

	"truth-analyzer/models"
)

const (
	defaultConfidence        = 75
	maxVerificationLinks     = 5
	defaultSummary           = "Analysis completed with moderate confidence."
	defaultVerificationNotes = "Verify this content independently before sharing."
)

// Допустимые значения enum-полей. Принимаем без учёта регистра,
// всё остальное жёстко заменяется на default — неизвестная строка
// наружу не проходит никогда.
var (
	validRiskLevels = map[string]bool{
		models.RiskLow: true, models.RiskMedium: true, models.RiskHigh: true,
	}
	validPredictions = map[string]bool{
		models.PredictionReal: true, models.PredictionLikelyReal: true,
		models.PredictionUncertain: true, models.PredictionLikelyFake: true,
		models.PredictionFake: true,
	}
	validIndicatorTypes = map[string]bool{
		models.IndicatorPositive: true, models.IndicatorNegative: true,
	}
	validLinkTypes = map[string]bool{
		models.LinkOfficialSite: true, models.LinkNews: true,
		models.LinkResearch: true, models.LinkFactCheck: true,
	}
)

// ValidateCandidate — единственный владелец канонической формы: каждый
// кандидат, откуда бы он ни пришёл (JSON модели или эвристика), проходит
// через default/clamp/enum-проверку каждого поля. Таймстамп всегда ставится
// здесь, из недоверенного ввода он не берётся.
func ValidateCandidate(candidate models.ParsedCandidate) *models.AnalysisResult {
	if candidate == nil {
		candidate = models.ParsedCandidate{}
	}

	return &models.AnalysisResult{
		ConfidenceScore:         clamp(getInt(candidate, "confidence_score", defaultConfidence), 0, 100),
		RiskLevel:               normalizeEnum(getString(candidate, "risk_level"), validRiskLevels, models.RiskMedium),
		Prediction:              normalizeEnum(getString(candidate, "prediction"), validPredictions, models.PredictionUncertain),
		RedFlags:                sanitizeRedFlags(candidate["red_flags"]),
		CredibilityIndicators:   sanitizeIndicators(candidate["credibility_indicators"]),
		EducationalInsights:     getStringSlice(candidate, "educational_insights"),
		VerificationSuggestions: getStringSlice(candidate, "verification_suggestions"),
		VerificationLinks:       SanitizeLinks(candidate["verification_links"]),
		VerificationNotes:       getStringOrDefault(candidate, "verification_notes", defaultVerificationNotes),
		Summary:                 getStringOrDefault(candidate, "summary", defaultSummary),
		AnalysisTimestamp:       time.Now().Unix(),
		IsFallback:              false,
	}
}

// SanitizeLinks — строгая allow-list санация списка ссылок: не список —
// пустой результат; запись без непустого url выбрасывается (не дополняется);
// выжившие берутся в исходном порядке, не больше пяти. Для выживших:
// title по умолчанию равен url, type по умолчанию NEWS, note — пустая строка.
func SanitizeLinks(raw interface{}) []models.VerificationLink {
	links := []models.VerificationLink{}
	entries, ok := raw.([]interface{})
	if !ok {
		return links
	}

	for _, entry := range entries {
		if len(links) >= maxVerificationLinks {
			break
		}
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		url := strings.TrimSpace(getString(m, "url"))
		if url == "" {
			continue
		}
		link := models.VerificationLink{
			Title: strings.TrimSpace(getString(m, "title")),
			URL:   url,
			Type:  normalizeEnum(getString(m, "type"), validLinkTypes, models.LinkNews),
			Note:  getString(m, "note"),
		}
		if link.Title == "" {
			link.Title = url
		}
		links = append(links, link)
	}
	return links
}

func sanitizeRedFlags(raw interface{}) []models.RedFlag {
	flags := []models.RedFlag{}
	entries, ok := raw.([]interface{})
	if !ok {
		return flags
	}
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		flags = append(flags, models.RedFlag{
			Flag:        getString(m, "flag"),
			Explanation: getString(m, "explanation"),
			Severity:    normalizeEnum(getString(m, "severity"), validRiskLevels, models.RiskMedium),
		})
	}
	return flags
}

func sanitizeIndicators(raw interface{}) []models.CredibilityIndicator {
	indicators := []models.CredibilityIndicator{}
	entries, ok := raw.([]interface{})
	if !ok {
		return indicators
	}
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		indicators = append(indicators, models.CredibilityIndicator{
			Indicator:   getString(m, "indicator"),
			Type:        normalizeEnum(getString(m, "type"), validIndicatorTypes, models.IndicatorNegative),
			Explanation: getString(m, "explanation"),
		})
	}
	return indicators
}

func normalizeEnum(value string, valid map[string]bool, fallback string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if valid[upper] {
		return upper
	}
	return fallback
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func getString(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func getStringOrDefault(data map[string]interface{}, key, fallback string) string {
	if s := strings.TrimSpace(getString(data, key)); s != "" {
		return s
	}
	return fallback
}

// getInt — числовое поле из недоверенного JSON: число, либо число в строке
// (модели любят брать цифры в кавычки), иначе default.
func getInt(data map[string]interface{}, key string, fallback int) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getStringSlice(data map[string]interface{}, key string) []string {
	result := []string{}
	entries, ok := data[key].([]interface{})
	if !ok {
		return result
	}
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
