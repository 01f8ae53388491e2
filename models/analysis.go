package models

// Уровни риска
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Вердикты модели
const (
	PredictionReal       = "REAL"
	PredictionLikelyReal = "LIKELY_REAL"
	PredictionUncertain  = "UNCERTAIN"
	PredictionLikelyFake = "LIKELY_FAKE"
	PredictionFake       = "FAKE"
)

// Типы индикаторов достоверности
const (
	IndicatorPositive = "POSITIVE"
	IndicatorNegative = "NEGATIVE"
)

// Классы источников для ссылок проверки
const (
	LinkOfficialSite = "OFFICIAL_SITE"
	LinkNews         = "NEWS"
	LinkResearch     = "RESEARCH"
	LinkFactCheck    = "FACTCHECK"
)

type AnalysisRequest struct {
	Text           string `json:"text,omitempty"`
	URL            string `json:"url,omitempty"`
	ClassifierHint string `json:"classifier_hint,omitempty"` // метка ML-классификатора, только как контекст
}

// ParsedCandidate — сырые данные, извлечённые из ответа AI до валидации.
// Поля могут отсутствовать, иметь не те типы или быть лишними —
// никаких инвариантов здесь нет, всё проверяется в валидаторе.
type ParsedCandidate map[string]interface{}

type RedFlag struct {
	Flag        string `json:"flag"`
	Explanation string `json:"explanation"`
	Severity    string `json:"severity"`
}

type CredibilityIndicator struct {
	Indicator   string `json:"indicator"`
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
}

type VerificationLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
	Note  string `json:"note"`
}

// AnalysisResult — канонический результат анализа. Единственный тип,
// который видят внешние потребители: все поля всегда заполнены,
// confidence_score в [0,100], enum-поля только из допустимых значений,
// списки никогда не nil, ссылок не больше 5.
type AnalysisResult struct {
	ConfidenceScore         int                    `json:"confidence_score"`
	RiskLevel               string                 `json:"risk_level"`
	Prediction              string                 `json:"prediction"`
	RedFlags                []RedFlag              `json:"red_flags"`
	CredibilityIndicators   []CredibilityIndicator `json:"credibility_indicators"`
	EducationalInsights     []string               `json:"educational_insights"`
	VerificationSuggestions []string               `json:"verification_suggestions"`
	VerificationLinks       []VerificationLink     `json:"verification_links"`
	VerificationNotes       string                 `json:"verification_notes"`
	Summary                 string                 `json:"summary"`
	SourceURL               string                 `json:"source_url,omitempty"`
	AnalysisTimestamp       int64                  `json:"analysis_timestamp"`
	IsFallback              bool                   `json:"is_fallback"`
}
