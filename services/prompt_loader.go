package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

type PromptConfig struct {
	SystemPrompt SystemPrompt `json:"system_prompt"`
	LinkRules    LinkRules    `json:"link_rules"`
}

type SystemPrompt struct {
	Role       string   `json:"role"`
	Task       string   `json:"task"`
	FocusAreas []string `json:"focus_areas"`
	Tone       string   `json:"tone"`
}

type LinkRules struct {
	MaxLinks       int    `json:"max_links"`
	AllowedSources string `json:"allowed_sources"`
}

// analysisSchema — точная форма JSON, которую мы требуем от модели.
// Имена полей совпадают с models.AnalysisResult один в один.
const analysisSchema = `{
  "confidence_score": <number from 0 to 100>,
  "risk_level": "<LOW|MEDIUM|HIGH>",
  "prediction": "<REAL|LIKELY_REAL|UNCERTAIN|LIKELY_FAKE|FAKE>",
  "red_flags": [
    {"flag": "specific red flag detected", "explanation": "why this is concerning", "severity": "<LOW|MEDIUM|HIGH>"}
  ],
  "credibility_indicators": [
    {"indicator": "positive or negative indicator", "type": "<POSITIVE|NEGATIVE>", "explanation": "what this means"}
  ],
  "educational_insights": ["key learning point"],
  "verification_suggestions": ["how to fact-check this type of content"],
  "verification_links": [
    {"title": "resource name", "url": "https://...", "type": "<OFFICIAL_SITE|NEWS|RESEARCH|FACTCHECK>", "note": "what to check there"}
  ],
  "verification_notes": "general guidance on verifying this content",
  "summary": "brief explanation of why this content is likely real or fake"
}`

func LoadPromptConfig(path string) (*PromptConfig, error) {
	log.Printf("[PROMPT] Загружаю конфигурацию промпта из: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	var config PromptConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON: %w", err)
	}
	if config.LinkRules.MaxLinks <= 0 {
		config.LinkRules.MaxLinks = maxVerificationLinks
	}

	log.Printf("[PROMPT] ✓ Конфигурация загружена успешно")
	log.Printf("[PROMPT]   - Фокус-областей: %d", len(config.SystemPrompt.FocusAreas))

	return &config, nil
}

// DefaultPromptConfig — встроенная конфигурация на случай, когда файл не задан.
func DefaultPromptConfig() *PromptConfig {
	return &PromptConfig{
		SystemPrompt: SystemPrompt{
			Role: "You are an expert misinformation detection analyst.",
			Task: "Analyze the following text for potential misinformation and provide educational insights.",
			FocusAreas: []string{
				"Vague or unnamed sources",
				"Emotional manipulation techniques",
				"Unverifiable claims",
				"Missing attribution or official confirmation",
				"Sensationalist language",
				"Logical inconsistencies",
				"Signs of financial or political manipulation",
			},
			Tone: "Provide specific, actionable educational content that helps users become better at identifying misinformation.",
		},
		LinkRules: LinkRules{
			MaxLinks:       maxVerificationLinks,
			AllowedSources: "official institutional sites, established news organizations, peer-reviewed research and recognized fact-checking organizations",
		},
	}
}

// BuildAnalysisPrompt — собирает единый промпт анализа: роль и задача,
// метка классификатора как контекст, текст пользователя в выделенной цитате,
// описание схемы ответа и директива «только JSON». Чистая функция.
func (pc *PromptConfig) BuildAnalysisPrompt(text, classifierHint, searchContext string) string {
	var b strings.Builder

	b.WriteString(pc.SystemPrompt.Role)
	b.WriteString("\n\n")
	b.WriteString(pc.SystemPrompt.Task)
	b.WriteString("\n\n")

	if classifierHint != "" {
		fmt.Fprintf(&b, "ML Model Prediction: %s\n\n", classifierHint)
	}

	fmt.Fprintf(&b, "Text to analyze:\n\"\"\"\n%s\n\"\"\"\n\n", text)

	if searchContext != "" {
		b.WriteString(searchContext)
		b.WriteString("\n\n")
	}

	if len(pc.SystemPrompt.FocusAreas) > 0 {
		b.WriteString("Focus on identifying:\n")
		for i, area := range pc.SystemPrompt.FocusAreas {
			fmt.Fprintf(&b, "%d. %s\n", i+1, area)
		}
		b.WriteString("\n")
	}

	b.WriteString("Provide your analysis in this exact JSON format:\n")
	b.WriteString(analysisSchema)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Include at most %d verification_links, and only links to %s.\n\n",
		pc.LinkRules.MaxLinks, pc.LinkRules.AllowedSources)

	b.WriteString(pc.SystemPrompt.Tone)
	b.WriteString("\n\n")
	b.WriteString("Respond with JSON only, without markdown and without any text before or after the JSON object.")

	return b.String()
}
