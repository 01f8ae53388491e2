package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"truth-analyzer/models"
)

// HeuristicConfig — таблица маркерных фраз дезинформации и пороги для
// эвристического пути. Вынесена в конфиг, чтобы не зашивать магические
// константы в код.
type HeuristicConfig struct {
	Phrases             []string `json:"phrases"`
	BaseConfidence      int      `json:"base_confidence"`
	ConfidenceIncrement int      `json:"confidence_increment"`
	ConfidenceCeiling   int      `json:"confidence_ceiling"`
}

func LoadHeuristicConfig(path string) (*HeuristicConfig, error) {
	log.Printf("[HEURISTICS] Загружаю таблицу фраз из: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	var config HeuristicConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON: %w", err)
	}

	log.Printf("[HEURISTICS] ✓ Загружено фраз: %d", len(config.Phrases))
	return &config, nil
}

// DefaultHeuristicConfig — встроенная таблица на случай, когда файл не задан.
func DefaultHeuristicConfig() *HeuristicConfig {
	return &HeuristicConfig{
		Phrases: []string{
			"unnamed sources",
			"officials refuse to comment",
			"shocking discovery",
			"doctors hate this",
			"they don't want you to know",
			"viral post",
			"forward this message",
			"share before it's deleted",
		},
		BaseConfidence:      70,
		ConfidenceIncrement: 10,
		ConfidenceCeiling:   90,
	}
}

// Scan — эвристический анализ по ключевым фразам, когда структурный ответ
// извлечь не удалось. Каждое совпадение добавляет red_flag и поднимает
// счётчик уверенности (с потолком); любое совпадение поднимает риск до HIGH.
// Результат — сырой кандидат, который проходит ту же валидацию, что и JSON.
func (h *HeuristicConfig) Scan(text string) models.ParsedCandidate {
	confidence := h.BaseConfidence
	riskLevel := models.RiskMedium
	lower := strings.ToLower(text)

	redFlags := []interface{}{}
	for _, phrase := range h.Phrases {
		if !strings.Contains(lower, strings.ToLower(phrase)) {
			continue
		}
		redFlags = append(redFlags, map[string]interface{}{
			"flag":        fmt.Sprintf("Contains suspicious phrase: '%s'", phrase),
			"explanation": "This type of language is often used in misinformation",
			"severity":    models.RiskMedium,
		})
		confidence = min(h.ConfidenceCeiling, confidence+h.ConfidenceIncrement)
		riskLevel = models.RiskHigh
	}

	prediction := models.PredictionUncertain
	if riskLevel == models.RiskHigh {
		prediction = models.PredictionLikelyFake
	}

	return models.ParsedCandidate{
		"confidence_score":       confidence,
		"risk_level":             riskLevel,
		"prediction":             prediction,
		"red_flags":              redFlags,
		"credibility_indicators": []interface{}{},
		"educational_insights": []interface{}{
			"Look for specific sources and official confirmation",
			"Be skeptical of sensational claims",
			"Cross-reference with multiple reliable sources",
		},
		"verification_suggestions": []interface{}{
			"Check official websites and press releases",
			"Look for reporting by established news organizations",
			"Verify any statistics or claims with original sources",
		},
		"summary": truncatePreview(text),
	}
}

// truncatePreview — превью сырого текста: больше 200 символов — обрезаем
// и добавляем многоточие.
func truncatePreview(s string) string {
	const maxLen = 200
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
