package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const geminiBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient — основной AI провайдер: Google Gemini generateContent.
// Текст в запрос, текст из ответа; всё остальное (таймаут, повторы при 429,
// переключение на резервную модель) скрыто внутри клиента.
type GeminiClient struct {
	APIKey      string
	Model       string
	ModelBackup string
}

func NewGeminiClient(apiKey, model, modelBackup string) *GeminiClient {
	return &GeminiClient{
		APIKey:      apiKey,
		Model:       model,
		ModelBackup: modelBackup,
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (c *GeminiClient) Analyze(prompt string) (string, error) {
	hasBackup := c.ModelBackup != "" && c.ModelBackup != c.Model

	log.Printf("[GEMINI] 🤖 Основная модель: %s", c.Model)
	response, err := c.generateWithModel(prompt, c.Model)
	if err == nil {
		log.Printf("[GEMINI] ✅ Основная модель ответила успешно")
		return response, nil
	}

	log.Printf("[GEMINI] ⚠ Основная модель недоступна: %v", err)

	if hasBackup {
		log.Printf("[GEMINI] 🔄 Переключаюсь на резервную модель: %s", c.ModelBackup)
		response, err = c.generateWithModel(prompt, c.ModelBackup)
		if err == nil {
			log.Printf("[GEMINI] ✅ Резервная модель ответила успешно")
			return response, nil
		}
		log.Printf("[GEMINI] ❌ Резервная модель тоже недоступна: %v", err)
	}

	return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}

func (c *GeminiClient) generateWithModel(prompt, model string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.1,
			MaxOutputTokens: 4000,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка маршалинга: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBase, model, c.APIKey)
	httpClient := &http.Client{Timeout: 90 * time.Second}

	// Retry-цикл: 3 попытки с паузой при 429 и сетевых сбоях
	const maxRetries = 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			log.Printf("[GEMINI] ⏳ Попытка %d/%d, жду 10 секунд...", attempt, maxRetries)
			time.Sleep(10 * time.Second)
		}

		req, err := http.NewRequest("POST", url, bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("ошибка создания запроса: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		log.Printf("[GEMINI] 📤 Запрос к %s (попытка %d)...", model, attempt)
		start := time.Now()

		resp, err := httpClient.Do(req)
		if err != nil {
			log.Printf("[GEMINI] ❌ Ошибка запроса: %v", err)
			lastErr = fmt.Errorf("ошибка выполнения запроса: %w", err)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		elapsed := time.Since(start)
		log.Printf("[GEMINI] ✓ Статус %d (%.2f сек), размер %d байт", resp.StatusCode, elapsed.Seconds(), len(body))

		UpdateRateLimit(ProviderGemini, resp, resp.StatusCode)

		if resp.StatusCode == http.StatusTooManyRequests {
			log.Printf("[GEMINI] ⚠ Rate limit, повторяю...")
			lastErr = fmt.Errorf("rate limit 429")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Printf("[GEMINI] ❌ Ошибка %d: %s", resp.StatusCode, string(body))
			lastErr = fmt.Errorf("API вернул ошибку %d: %s", resp.StatusCode, string(body))
			continue
		}

		var geminiResp geminiResponse
		if err := json.Unmarshal(body, &geminiResp); err != nil {
			log.Printf("[GEMINI] ❌ Ошибка парсинга: %v", err)
			lastErr = fmt.Errorf("ошибка парсинга ответа: %w", err)
			continue
		}

		if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
			log.Printf("[GEMINI] ❌ Пустой ответ. Тело: %s", string(body))
			lastErr = fmt.Errorf("пустой ответ от API")
			continue
		}

		responseText := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)

		usage := geminiResp.UsageMetadata
		log.Printf("[GEMINI] ✅ Успешно! Длина ответа: %d символов", len(responseText))
		log.Printf("[GEMINI] 📊 Токены: %d всего (запрос: %d, ответ: %d)",
			usage.TotalTokenCount, usage.PromptTokenCount, usage.CandidatesTokenCount)

		return responseText, nil
	}

	return "", fmt.Errorf("все %d попытки неудачны: %w", maxRetries, lastErr)
}
