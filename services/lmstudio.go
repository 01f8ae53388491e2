package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// LMStudioClient — альтернативный AI провайдер: локальная модель за
// OpenAI-совместимым endpoint'ом (LM Studio, ollama и т.п.).
type LMStudioClient struct {
	BaseURL string
	Model   string
}

type lmStudioRequest struct {
	Model       string            `json:"model"`
	Messages    []lmStudioMessage `json:"messages"`
	Temperature float64           `json:"temperature,omitempty"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
}

type lmStudioMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type lmStudioResponse struct {
	Choices []struct {
		Message lmStudioMessage `json:"message"`
	} `json:"choices"`
}

func NewLMStudioClient(baseURL, model string) *LMStudioClient {
	return &LMStudioClient{BaseURL: baseURL, Model: model}
}

func (c *LMStudioClient) Analyze(prompt string) (string, error) {
	log.Printf("[LM STUDIO] 🖥 Локальный анализ с моделью: %s", c.Model)
	log.Printf("[LM STUDIO] 🔗 Подключение к: %s", c.BaseURL)

	reqBody := lmStudioRequest{
		Model: c.Model,
		Messages: []lmStudioMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   4000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка маршалинга: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/v1/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 5 минут: локальные модели отвечают медленно
	httpClient := &http.Client{Timeout: 300 * time.Second}

	log.Printf("[LM STUDIO] ⏳ Ожидаю ответ от локальной модели...")
	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("[LM STUDIO] 💡 Убедитесь, что LM Studio запущен на %s", c.BaseURL)
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	log.Printf("[LM STUDIO] ✓ Статус %d (%.2f сек)", resp.StatusCode, time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	UpdateRateLimit(ProviderLMStudio, resp, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API вернул ошибку %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	var lmResp lmStudioResponse
	if err := json.Unmarshal(body, &lmResp); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if len(lmResp.Choices) == 0 {
		return "", fmt.Errorf("%w: пустой ответ от API", ErrServiceUnavailable)
	}

	responseText := lmResp.Choices[0].Message.Content
	log.Printf("[LM STUDIO] ✅ Успешно! Длина ответа: %d символов", len(responseText))
	return responseText, nil
}
