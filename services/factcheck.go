package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// GoogleFactCheckClient — база проверенных фейков Google Fact Check Tools.
// Найденные вердикты журналистов добавляются в промпт как контекст.
type GoogleFactCheckClient struct {
	APIKey string
}

func NewGoogleFactCheckClient(apiKey string) *GoogleFactCheckClient {
	return &GoogleFactCheckClient{APIKey: apiKey}
}

type googleFactCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			Url           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search — ищет утверждение в базе фактчекеров и форматирует находки
// в текстовый блок для промпта. Пустая строка — ничего не найдено.
func (c *GoogleFactCheckClient) Search(query string) (string, error) {
	if c.APIKey == "" || query == "" {
		return "", nil
	}

	log.Printf("[FACT CHECK] 🔍 Проверяю базу фактчекеров: %s", query)

	apiURL := fmt.Sprintf("https://factchecktools.googleapis.com/v1alpha1/claims:search?query=%s&key=%s",
		url.QueryEscape(query), c.APIKey)

	resp, err := http.Get(apiURL)
	if err != nil {
		log.Printf("[FACT CHECK] ❌ Ошибка сети: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[FACT CHECK] ❌ API вернуло статус: %d", resp.StatusCode)
		return "", fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var factCheckResp googleFactCheckResponse
	if err := json.Unmarshal(body, &factCheckResp); err != nil {
		log.Printf("[FACT CHECK] ❌ Ошибка парсинга JSON: %v", err)
		return "", err
	}

	if len(factCheckResp.Claims) == 0 {
		return "", nil
	}

	result := "--- FACT CHECK DATABASE (Google Fact Check Tools) ---\n"
	result += "Independent journalists have already reviewed similar claims. If the analyzed text matches these, use it in your analysis:\n"

	count := 0
	for _, claim := range factCheckResp.Claims {
		if count >= 3 {
			break // не перегружаем контекст
		}
		if len(claim.ClaimReview) == 0 {
			continue
		}
		review := claim.ClaimReview[0]
		result += fmt.Sprintf("\nClaim: \"%s\"\nJournalist verdict: %s\nSource: %s (%s)\n",
			claim.Text, review.TextualRating, review.Publisher.Name, review.Url)
		count++
	}

	log.Printf("[FACT CHECK] ✓ Найдено проверок: %d", count)
	return result, nil
}
