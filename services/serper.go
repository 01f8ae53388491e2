package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"truth-analyzer/models"
)

// SerperClient — поиск в Google через serper.dev. Используется как запасной
// источник ссылок для проверки, когда модель не вернула ни одной.
type SerperClient struct {
	APIKey string
}

type serperRequest struct {
	Q   string `json:"q"`
	Gl  string `json:"gl,omitempty"`
	Hl  string `json:"hl,omitempty"`
	Num int    `json:"num,omitempty"`
}

type serperResponse struct {
	Organic []SerperResult `json:"organic"`
	News    []SerperResult `json:"news"`
}

type SerperResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{APIKey: apiKey}
}

func (s *SerperClient) Search(query string, num int) ([]SerperResult, error) {
	log.Printf("[SERPER] 🔍 Поиск в Google: \"%s\"", query)

	reqBody := serperRequest{Q: query, Gl: "us", Hl: "en", Num: num}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга: %w", err)
	}

	req, err := http.NewRequest("POST", "https://google.serper.dev/search", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API вернул ошибку %d: %s", resp.StatusCode, string(body))
	}

	var serperResp serperResponse
	if err := json.Unmarshal(body, &serperResp); err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	results := append(serperResp.Organic, serperResp.News...)
	log.Printf("[SERPER] ✓ Найдено результатов: %d", len(results))
	return results, nil
}

// FindVerificationLinks — подбирает ссылки для самостоятельной проверки.
// Результаты поиска прогоняются через ту же санацию, что и ссылки модели,
// поэтому на выходе те же гарантии: не больше 5, у каждой непустой url.
func (s *SerperClient) FindVerificationLinks(text string) []models.VerificationLink {
	keywords := extractKeywords(text)
	if len(keywords) == 0 {
		log.Printf("[SERPER] ⚠ Не удалось извлечь ключевые слова")
		return []models.VerificationLink{}
	}

	query := "fact check " + strings.Join(keywords[:min(4, len(keywords))], " ")
	results, err := s.Search(query, 10)
	if err != nil {
		log.Printf("[SERPER] ⚠ Поиск ссылок не удался: %v", err)
		return []models.VerificationLink{}
	}

	raw := make([]interface{}, 0, len(results))
	for _, r := range results {
		raw = append(raw, map[string]interface{}{
			"title": r.Title,
			"url":   r.Link,
			"type":  linkTypeForURL(r.Link),
			"note":  r.Snippet,
		})
	}
	links := SanitizeLinks(raw)
	log.Printf("[SERPER] ✓ Подобрано ссылок для проверки: %d", len(links))
	return links
}

var factCheckDomains = []string{"snopes.", "politifact.", "factcheck.", "fullfact.", "stopfals."}

func linkTypeForURL(url string) string {
	lower := strings.ToLower(url)
	for _, domain := range factCheckDomains {
		if strings.Contains(lower, domain) {
			return models.LinkFactCheck
		}
	}
	return models.LinkNews
}

// extractKeywords — простое извлечение значимых слов без стоп-слов.
func extractKeywords(text string) []string {
	stopWords := map[string]bool{
		"the": true, "is": true, "and": true, "or": true, "a": true,
		"an": true, "in": true, "on": true, "at": true, "to": true,
		"for": true, "of": true, "with": true, "by": true, "from": true,
		"that": true, "this": true, "was": true, "are": true, "have": true,
	}

	var keywords []string
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(strings.Trim(word, ".,!?;:\"'()[]{}"))
		if len(word) > 3 && !stopWords[word] {
			keywords = append(keywords, word)
		}
		if len(keywords) >= 8 {
			break
		}
	}
	return keywords
}
