package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ContentFetcher — загружает статью по URL и извлекает из HTML читаемый текст.
type ContentFetcher struct {
	client *http.Client
}

func NewContentFetcher() *ContentFetcher {
	return &ContentFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Теги, чьё поддерево пропускается целиком
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "canvas": true, "audio": true, "video": true,
	"nav": true, "footer": true, "aside": true,
}

// Блочные теги — после них перенос строки
var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"div": true, "section": true, "article": true, "main": true,
	"blockquote": true, "li": true, "tr": true, "br": true, "figcaption": true,
}

var junkClassRe = regexp.MustCompile(`(?i)(advertisement|ad-banner|popup|modal|cookie-banner|newsletter|promo|sponsored)`)

func (f *ContentFetcher) FetchURL(url string) (string, error) {
	log.Printf("[FETCHER] 🌐 Загружаю контент с URL: %s", url)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("статус код: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения: %w", err)
	}

	log.Printf("[FETCHER] ✓ Загружено %d байт", len(body))

	content := f.extractText(string(body))
	log.Printf("[FETCHER] ✓ Извлечено %d символов текста", len(content))

	if len(content) < 200 {
		return "", fmt.Errorf("недостаточно текстового контента на странице (%d символов)", len(content))
	}
	return content, nil
}

func (f *ContentFetcher) extractText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		log.Printf("[FETCHER] ⚠ Ошибка парсинга HTML: %v", err)
		return ""
	}

	// Семантические контейнеры статьи предпочтительнее всей страницы
	root := doc
	for _, tag := range []string{"article", "main"} {
		if node := findTag(doc, tag); node != nil {
			root = node
			break
		}
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if skipTags[tag] || isJunkNode(n) {
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockTags[tag] {
				sb.WriteByte('\n')
			}
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				if s := sb.String(); len(s) > 0 && s[len(s)-1] != '\n' && s[len(s)-1] != ' ' {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	text := strings.Join(lines, "\n")

	// Ограничиваем размер, чтобы не раздувать промпт
	if runes := []rune(text); len(runes) > 20000 {
		log.Printf("[FETCHER] ⚠ Текст слишком длинный (%d симв.), обрезаю до 20000", len(runes))
		text = string(runes[:20000])
	}
	return text
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findTag(c, tag); result != nil {
			return result
		}
	}
	return nil
}

func isJunkNode(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "class", "id":
			if junkClassRe.MatchString(attr.Val) {
				return true
			}
		case "aria-hidden":
			if attr.Val == "true" {
				return true
			}
		}
	}
	return false
}
