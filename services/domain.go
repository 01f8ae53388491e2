package services

import (
	"log"
	"net/url"
	"strings"

	"truth-analyzer/database"
	"truth-analyzer/models"
)

// NormalizeDomain — host из URL без www. и порта.
func NormalizeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}

// CredibilityForDomain — вклад одного анализа в репутацию домена (0-100):
// вердикт модели переводится в шкалу достоверности.
func CredibilityForDomain(result *models.AnalysisResult) int {
	switch result.Prediction {
	case models.PredictionReal:
		return 90
	case models.PredictionLikelyReal:
		return 70
	case models.PredictionLikelyFake:
		return 30
	case models.PredictionFake:
		return 10
	default:
		return 50
	}
}

// UpsertDomainStats — обновляет репутацию домена после каждого URL-анализа.
func UpsertDomainStats(rawURL string, credibility int) {
	if database.DB == nil {
		return
	}
	domain := NormalizeDomain(rawURL)
	if domain == "" {
		return
	}
	_, err := database.DB.Exec(`
		INSERT INTO domain_stats (domain, total_analyses, sum_credibility, avg_credibility, last_analyzed_at)
		VALUES ($1, 1, $2::INTEGER, $2::FLOAT, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			total_analyses   = domain_stats.total_analyses + 1,
			sum_credibility  = domain_stats.sum_credibility + $2::INTEGER,
			avg_credibility  = (domain_stats.sum_credibility + $2)::float / (domain_stats.total_analyses + 1),
			last_analyzed_at = NOW()
	`, domain, credibility)
	if err != nil {
		log.Printf("[DOMAIN] ⚠ Ошибка обновления stats для %s: %v", domain, err)
	} else {
		log.Printf("[DOMAIN] ✓ Stats обновлены: %s credibility=%d", domain, credibility)
	}
}
