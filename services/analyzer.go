package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"truth-analyzer/cache"
	"truth-analyzer/database"
	"truth-analyzer/models"
)

// AIClient — интерфейс для любого AI провайдера (Gemini, LM Studio).
// Промпт внутрь, сырой текст наружу; транспорт и повторы — дело клиента.
type AIClient interface {
	Analyze(prompt string) (string, error)
}

type AnalyzerService struct {
	client       AIClient
	fetcher      *ContentFetcher
	serper       *SerperClient
	factCheck    *GoogleFactCheckClient
	promptConfig *PromptConfig
	heuristics   *HeuristicConfig
	IsPaused     atomic.Bool
}

func NewAnalyzerService(client AIClient, fetcher *ContentFetcher, serper *SerperClient, factCheck *GoogleFactCheckClient, promptConfig *PromptConfig, heuristics *HeuristicConfig) *AnalyzerService {
	return &AnalyzerService{
		client:       client,
		fetcher:      fetcher,
		serper:       serper,
		factCheck:    factCheck,
		promptConfig: promptConfig,
		heuristics:   heuristics,
	}
}

// AnalyzeText — единственная операция пайплайна. Никогда не возвращает
// ошибку: любой сбой на любом этапе заканчивается полностью заполненным
// результатом, деградация видна только по is_fallback.
func (s *AnalyzerService) AnalyzeText(text, classifierHint string, progress ...func(string)) *models.AnalysisResult {
	return s.analyze(text, classifierHint, "", reportFunc(progress))
}

// AnalyzeURL — загружает статью и анализирует извлечённый текст.
// Ошибка возможна только на загрузке страницы, сам анализ не падает.
func (s *AnalyzerService) AnalyzeURL(url, classifierHint string, progress ...func(string)) (*models.AnalysisResult, error) {
	report := reportFunc(progress)
	report("🌐 АНАЛИЗ СТАТЬИ ПО URL")
	report("   " + url)

	content, err := s.fetcher.FetchURL(url)
	if err != nil {
		report(fmt.Sprintf("❌ Не удалось загрузить страницу: %v", err))
		return nil, err
	}
	report(fmt.Sprintf("✓ Страница загружена (%d символов)", len(content)))

	result := s.analyze(content, classifierHint, url, report)
	UpsertDomainStats(url, CredibilityForDomain(result))
	return result, nil
}

func (s *AnalyzerService) analyze(text, classifierHint, sourceURL string, report func(string)) *models.AnalysisResult {
	report("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	report(fmt.Sprintf("📝 ШАГ 1/4 — Получен текст (%d символов)", len(text)))

	cacheKey := resultCacheKey(text, classifierHint)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		var result models.AnalysisResult
		if json.Unmarshal([]byte(cached), &result) == nil {
			report("⚡ Результат найден в кэше")
			result.SourceURL = sourceURL
			return &result
		}
	}

	// Контекст из базы фактчекеров (опционально)
	var searchContext string
	if s.factCheck != nil && s.factCheck.APIKey != "" {
		report("🕵 ШАГ 2/4 — Проверяю базу фактчекеров...")
		if ctx, err := s.factCheck.Search(factCheckQuery(text)); err != nil {
			report(fmt.Sprintf("⚠ База фактчекеров недоступна: %v", err))
		} else if ctx != "" {
			searchContext = ctx
			report("✓ Найдены проверки похожих утверждений")
		} else {
			report("⚠ Похожих проверок не найдено")
		}
	} else {
		report("⚠ ШАГ 2/4 — Fact Check API не настроен, пропускаю")
	}

	prompt := s.promptConfig.BuildAnalysisPrompt(text, classifierHint, searchContext)

	report(fmt.Sprintf("🤖 ШАГ 3/4 — Отправляю в AI... (%d символов промпта)", len(prompt)))

	var reply string
	if s.client != nil {
		r, err := s.client.Analyze(prompt)
		if err != nil {
			report(fmt.Sprintf("❌ AI недоступен: %v", err))
		} else {
			reply = r
			report(fmt.Sprintf("✓ AI ответил (%d символов)", len(reply)))
		}
	} else {
		report("❌ AI клиент не сконфигурирован")
	}

	var result *models.AnalysisResult
	outcome := ParseReply(reply, s.heuristics)
	switch outcome.Kind {
	case OutcomeUnavailable:
		report("🛟 Ответа нет — возвращаю канонический fallback")
		result = UnavailableResult()
	case OutcomeHeuristicFailure:
		report("🛟 Эвристика недоступна — возвращаю канонический fallback")
		result = HeuristicFailureResult()
	case OutcomeHeuristic:
		report("🔍 JSON не найден — результат построен по ключевым фразам")
		result = ValidateCandidate(outcome.Candidate)
	default:
		report("✓ JSON извлечён, валидирую поля")
		result = ValidateCandidate(outcome.Candidate)
	}

	// Модель не дала ссылок — подбираем сами
	if len(result.VerificationLinks) == 0 && !result.IsFallback && s.serper != nil && s.serper.APIKey != "" {
		report("🔗 ШАГ 4/4 — Подбираю ссылки для проверки...")
		result.VerificationLinks = s.serper.FindVerificationLinks(text)
	} else {
		report("✅ ШАГ 4/4 — Ссылки для проверки готовы")
	}

	result.SourceURL = sourceURL

	report("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	report("📊 РЕЗУЛЬТАТ АНАЛИЗА:")
	report(fmt.Sprintf("   Уверенность   : %d%%", result.ConfidenceScore))
	report(fmt.Sprintf("   Риск          : %s", result.RiskLevel))
	report(fmt.Sprintf("   Red flags     : %d", len(result.RedFlags)))
	report(fmt.Sprintf("   Ссылок        : %d", len(result.VerificationLinks)))
	switch result.Prediction {
	case models.PredictionFake, models.PredictionLikelyFake:
		report("   Вердикт       : 🔴 ВЕРОЯТНАЯ ДЕЗИНФОРМАЦИЯ")
	case models.PredictionReal, models.PredictionLikelyReal:
		report("   Вердикт       : 🟢 ДОСТОВЕРНЫЙ КОНТЕНТ")
	default:
		report("   Вердикт       : 🟡 НЕОПРЕДЕЛЁННО")
	}
	report("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// Fallback-результаты не кэшируем: при восстановлении сервиса
	// пользователь должен получить настоящий анализ
	if !result.IsFallback {
		if data, err := json.Marshal(result); err == nil {
			cache.Set(cacheKey, string(data), time.Hour)
		}
	}
	database.SaveAnalysis(text, sourceURL, result)

	report("✅ Анализ полностью завершён!")
	return result
}

func reportFunc(progress []func(string)) func(string) {
	return func(msg string) {
		log.Printf("[ANALYZER] %s", msg)
		if len(progress) > 0 && progress[0] != nil {
			progress[0](msg)
		}
	}
}

func resultCacheKey(text, classifierHint string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + classifierHint))
	return "analysis:" + hex.EncodeToString(sum[:])
}

// factCheckQuery — первые значимые слова текста как поисковый запрос.
func factCheckQuery(text string) string {
	keywords := extractKeywords(text)
	if len(keywords) == 0 {
		return ""
	}
	return strings.Join(keywords[:min(5, len(keywords))], " ")
}
