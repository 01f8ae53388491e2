package main

import (
	"log"
	"net/http"

	"truth-analyzer/cache"
	"truth-analyzer/config"
	"truth-analyzer/database"
	"truth-analyzer/handlers"
	"truth-analyzer/logger"
	"truth-analyzer/services"
)

func main() {
	// Все логи идут и в консоль, и в WebSocket подписчиков админки
	log.SetOutput(logger.GetWriter())
	log.SetFlags(log.LstdFlags)

	log.Println("╔════════════════════════════════════════╗")
	log.Println("║      TRUTH ANALYZER — BACKEND          ║")
	log.Println("║   Анализ текста на дезинформацию       ║")
	log.Println("╚════════════════════════════════════════╝")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	database.InitDB(cfg.DbUrl)
	cache.InitRedis(cfg.RedisUrl)

	promptConfig, err := services.LoadPromptConfig(cfg.PromptsPath)
	if err != nil {
		log.Printf("⚠️ Файл промпта не загружен (%v), использую встроенный", err)
		promptConfig = services.DefaultPromptConfig()
	}

	heuristics, err := services.LoadHeuristicConfig(cfg.HeuristicsPath)
	if err != nil {
		log.Printf("⚠️ Таблица эвристик не загружена (%v), использую встроенную", err)
		heuristics = services.DefaultHeuristicConfig()
	}

	// Выбор AI провайдера: локальная модель или Gemini
	var aiClient services.AIClient
	if cfg.UseLMStudio {
		log.Printf("🖥 Режим: LM Studio (%s, модель %s)", cfg.LMStudioURL, cfg.LMStudioModel)
		aiClient = services.NewLMStudioClient(cfg.LMStudioURL, cfg.LMStudioModel)
	} else if cfg.GeminiAPIKey != "" {
		log.Printf("🤖 Режим: Google Gemini (модель %s)", cfg.GeminiModel)
		if cfg.GeminiModelBackup != "" {
			log.Printf("   Резервная модель: %s", cfg.GeminiModelBackup)
		}
		aiClient = services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiModelBackup)
	} else {
		log.Println("⚠️ GEMINI_API_KEY не установлен — все запросы получат fallback-ответ")
	}

	fetcher := services.NewContentFetcher()
	serper := services.NewSerperClient(cfg.SerperAPIKey)
	factCheck := services.NewGoogleFactCheckClient(cfg.GoogleFactCheckAPIKey)

	analyzer := services.NewAnalyzerService(aiClient, fetcher, serper, factCheck, promptConfig, heuristics)

	analyzerHandler := handlers.NewAnalyzerHandler(analyzer)
	adminHandler := handlers.NewAdminHandler(cfg, analyzer)
	shareHandler := handlers.NewShareHandler()
	domainHandler := handlers.NewDomainHandler()

	http.HandleFunc("/api/analyze", analyzerHandler.Analyze)
	http.HandleFunc("/api/analyze/stream", analyzerHandler.AnalyzeStream)
	http.HandleFunc("/api/health", analyzerHandler.Health)
	http.HandleFunc("/api/limits", analyzerHandler.Limits)

	http.HandleFunc("/api/domain/", domainHandler.GetDomain)
	http.HandleFunc("/api/domains/top", domainHandler.GetTopDomains)

	http.HandleFunc("/api/share", shareHandler.Create)
	http.HandleFunc("/api/share/", shareHandler.GetResult)
	http.HandleFunc("/s/", shareHandler.ShowPage)

	http.HandleFunc("/api/admin/stats", adminHandler.AuthMiddleware(adminHandler.GetStats))
	http.HandleFunc("/api/admin/pause", adminHandler.AuthMiddleware(adminHandler.Pause))
	http.HandleFunc("/api/admin/resume", adminHandler.AuthMiddleware(adminHandler.Resume))
	http.HandleFunc("/api/admin/status", adminHandler.AuthMiddleware(adminHandler.GetStatus))
	http.HandleFunc("/api/admin/logs", adminHandler.StreamLogs)

	log.Printf("🚀 Сервер запущен на порту :%s", cfg.Port)
	log.Printf("   POST /api/analyze        — анализ текста или URL")
	log.Printf("   POST /api/analyze/stream — анализ с прогрессом (SSE)")
	log.Printf("   GET  /api/health         — проверка состояния")

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("❌ Ошибка запуска сервера: %v", err)
	}
}
