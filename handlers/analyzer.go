package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"truth-analyzer/models"
	"truth-analyzer/services"
)

type AnalyzerHandler struct {
	service *services.AnalyzerService
}

func NewAnalyzerHandler(service *services.AnalyzerService) *AnalyzerHandler {
	return &AnalyzerHandler{service: service}
}

// Analyze — обычный endpoint, возвращает финальный JSON.
func (h *AnalyzerHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	log.Printf("\n========================================")
	log.Printf("[HANDLER] 📥 Получен запрос: %s %s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Метод не поддерживается", http.StatusMethodNotAllowed)
		return
	}

	if h.service.IsPaused.Load() {
		http.Error(w, "Сервис временно приостановлен", http.StatusServiceUnavailable)
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	var result *models.AnalysisResult

	switch {
	case req.URL != "":
		log.Printf("[HANDLER] 🌐 Анализ URL: %s", req.URL)
		var err error
		result, err = h.service.AnalyzeURL(req.URL, req.ClassifierHint)
		if err != nil {
			http.Error(w, "Не удалось загрузить страницу: "+err.Error(), http.StatusBadGateway)
			return
		}
	case req.Text != "":
		log.Printf("[HANDLER] 📝 Анализ текста (%d символов)", len(req.Text))
		result = h.service.AnalyzeText(req.Text, req.ClassifierHint)
	default:
		http.Error(w, "Необходимо указать 'text' или 'url'", http.StatusBadRequest)
		return
	}

	log.Printf("[HANDLER] ✅ Готово за %v", time.Since(startTime))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(result)
}

// AnalyzeStream — SSE endpoint, показывает прогресс в реальном времени.
func (h *AnalyzerHandler) AnalyzeStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не поддерживается", http.StatusMethodNotAllowed)
		return
	}

	if h.service.IsPaused.Load() {
		http.Error(w, "Сервис временно приостановлен", http.StatusServiceUnavailable)
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.URL == "" && req.Text == "" {
		http.Error(w, "Необходимо указать 'text' или 'url'", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming не поддерживается", http.StatusInternalServerError)
		return
	}

	sendEvent := func(eventType, data string) {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
		flusher.Flush()
	}
	sendProgress := func(msg string) {
		sendEvent("progress", msg)
	}

	sendEvent("start", "🚀 Начинаю анализ...")

	var result *models.AnalysisResult
	if req.URL != "" {
		var err error
		result, err = h.service.AnalyzeURL(req.URL, req.ClassifierHint, sendProgress)
		if err != nil {
			sendEvent("error", "❌ "+err.Error())
			return
		}
	} else {
		result = h.service.AnalyzeText(req.Text, req.ClassifierHint, sendProgress)
	}

	resultJSON, _ := json.Marshal(result)
	sendEvent("result", string(resultJSON))
	sendEvent("done", "✅ Анализ завершён!")
}

func (h *AnalyzerHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Limits — снапшот rate limit'ов AI провайдеров.
func (h *AnalyzerHandler) Limits(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services.GetRateLimits())
}
