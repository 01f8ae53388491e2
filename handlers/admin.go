package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"truth-analyzer/config"
	"truth-analyzer/database"
	"truth-analyzer/logger"
	"truth-analyzer/services"

	"github.com/gorilla/websocket"
)

type AdminHandler struct {
	cfg      *config.Config
	analyzer *services.AnalyzerService
}

func NewAdminHandler(cfg *config.Config, analyzer *services.AnalyzerService) *AdminHandler {
	return &AdminHandler{cfg: cfg, analyzer: analyzer}
}

// AuthMiddleware — проверяет токен администратора.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Admin-Token")
		if h.cfg.AdminToken == "" || token != h.cfg.AdminToken {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if h.analyzer != nil {
		h.analyzer.IsPaused.Store(true)
		log.Println("[ADMIN] ⏸ Приём запросов приостановлен администратором")
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if h.analyzer != nil {
		h.analyzer.IsPaused.Store(false)
		log.Println("[ADMIN] ▶ Приём запросов возобновлён администратором")
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	isPaused := false
	if h.analyzer != nil {
		isPaused = h.analyzer.IsPaused.Load()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"is_paused": isPaused,
	})
}

type AdminStats struct {
	TotalRequests  int                `json:"total_requests"`
	AvgConfidence  float64            `json:"avg_confidence"`
	FakeCount      int                `json:"fake_count"`
	FallbackCount  int                `json:"fallback_count"`
	RecentRequests []AdminHistoryItem `json:"recent_requests"`
}

type AdminHistoryItem struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	Confidence int    `json:"confidence"`
	Prediction string `json:"prediction"`
	CreatedAt  string `json:"created_at"`
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if database.DB == nil {
		http.Error(w, "Database not available", http.StatusInternalServerError)
		return
	}

	stats := AdminStats{}

	if err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM analysis_results",
	).Scan(&stats.TotalRequests); err != nil {
		log.Printf("[ADMIN] Ошибка подсчёта запросов: %v", err)
	}

	database.DB.QueryRow(
		"SELECT COALESCE(AVG((result->>'confidence_score')::int), 0) FROM analysis_results",
	).Scan(&stats.AvgConfidence)

	database.DB.QueryRow(
		"SELECT COUNT(*) FROM analysis_results WHERE result->>'prediction' IN ('FAKE', 'LIKELY_FAKE')",
	).Scan(&stats.FakeCount)

	database.DB.QueryRow(
		"SELECT COUNT(*) FROM analysis_results WHERE (result->>'is_fallback')::boolean",
	).Scan(&stats.FallbackCount)

	rows, err := database.DB.Query(`
		SELECT id, COALESCE(url, ''), (result->>'confidence_score')::int, result->>'prediction', created_at
		FROM analysis_results
		ORDER BY created_at DESC
		LIMIT 10
	`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			item := AdminHistoryItem{}
			rows.Scan(&item.ID, &item.URL, &item.Confidence, &item.Prediction, &item.CreatedAt)
			stats.RecentRequests = append(stats.RecentRequests, item)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене лучше ограничить
	},
}

// StreamLogs — живые логи сервиса по WebSocket (для админки).
func (h *AdminHandler) StreamLogs(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if h.cfg.AdminToken == "" || token != h.cfg.AdminToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ADMIN] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	logsChan := logger.Instance.Subscribe()
	defer logger.Instance.Unsubscribe(logsChan)

	done := make(chan struct{})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()

	for {
		select {
		case msg := <-logsChan:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
