package services

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Имена провайдеров для снапшотов rate limit.
const (
	ProviderGemini   = "gemini"
	ProviderLMStudio = "lmstudio"
)

// RateLimitInfo — последнее известное состояние лимитов одного провайдера.
// Заполняется из заголовков ответа; -1 значит «провайдер не сообщил».
type RateLimitInfo struct {
	Provider          string `json:"provider"`
	LimitRequests     int    `json:"limit_requests"`
	RemainingRequests int    `json:"remaining_requests"`
	ResetRequests     string `json:"reset_requests"`
	RetryAfter        string `json:"retry_after,omitempty"`
	Throttled         bool   `json:"throttled"`
	StatusCode        int    `json:"status_code"`
	UpdatedAt         int64  `json:"updated_at"`
	UpdatedAgo        string `json:"updated_ago"`
}

var (
	rlMu    sync.RWMutex
	rlStore = map[string]*RateLimitInfo{}
)

// UpdateRateLimit — снимает лимиты из заголовков ответа провайдера.
func UpdateRateLimit(provider string, resp *http.Response, statusCode int) {
	if resp == nil {
		return
	}

	info := &RateLimitInfo{
		Provider:          provider,
		LimitRequests:     headerInt(resp, "X-Ratelimit-Limit-Requests"),
		RemainingRequests: headerInt(resp, "X-Ratelimit-Remaining-Requests"),
		ResetRequests:     resp.Header.Get("X-Ratelimit-Reset-Requests"),
		RetryAfter:        resp.Header.Get("Retry-After"),
		Throttled:         statusCode == http.StatusTooManyRequests,
		StatusCode:        statusCode,
		UpdatedAt:         time.Now().UnixMilli(),
	}

	rlMu.Lock()
	rlStore[provider] = info
	rlMu.Unlock()
}

// GetRateLimits — копия всех сохранённых снапшотов для /api/limits.
func GetRateLimits() map[string]*RateLimitInfo {
	rlMu.RLock()
	defer rlMu.RUnlock()

	out := map[string]*RateLimitInfo{}
	now := time.Now()
	for k, v := range rlStore {
		cp := *v
		ago := now.Sub(time.UnixMilli(v.UpdatedAt))
		if ago < time.Minute {
			cp.UpdatedAgo = strconv.Itoa(int(ago.Seconds())) + "s назад"
		} else {
			cp.UpdatedAgo = strconv.Itoa(int(ago.Minutes())) + "m назад"
		}
		out[k] = &cp
	}
	return out
}

func headerInt(resp *http.Response, key string) int {
	v := resp.Header.Get(key)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
