package services

import "errors"

// Таксономия ошибок пайплайна. Наружу ни одна из них не уходит:
// единственный видимый потребителю признак деградации — is_fallback.
var (
	// ErrServiceUnavailable — AI сервис не ответил: сеть, ключ, таймаут,
	// пустой ответ. Приводит к каноническому fallback-результату.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrMalformedReply — ответ есть, но восстановить из него ни JSON,
	// ни эвристическую структуру нельзя. На практике недостижимо,
	// пока работает эвристический путь; зарезервировано в таксономии.
	ErrMalformedReply = errors.New("malformed ai reply")
)
