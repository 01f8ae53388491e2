package services

import (
	"encoding/json"
	"log"
	"strings"

	"truth-analyzer/models"
)

// OutcomeKind — терминальное состояние разбора ответа модели.
type OutcomeKind int

const (
	// OutcomeUnavailable — ответа нет вообще, нужен канонический fallback.
	OutcomeUnavailable OutcomeKind = iota
	// OutcomeParsed — найден валидный JSON, кандидат идёт в валидатор.
	OutcomeParsed
	// OutcomeHeuristic — JSON не найден, кандидат построен сканом фраз.
	OutcomeHeuristic
	// OutcomeHeuristicFailure — вырожденный случай: эвристика не может
	// отработать (пустая таблица фраз).
	OutcomeHeuristicFailure
)

// ParseOutcome — закрытый вариантный тип: любой путь разбора заканчивается
// ровно одним из четырёх исходов, и ни один не пропускает нормализацию.
type ParseOutcome struct {
	Kind      OutcomeKind
	Candidate models.ParsedCandidate
}

// ParseReply — разбирает сырой ответ модели. Ошибки отсюда не выходят:
// пустой ответ даёт Unavailable, невалидный JSON уводит на эвристику.
func ParseReply(reply string, heuristics *HeuristicConfig) ParseOutcome {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ParseOutcome{Kind: OutcomeUnavailable}
	}

	if candidate, ok := extractCandidate(reply); ok {
		return ParseOutcome{Kind: OutcomeParsed, Candidate: candidate}
	}

	if heuristics == nil || len(heuristics.Phrases) == 0 {
		log.Printf("[PARSER] ❌ Эвристика не настроена — возвращаю вырожденный fallback")
		return ParseOutcome{Kind: OutcomeHeuristicFailure}
	}

	log.Printf("[PARSER] 🔍 JSON не найден, сканирую текст по таблице фраз")
	return ParseOutcome{Kind: OutcomeHeuristic, Candidate: heuristics.Scan(reply)}
}

// extractCandidate — ищет JSON в ответе: сначала в markdown-блоке ```json,
// иначе между первым '{' и последним '}'. Срез проверяется строгим парсером;
// вложенность скобок не анализируем — модель обязана вернуть один объект.
func extractCandidate(text string) (models.ParsedCandidate, bool) {
	if idx := strings.Index(text, "```json"); idx != -1 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			text = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	var candidate models.ParsedCandidate
	if err := json.Unmarshal([]byte(text[start:end+1]), &candidate); err != nil {
		log.Printf("[PARSER] ⚠ JSON невалидный: %v", err)
		return nil, false
	}
	return candidate, true
}
