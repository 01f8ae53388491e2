package services

import (
	"testing"

	"truth-analyzer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyEmptyReply(t *testing.T) {
	h := DefaultHeuristicConfig()

	for _, reply := range []string{"", "   ", "\n\t  \n"} {
		outcome := ParseReply(reply, h)
		assert.Equal(t, OutcomeUnavailable, outcome.Kind)
		assert.Nil(t, outcome.Candidate)
	}
}

func TestParseReplyExtractsEmbeddedJSON(t *testing.T) {
	reply := `Sure! Here is my analysis: {"confidence_score": 999, "risk_level": "extreme"} thanks for asking`

	outcome := ParseReply(reply, DefaultHeuristicConfig())
	require.Equal(t, OutcomeParsed, outcome.Kind)

	// Кандидат сырой, нормализует его валидатор
	result := ValidateCandidate(outcome.Candidate)
	assert.Equal(t, 100, result.ConfidenceScore)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
}

func TestParseReplyMarkdownBlock(t *testing.T) {
	reply := "Here you go:\n```json\n{\"confidence_score\": 88, \"prediction\": \"LIKELY_FAKE\"}\n```\nLet me know if you need more."

	outcome := ParseReply(reply, DefaultHeuristicConfig())
	require.Equal(t, OutcomeParsed, outcome.Kind)

	result := ValidateCandidate(outcome.Candidate)
	assert.Equal(t, 88, result.ConfidenceScore)
	assert.Equal(t, models.PredictionLikelyFake, result.Prediction)
}

func TestParseReplyNoJSONFallsToHeuristic(t *testing.T) {
	reply := "I cannot produce structured output, but officials refuse to comment on this story."

	outcome := ParseReply(reply, DefaultHeuristicConfig())
	require.Equal(t, OutcomeHeuristic, outcome.Kind)
	require.NotNil(t, outcome.Candidate)

	result := ValidateCandidate(outcome.Candidate)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, models.PredictionLikelyFake, result.Prediction)
	assert.Equal(t, 80, result.ConfidenceScore) // base 70 + одно совпадение
	require.Len(t, result.RedFlags, 1)
	assert.Contains(t, result.RedFlags[0].Flag, "officials refuse to comment")
}

func TestParseReplyMalformedJSONFallsToHeuristic(t *testing.T) {
	reply := `{"confidence_score": 90, "risk_level": ` // обрыв посреди объекта

	outcome := ParseReply(reply, DefaultHeuristicConfig())
	assert.Equal(t, OutcomeHeuristic, outcome.Kind)
	assert.NotNil(t, outcome.Candidate)
}

func TestParseReplyHeuristicFailure(t *testing.T) {
	reply := "plain text without structure"

	outcome := ParseReply(reply, nil)
	assert.Equal(t, OutcomeHeuristicFailure, outcome.Kind)

	outcome = ParseReply(reply, &HeuristicConfig{Phrases: nil})
	assert.Equal(t, OutcomeHeuristicFailure, outcome.Kind)
}

func TestParseReplyBracesWithoutJSON(t *testing.T) {
	// Скобки есть, но содержимое не парсится — эвристика
	outcome := ParseReply("weird {not json at all} text", DefaultHeuristicConfig())
	assert.Equal(t, OutcomeHeuristic, outcome.Kind)
}
