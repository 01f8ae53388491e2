package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptContainsText(t *testing.T) {
	pc := DefaultPromptConfig()
	text := "Scientists allegedly discovered a miracle cure."

	prompt := pc.BuildAnalysisPrompt(text, "", "")

	assert.Contains(t, prompt, text)
	assert.Contains(t, prompt, `"""`)
}

func TestBuildAnalysisPromptClassifierHint(t *testing.T) {
	pc := DefaultPromptConfig()

	withHint := pc.BuildAnalysisPrompt("some text", "FAKE", "")
	assert.Contains(t, withHint, "ML Model Prediction: FAKE")

	withoutHint := pc.BuildAnalysisPrompt("some text", "", "")
	assert.NotContains(t, withoutHint, "ML Model Prediction")
}

func TestBuildAnalysisPromptSchemaFields(t *testing.T) {
	prompt := DefaultPromptConfig().BuildAnalysisPrompt("text", "", "")

	for _, field := range []string{
		"confidence_score",
		"risk_level",
		"prediction",
		"red_flags",
		"credibility_indicators",
		"educational_insights",
		"verification_suggestions",
		"verification_links",
		"verification_notes",
		"summary",
	} {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildAnalysisPromptDirectives(t *testing.T) {
	prompt := DefaultPromptConfig().BuildAnalysisPrompt("text", "", "")

	assert.Contains(t, prompt, "Respond with JSON only")
	assert.Contains(t, prompt, "at most 5 verification_links")
}

func TestBuildAnalysisPromptSearchContext(t *testing.T) {
	pc := DefaultPromptConfig()
	ctx := "--- FACT CHECK DATABASE (Google Fact Check Tools) ---\nClaim: \"x\"\n"

	prompt := pc.BuildAnalysisPrompt("text", "", ctx)
	assert.Contains(t, prompt, "FACT CHECK DATABASE")
}

func TestBuildAnalysisPromptFocusAreasNumbered(t *testing.T) {
	pc := DefaultPromptConfig()
	prompt := pc.BuildAnalysisPrompt("text", "", "")

	assert.Contains(t, prompt, "1. Vague or unnamed sources")
	assert.Contains(t, prompt, "7. Signs of financial or political manipulation")
}
