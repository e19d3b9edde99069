package openai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationPrompt(t *testing.T) {
	prompt := translationPrompt("ja", "pt-BR")

	assert.Contains(t, prompt, `"ja"`)
	assert.Contains(t, prompt, `"pt-BR"`)
	assert.Contains(t, prompt, "ONLY the translated text")
}

func TestDetectionPromptDemandsBareCode(t *testing.T) {
	assert.Contains(t, detectionPrompt, "ISO 639-1")
	assert.Contains(t, detectionPrompt, "Nothing else")
}

func TestSummaryPromptPinsEnglishPivot(t *testing.T) {
	assert.True(t, strings.Contains(summaryPrompt, "Write in English"))
}
