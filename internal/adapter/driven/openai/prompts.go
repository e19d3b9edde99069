package openai

import "fmt"

// detectionPrompt asks for a bare ISO 639-1 code so the response can be used
// directly as a locale code.
const detectionPrompt = `Detect the language of the user's text. Reply with ONLY the lowercase ISO 639-1 language code (e.g. "en", "zh", "es", "ja"). Nothing else.`

// summaryPrompt always produces English output; the caller translates the
// pivot summary when a different target language is wanted.
const summaryPrompt = `Summarize the following GitHub issue or pull request content concisely. Keep it clear and actionable. Write in English.`

// translationPrompt builds the system prompt for locale-to-locale translation.
func translationPrompt(sourceLocale, targetLocale string) string {
	return fmt.Sprintf(`You are an expert translator. Translate the user's text from locale %q into locale %q.

<instructions>
1. Output ONLY the translated text, nothing else
2. Preserve the original meaning, tone, and Markdown formatting
3. Keep proper nouns, code blocks, and URLs unchanged
4. NO explanations and NO notes
</instructions>`, sourceLocale, targetLocale)
}
