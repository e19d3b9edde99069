package driven

import "context"

// LanguageDetector defines the driven port for language identification.
type LanguageDetector interface {
	// Detect returns a best-guess lower-cased locale code (ISO 639-1 style,
	// e.g. "en", "pt") for the given text.
	Detect(ctx context.Context, text string) (string, error)
}

// Translator defines the driven port for text translation between locales.
type Translator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// Summarizer defines the driven port for text summarization. Output is
// always produced in the English pivot locale; callers translate afterwards
// when a different target is wanted.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
