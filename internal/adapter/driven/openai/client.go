// Package openai implements the language capability ports (detection,
// translation, summarization) using the OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.LanguageDetector = (*Client)(nil)
	_ driven.Translator       = (*Client)(nil)
	_ driven.Summarizer       = (*Client)(nil)
)

// detectionSampleLimit bounds how much text is sent for language detection.
// The opening characters are enough to identify a language; issue bodies can
// be arbitrarily long.
const detectionSampleLimit = 1000

// Client implements the three language capability ports against a single
// chat-completions model. Issue and comment bodies may carry HTML, which
// only wastes prompt tokens and can confuse detection, so text is run
// through a strict sanitizer before prompting.
type Client struct {
	oa       openai.Client
	model    string
	sanitize *bluemonday.Policy
}

// NewClient creates a Client for the given API key and model. baseURL is
// optional and supports OpenAI-compatible endpoints.
func NewClient(apiKey, baseURL, model string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		oa:       openai.NewClient(opts...),
		model:    model,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Detect returns a best-guess lower-cased ISO 639-1 style code for the text.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	sample := truncateSample(c.sanitize.Sanitize(text))

	raw, err := c.complete(ctx, detectionPrompt, sample)
	if err != nil {
		return "", fmt.Errorf("detect language: %w", err)
	}

	code := strings.ToLower(strings.TrimSpace(raw))
	// Defensive clamp: the model is told to answer with a bare code, but a
	// chatty response must not leak a paragraph into locale comparisons.
	if len(code) > 5 {
		code = code[:5]
	}
	return code, nil
}

// Translate renders text from sourceLocale into targetLocale.
func (c *Client) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	out, err := c.complete(ctx, translationPrompt(sourceLocale, targetLocale), text)
	if err != nil {
		return "", fmt.Errorf("translate %s to %s: %w", sourceLocale, targetLocale, err)
	}
	return strings.TrimSpace(out), nil
}

// Summarize produces a concise English-pivot summary of the text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	out, err := c.complete(ctx, summaryPrompt, text)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// truncateSample caps detection input at detectionSampleLimit bytes, backing
// up to a rune boundary so a multi-byte character is never split mid-sequence.
func truncateSample(s string) string {
	if len(s) <= detectionSampleLimit {
		return s
	}

	cut := detectionSampleLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// complete issues one non-streaming chat completion.
func (c *Client) complete(ctx context.Context, systemPrompt, content string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(content),
		},
	}

	resp, err := c.oa.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
