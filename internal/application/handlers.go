package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericfisherdev/langbot/internal/locale"
)

// labelColor is the background color for lang:<name> labels (hex, no "#").
const labelColor = "c5def5"

// translate resolves the requested language name, detects the subject's
// source locale (never assumed to be English), translates, and posts a
// single comment carrying the translation.
func (d *Dispatcher) translate(ctx context.Context, owner, repo string, issueNumber int, subject, languageName string) error {
	target := locale.Resolve(languageName)

	source, err := d.detector.Detect(ctx, subject)
	if err != nil {
		return fmt.Errorf("detect source language: %w", err)
	}

	translated, err := d.translator.Translate(ctx, subject, source, target)
	if err != nil {
		return fmt.Errorf("translate to %s: %w", target, err)
	}

	body := fmt.Sprintf("**Translation (%s):**\n\n%s", locale.Label(target), translated)
	if err := d.host.PostComment(ctx, owner, repo, issueNumber, body); err != nil {
		return fmt.Errorf("post translation comment: %w", err)
	}
	return nil
}

// summarize produces a summary of the subject in the English pivot locale,
// translates it when the target differs, and posts a single comment.
func (d *Dispatcher) summarize(ctx context.Context, owner, repo string, issueNumber int, subject, languageName string) error {
	target := locale.Resolve(languageName)

	summary, err := d.summarizer.Summarize(ctx, subject)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if target != "en" {
		summary, err = d.translator.Translate(ctx, summary, "en", target)
		if err != nil {
			return fmt.Errorf("translate summary to %s: %w", target, err)
		}
	}

	body := fmt.Sprintf("**Summary (%s):**\n\n%s", locale.Label(target), summary)
	if err := d.host.PostComment(ctx, owner, repo, issueNumber, body); err != nil {
		return fmt.Errorf("post summary comment: %w", err)
	}
	return nil
}

// autoLabel detects the language of title+body and attaches a lang:<name>
// label. The label is created idempotently first; EnsureLabel treats an
// existing label as success, so only genuine creation failures surface.
// No-op on empty subject text.
func (d *Dispatcher) autoLabel(ctx context.Context, owner, repo string, issueNumber int, title, body string) error {
	text := strings.TrimSpace(title + "\n\n" + body)
	if text == "" {
		return nil
	}

	code, err := d.detector.Detect(ctx, text)
	if err != nil {
		return fmt.Errorf("detect language for label: %w", err)
	}

	label := "lang:" + locale.Name(code)

	if err := d.host.EnsureLabel(ctx, owner, repo, label, labelColor); err != nil {
		return fmt.Errorf("ensure label %s: %w", label, err)
	}

	if err := d.host.AttachLabel(ctx, owner, repo, issueNumber, label); err != nil {
		return fmt.Errorf("attach label %s: %w", label, err)
	}
	return nil
}

// autoTranslate translates text into the configured default language and
// posts a marked comment. It short-circuits with no action when the detected
// locale already matches the target or shares its primary subtag (detected
// "pt" against target "pt-BR" is already in the right language). The marker
// makes bot output recognizable downstream; the anti-loop filter itself keys
// on actor identity, never on content.
func (d *Dispatcher) autoTranslate(ctx context.Context, owner, repo string, issueNumber int, text, defaultLanguageName string) error {
	target := locale.Resolve(defaultLanguageName)

	detected, err := d.detector.Detect(ctx, text)
	if err != nil {
		return fmt.Errorf("detect language: %w", err)
	}

	if detected == target || locale.SamePrimary(detected, target) {
		return nil
	}

	translated, err := d.translator.Translate(ctx, text, detected, target)
	if err != nil {
		return fmt.Errorf("auto-translate to %s: %w", target, err)
	}

	body := fmt.Sprintf("**Auto-translated to %s:**\n\n%s", locale.Label(target), translated)
	if err := d.host.PostComment(ctx, owner, repo, issueNumber, body); err != nil {
		return fmt.Errorf("post auto-translation comment: %w", err)
	}
	return nil
}
