// Package application contains use-case orchestration services.
package application

import (
	"regexp"
	"strings"

	"github.com/ericfisherdev/langbot/internal/domain/model"
)

// Command grammar, applied to the lower-cased text after the mention token.
// The language capture is deliberately loose: humans type these in free-text
// comments, so trailing words are consumed greedily up to the first
// non-word boundary rather than rejected.
var (
	translateToPattern = regexp.MustCompile(`^translate\s+to\s+(\w[\w\s-]*\w|\w+)`)
	summarizeInPattern = regexp.MustCompile(`^summarize\s+in\s+(\w[\w\s-]*\w|\w+)`)
)

// fallbackTranslateTarget is used when a bare "translate" carries no target.
const fallbackTranslateTarget = "english"

// ParseCommand extracts a structured command from a comment body. The
// mention token is matched case-insensitively anywhere in the text; the
// grammar is checked against the trimmed tail after it, in priority order:
//
//	translate to <language>   -> translate to the named language
//	summarize in <language>   -> summarize in the named language
//	summarize ...             -> summarize in the effective default language
//	translate ...             -> translate to English (fixed fallback)
//
// A body without the mention, or with an unrecognized verb after it,
// produces nil: an ignored mention, not an error.
func ParseCommand(mention, body string) *model.Command {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, strings.ToLower(mention))
	if idx == -1 {
		return nil
	}

	tail := strings.TrimSpace(lower[idx+len(mention):])

	if m := translateToPattern.FindStringSubmatch(tail); m != nil {
		return &model.Command{Action: model.CommandTranslate, Language: strings.TrimSpace(m[1])}
	}

	if m := summarizeInPattern.FindStringSubmatch(tail); m != nil {
		return &model.Command{Action: model.CommandSummarize, Language: strings.TrimSpace(m[1])}
	}

	if strings.HasPrefix(tail, "summarize") {
		return &model.Command{Action: model.CommandSummarize}
	}

	if strings.HasPrefix(tail, "translate") {
		return &model.Command{Action: model.CommandTranslate, Language: fallbackTranslateTarget}
	}

	return nil
}
