// Package locale maps between free-text language names, canonical locale
// codes, and display labels for the fixed set of languages the bot supports.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale pairs a canonical locale code with its display label.
type Locale struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// supported is the fixed set of locales the bot offers, in display order.
var supported = []Locale{
	{Code: "en", Label: "English"},
	{Code: "es", Label: "Spanish"},
	{Code: "fr", Label: "French"},
	{Code: "de", Label: "German"},
	{Code: "pt-BR", Label: "Portuguese (BR)"},
	{Code: "zh-CN", Label: "Chinese (Simplified)"},
	{Code: "ja", Label: "Japanese"},
	{Code: "ko", Label: "Korean"},
	{Code: "hi", Label: "Hindi"},
	{Code: "ar", Label: "Arabic"},
	{Code: "ru", Label: "Russian"},
	{Code: "it", Label: "Italian"},
	{Code: "nl", Label: "Dutch"},
	{Code: "tr", Label: "Turkish"},
	{Code: "pl", Label: "Polish"},
}

// nameToCode maps lower-cased English language names to canonical codes.
var nameToCode = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"portuguese": "pt-BR",
	"chinese":    "zh-CN",
	"japanese":   "ja",
	"korean":     "ko",
	"hindi":      "hi",
	"arabic":     "ar",
	"russian":    "ru",
	"italian":    "it",
	"dutch":      "nl",
	"turkish":    "tr",
	"polish":     "pl",
}

// primaryToName maps primary language subtags to lower-cased English names,
// used for lang:<name> labels. Detection returns primary subtags ("pt"), so
// this table is keyed on those rather than full codes.
var primaryToName = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"de": "german",
	"pt": "portuguese",
	"zh": "chinese",
	"ja": "japanese",
	"ko": "korean",
	"hi": "hindi",
	"ar": "arabic",
	"ru": "russian",
	"it": "italian",
	"nl": "dutch",
	"tr": "turkish",
	"pl": "polish",
}

// Supported returns the fixed locale set in display order. The returned
// slice is a copy; callers may mutate it.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Resolve maps a free-text English language name to its canonical locale
// code. Unrecognized input is lower-cased and returned unchanged; callers
// must tolerate an unsupported code reaching the translation capability,
// which may reject it itself.
func Resolve(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if code, ok := nameToCode[lower]; ok {
		return code
	}
	return lower
}

// Label returns the display label for a locale code, defaulting to the code
// itself when unknown. Lookup is case-insensitive.
func Label(code string) string {
	for _, l := range supported {
		if strings.EqualFold(l.Code, code) {
			return l.Label
		}
	}
	return code
}

// Name returns the lower-cased English language name for a locale code,
// matching on the primary subtag ("pt-BR" and "pt" both yield "portuguese").
// Unmapped codes are returned verbatim.
func Name(code string) string {
	if name, ok := primaryToName[Primary(code)]; ok {
		return name
	}
	return code
}

// Primary returns the lower-cased primary language subtag of a locale code.
// Parsing goes through x/text so aliases canonicalize consistently; input
// that does not parse falls back to the substring before the first "-".
func Primary(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		primary, _, _ := strings.Cut(code, "-")
		return strings.ToLower(primary)
	}
	base, _ := tag.Base()
	return base.String()
}

// SamePrimary reports whether two locale codes share a primary language
// subtag, e.g. "pt" and "pt-BR". Used as the redundant-translation guard.
func SamePrimary(a, b string) bool {
	return Primary(a) == Primary(b)
}
