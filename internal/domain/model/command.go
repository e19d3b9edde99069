package model

// CommandAction identifies the verb of a parsed bot command.
type CommandAction string

// Supported command actions.
const (
	CommandTranslate CommandAction = "translate"
	CommandSummarize CommandAction = "summarize"
)

// Command is a structured instruction extracted from a comment that mentions
// the bot. Language holds the free-text language name exactly as typed (not
// yet locale-resolved). For summarize commands an empty Language means "use
// the effective settings' default language". Commands live only for the
// duration of one event handling; nothing is persisted.
type Command struct {
	Action   CommandAction
	Language string
}
