// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken   string
	GitHubAppID   int64
	WebhookSecret string
	BotMention    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	ListenAddr    string
	DBPath        string
}

// Load reads configuration from environment variables and returns a validated
// Config. Required: LANGBOT_GITHUB_TOKEN, LANGBOT_WEBHOOK_SECRET,
// LANGBOT_OPENAI_API_KEY. LANGBOT_GITHUB_APP_ID is optional; without it the
// app-identity half of the anti-loop filter is disabled and only the host's
// bot-account flag is used. Optional variables with defaults:
// LANGBOT_BOT_MENTION (@langbot), LANGBOT_OPENAI_MODEL (gpt-4o-mini),
// LANGBOT_LISTEN_ADDR (127.0.0.1:8080), LANGBOT_DB_PATH (langbot.db).
func Load() (*Config, error) {
	token := os.Getenv("LANGBOT_GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("LANGBOT_GITHUB_TOKEN is required")
	}

	webhookSecret := os.Getenv("LANGBOT_WEBHOOK_SECRET")
	if webhookSecret == "" {
		return nil, fmt.Errorf("LANGBOT_WEBHOOK_SECRET is required")
	}

	openAIKey := os.Getenv("LANGBOT_OPENAI_API_KEY")
	if openAIKey == "" {
		return nil, fmt.Errorf("LANGBOT_OPENAI_API_KEY is required")
	}

	var appID int64
	if v, ok := os.LookupEnv("LANGBOT_GITHUB_APP_ID"); ok && v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("LANGBOT_GITHUB_APP_ID has invalid value %q: %w", v, err)
		}
		appID = parsed
	}

	mention := "@langbot"
	if v, ok := os.LookupEnv("LANGBOT_BOT_MENTION"); ok && v != "" {
		if !strings.HasPrefix(v, "@") {
			v = "@" + v
		}
		mention = v
	}

	model := "gpt-4o-mini"
	if v, ok := os.LookupEnv("LANGBOT_OPENAI_MODEL"); ok && v != "" {
		model = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("LANGBOT_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "langbot.db"
	if v, ok := os.LookupEnv("LANGBOT_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		GitHubToken:   token,
		GitHubAppID:   appID,
		WebhookSecret: webhookSecret,
		BotMention:    mention,
		OpenAIAPIKey:  openAIKey,
		OpenAIBaseURL: os.Getenv("LANGBOT_OPENAI_BASE_URL"),
		OpenAIModel:   model,
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
	}, nil
}
