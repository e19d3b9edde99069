package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every LANGBOT_ env var that Load() reads.
var allConfigKeys = []string{
	"LANGBOT_GITHUB_TOKEN",
	"LANGBOT_GITHUB_APP_ID",
	"LANGBOT_WEBHOOK_SECRET",
	"LANGBOT_BOT_MENTION",
	"LANGBOT_OPENAI_API_KEY",
	"LANGBOT_OPENAI_BASE_URL",
	"LANGBOT_OPENAI_MODEL",
	"LANGBOT_LISTEN_ADDR",
	"LANGBOT_DB_PATH",
}

// isolateConfigEnv saves and unsets all LANGBOT_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

// setRequired sets the minimum environment for Load() to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("LANGBOT_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("LANGBOT_WEBHOOK_SECRET", "hush")
	t.Setenv("LANGBOT_OPENAI_API_KEY", "sk-test")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("LANGBOT_GITHUB_APP_ID", "12345")
	t.Setenv("LANGBOT_BOT_MENTION", "@helperbot")
	t.Setenv("LANGBOT_OPENAI_MODEL", "gpt-4o")
	t.Setenv("LANGBOT_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("LANGBOT_DB_PATH", "/tmp/test.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.Equal(t, int64(12345), cfg.GitHubAppID)
	assert.Equal(t, "hush", cfg.WebhookSecret)
	assert.Equal(t, "@helperbot", cfg.BotMention)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.GitHubAppID)
	assert.Equal(t, "@langbot", cfg.BotMention)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "", cfg.OpenAIBaseURL)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "langbot.db", cfg.DBPath)
}

func TestLoad_MissingToken(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("LANGBOT_WEBHOOK_SECRET", "hush")
	t.Setenv("LANGBOT_OPENAI_API_KEY", "sk-test")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LANGBOT_GITHUB_TOKEN")
}

func TestLoad_MissingWebhookSecret(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("LANGBOT_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("LANGBOT_OPENAI_API_KEY", "sk-test")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LANGBOT_WEBHOOK_SECRET")
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("LANGBOT_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("LANGBOT_WEBHOOK_SECRET", "hush")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LANGBOT_OPENAI_API_KEY")
}

func TestLoad_InvalidAppID(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("LANGBOT_GITHUB_APP_ID", "not-a-number")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LANGBOT_GITHUB_APP_ID")
}

func TestLoad_MentionGetsAtPrefix(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("LANGBOT_BOT_MENTION", "helperbot")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "@helperbot", cfg.BotMention)
}
