package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("RECRUITBOT_TEST_LLM_KEY", "sk-test")

	yamlContent := `
telegram:
  bot_token: "test_token"
database:
  path: "test.db"
operators: [100, 200]
llm:
  provider: openai
  api_key: "${RECRUITBOT_TEST_LLM_KEY}"
group:
  chat_id: -100123
  invite_link: "https://t.me/+abc"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	// .env отсутствует: загрузка не должна падать
	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.Telegram.BotToken)
	assert.Equal(t, []int64{100, 200}, cfg.Operators)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "sk-test", cfg.LLM.TranscriptionKey)
	assert.Equal(t, int64(-100123), cfg.Group.ChatID)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		c := Config{
			Telegram:  TelegramConfig{BotToken: "token"},
			Database:  DatabaseConfig{Path: "path"},
			Operators: []int64{1},
		}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Telegram.BotToken = "" }, wantErr: true},
		{name: "placeholder token", mutate: func(c *Config) { c.Telegram.BotToken = "YOUR_BOT_TOKEN_HERE" }, wantErr: true},
		{name: "no operators", mutate: func(c *Config) { c.Operators = nil }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "llama" }, wantErr: true},
		{name: "min above max", mutate: func(c *Config) { c.Bot.PhotosMin = 4 }, wantErr: true},
		{name: "threshold out of range", mutate: func(c *Config) { c.Bot.ConfidenceThreshold = 120 }, wantErr: true},
		{name: "gemini", mutate: func(c *Config) { c.LLM.Provider = "gemini" }},
		{name: "handler timeout below llm budget", mutate: func(c *Config) { c.Bot.HandlerTimeout = time.Minute }, wantErr: true},
		{name: "handler timeout equals llm budget", mutate: func(c *Config) { c.Bot.HandlerTimeout = c.LLM.GenerationBudget() }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 8081, cfg.API.GRPC.Port)
	assert.Equal(t, models.RateLimitMessages, cfg.Bot.RateLimitMessages)
	assert.Equal(t, models.PhotosMin, cfg.Bot.PhotosMin)
	assert.Equal(t, models.PhotosMax, cfg.Bot.PhotosMax)
	assert.Equal(t, models.ConfidenceThreshold, cfg.Bot.ConfidenceThreshold)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.AutoHide.Interval)
	assert.Equal(t, 8*time.Hour, cfg.AutoHide.RegisteredIdle)
	assert.Equal(t, 120*time.Second, cfg.Analysis.TranslateTimeout)
}

func TestGenerationBudget(t *testing.T) {
	cfg := LLMConfig{Timeout: 45 * time.Second, MaxAttempts: 3, Backoff: 2 * time.Second}
	assert.Equal(t, 141*time.Second, cfg.GenerationBudget())

	// пауза не растет выше GenerationMaxBackoff
	cfg = LLMConfig{Timeout: time.Second, MaxAttempts: 3, Backoff: 20 * time.Second}
	assert.Equal(t, 3*time.Second+20*time.Second+GenerationMaxBackoff, cfg.GenerationBudget())

	assert.Equal(t, 5*time.Second, LLMConfig{Timeout: 5 * time.Second}.GenerationBudget())
}

func TestGoogleConfig_SheetsEnabled(t *testing.T) {
	assert.False(t, GoogleConfig{}.SheetsEnabled())
	assert.False(t, GoogleConfig{GoogleCredentialsFile: "creds.json"}.SheetsEnabled())
	assert.True(t, GoogleConfig{GoogleCredentialsFile: "creds.json", ApplicationSpreadSheetID: "sheet"}.SheetsEnabled())
}
