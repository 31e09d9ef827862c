package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"recruitbot/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Operators  []int64          `yaml:"operators"`
	Blacklist  []int64          `yaml:"blacklist"`
	Group      GroupConfig      `yaml:"group"`
	Exports    ExportConfig     `yaml:"exports"`
	Google     GoogleConfig     `yaml:"google"`
	Bot        BotConfig        `yaml:"bot"`
	LLM        LLMConfig        `yaml:"llm"`
	AutoHide   AutoHideConfig   `yaml:"autohide"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	OCR        OCRConfig        `yaml:"ocr"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
}

type BotConfig struct {
	RateLimitMessages   int           `yaml:"rate_limit_messages"`
	RateLimitWindow     int           `yaml:"rate_limit_window"`
	PhotosMin           int           `yaml:"photos_min"`
	PhotosMax           int           `yaml:"photos_max"`
	ConfidenceThreshold int           `yaml:"confidence_threshold"`
	AlbumDebounce       time.Duration `yaml:"album_debounce"`
	HandlerTimeout      time.Duration `yaml:"handler_timeout"`
}

// GroupConfig описывает рабочую группу, куда попадают зарегистрированные модели.
type GroupConfig struct {
	ChatID     int64  `yaml:"chat_id"`
	InviteLink string `yaml:"invite_link"`
}

type LLMConfig struct {
	Provider           string        `yaml:"provider"`
	APIKey             string        `yaml:"api_key"`
	BaseURL            string        `yaml:"base_url"`
	Model              string        `yaml:"model"`
	Temperature        float32       `yaml:"temperature"`
	MaxTokens          int           `yaml:"max_tokens"`
	Timeout            time.Duration `yaml:"timeout"`
	MaxAttempts        int           `yaml:"max_attempts"`
	Backoff            time.Duration `yaml:"backoff"`
	TranscriptionKey   string        `yaml:"transcription_api_key"`
	TranscriptionModel string        `yaml:"transcription_model"`
}

// GenerationMaxBackoff caps the pause between generation attempts.
const GenerationMaxBackoff = 30 * time.Second

// GenerationBudget is the worst-case time the answer pipeline spends on one
// generation: every attempt times out and every pause is taken.
func (c LLMConfig) GenerationBudget() time.Duration {
	if c.MaxAttempts < 1 {
		return c.Timeout
	}
	budget := time.Duration(c.MaxAttempts) * c.Timeout
	pause := c.Backoff
	for i := 1; i < c.MaxAttempts; i++ {
		budget += min(pause, GenerationMaxBackoff)
		pause *= 2
	}
	return budget
}

type AutoHideConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Interval         time.Duration `yaml:"interval"`
	RegistrationIdle time.Duration `yaml:"registration_idle"`
	RegisteredIdle   time.Duration `yaml:"registered_idle"`
}

type AnalysisConfig struct {
	TranslateTimeout time.Duration `yaml:"translate_timeout"`
	Concurrency      int           `yaml:"concurrency"`
	MediaDir         string        `yaml:"media_dir"`
}

type OCRConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type KnowledgeConfig struct {
	ReviewsDir string `yaml:"reviews_dir"`
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	HTTP      APIHTTPConfig      `yaml:"http"`
	GRPC      APIGRPCConfig      `yaml:"grpc"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type APIGRPCConfig struct {
	Port       int          `yaml:"port"`
	Reflection bool         `yaml:"reflection"`
	TLS        APITLSConfig `yaml:"tls"`
}

type APITLSConfig struct {
	Enabled           bool   `yaml:"enabled"`
	CertFile          string `yaml:"cert_file"`
	KeyFile           string `yaml:"key_file"`
	ClientCAFile      string `yaml:"client_ca_file"`
	RequireClientCert bool   `yaml:"require_client_cert"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type GoogleConfig struct {
	GoogleCredentialsFile    string `yaml:"credentials_file"`
	ApplicationSpreadSheetID string `yaml:"applications_spreadsheet_id"`
}

// SheetsEnabled сообщает, настроено ли зеркало заявок в Google Sheets.
func (g GoogleConfig) SheetsEnabled() bool {
	return g.GoogleCredentialsFile != "" && g.ApplicationSpreadSheetID != ""
}

func Load(configPath string) (*Config, error) {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if len(c.Operators) == 0 {
		return errors.New("at least one operator id is required")
	}

	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	if c.Bot.PhotosMin <= 0 || c.Bot.PhotosMin > c.Bot.PhotosMax {
		return fmt.Errorf("invalid photo bounds: min=%d max=%d", c.Bot.PhotosMin, c.Bot.PhotosMax)
	}

	if c.Bot.ConfidenceThreshold < 0 || c.Bot.ConfidenceThreshold > 100 {
		return fmt.Errorf("%w: threshold %d", models.ErrInvalidConfidence, c.Bot.ConfidenceThreshold)
	}

	// эскалация после неудачной генерации должна успеть в таймаут обработчика
	if budget := c.LLM.GenerationBudget(); c.Bot.HandlerTimeout <= budget {
		return fmt.Errorf("bot.handler_timeout %s must exceed llm retry budget %s", c.Bot.HandlerTimeout, budget)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.API.GRPC.Port == 0 {
		c.API.GRPC.Port = 8081
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	// auth enabled by default when API is enabled
	if !c.API.Auth.Enabled {
		c.API.Auth.Enabled = true
	}
	if !c.API.HTTP.Enabled && c.API.Enabled {
		c.API.HTTP.Enabled = true
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}

	// Bot defaults
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = models.RateLimitMessages
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = models.RateLimitWindow
	}
	if c.Bot.PhotosMin == 0 {
		c.Bot.PhotosMin = models.PhotosMin
	}
	if c.Bot.PhotosMax == 0 {
		c.Bot.PhotosMax = models.PhotosMax
	}
	if c.Bot.ConfidenceThreshold == 0 {
		c.Bot.ConfidenceThreshold = models.ConfidenceThreshold
	}
	if c.Bot.AlbumDebounce == 0 {
		c.Bot.AlbumDebounce = models.AlbumDebounce
	}
	if c.Bot.HandlerTimeout == 0 {
		c.Bot.HandlerTimeout = 3 * time.Minute
	}

	// LLM defaults
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 45 * time.Second
	}
	if c.LLM.MaxAttempts == 0 {
		c.LLM.MaxAttempts = 3
	}
	if c.LLM.Backoff == 0 {
		c.LLM.Backoff = 2 * time.Second
	}
	if c.LLM.TranscriptionModel == "" {
		c.LLM.TranscriptionModel = "whisper-1"
	}
	if c.LLM.TranscriptionKey == "" && c.LLM.Provider == "openai" {
		c.LLM.TranscriptionKey = c.LLM.APIKey
	}

	if c.AutoHide.Interval == 0 {
		c.AutoHide.Interval = 5 * time.Minute
	}
	if c.AutoHide.RegistrationIdle == 0 {
		c.AutoHide.RegistrationIdle = 60 * time.Minute
	}
	if c.AutoHide.RegisteredIdle == 0 {
		c.AutoHide.RegisteredIdle = 8 * time.Hour
	}

	if c.Analysis.TranslateTimeout == 0 {
		c.Analysis.TranslateTimeout = 120 * time.Second
	}
	if c.Analysis.Concurrency == 0 {
		c.Analysis.Concurrency = 4
	}
	if c.Analysis.MediaDir == "" {
		c.Analysis.MediaDir = os.TempDir()
	}

	if c.OCR.Timeout == 0 {
		c.OCR.Timeout = 30 * time.Second
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "./exports"
	}
}
