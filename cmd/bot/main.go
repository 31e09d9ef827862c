package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"recruitbot/internal/api"
	"recruitbot/internal/bot"
	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/events"
	"recruitbot/internal/google"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/llm"
	"recruitbot/internal/logging"
	"recruitbot/internal/metrics"
	"recruitbot/internal/models"
	"recruitbot/internal/ocr"
	"recruitbot/internal/repository"
	"recruitbot/internal/resolver"
	"recruitbot/internal/service"
	"recruitbot/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, stateService := initStateService(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	eventBus := events.NewEventBus()
	if sheets := initGoogleSheets(ctx, cfg, logger); sheets != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker := worker.NewSheetsWorker(db, sheets, redisClient, retryPolicy, logger)
		sheetsWorker.Subscribe(eventBus)
		go sheetsWorker.Start(ctx)
	}

	if cfg.Backup.Enabled {
		go database.NewBackupService(db, cfg.Backup, logger).Start(ctx)
	}
	if cfg.AutoHide.Enabled {
		hider := worker.NewAutoHider(db, cfg.AutoHide.Interval, cfg.AutoHide.RegistrationIdle, cfg.AutoHide.RegisteredIdle, logger)
		go hider.Start(ctx)
	}

	metrics.Register()
	startMetrics(ctx, cfg, logger)

	if cfg.API.Enabled && cfg.API.HTTP.Enabled {
		apiServer := api.NewHTTPServer(cfg.API, db, logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = apiServer.Shutdown(shutdownCtx)
		}()
	}

	llmClient := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)
	if err := llmClient.Init(ctx); err != nil {
		// без LLM бот продолжает работать: генеративный уровень эскалирует
		logger.Warn().Err(err).Msg("LLM client is not available, generative answers will escalate")
	}
	defer llmClient.Shutdown()

	return startBot(ctx, cfg, db, stateService, eventBus, llmClient, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, &logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	for _, dir := range []string{filepath.Dir(cfg.Database.Path), cfg.Exports.Path, cfg.Analysis.MediaDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("Ошибка создания директории")
			return err
		}
	}
	return nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return nil, err
	}

	if err := db.SeedDefaults(ctx, knowledge.DefaultForbiddenTopics(), knowledge.DefaultFAQ()); err != nil {
		logger.Error().Err(err).Msg("Ошибка заполнения базы знаний")
	}
	return db, nil
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.ApplicationsSheet {
	if !cfg.Google.SheetsEnabled() {
		logger.Info().Msg("Google Sheets mirror is disabled")
		return nil
	}

	sheet, err := google.NewApplicationsSheet(ctx, cfg.Google.GoogleCredentialsFile, cfg.Google.ApplicationSpreadSheetID, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}
	if err := sheet.TestConnection(ctx); err != nil {
		logger.Error().Err(err).Msg("Google Sheets connection test failed")
		return nil
	}
	if err := sheet.WarmUpCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("Google Sheets cache warm-up failed")
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheet
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	ttl := time.Duration(models.DefaultRedisTTL) * time.Second
	fallbackRepo := repository.NewMemoryStateRepository(ttl)

	if cfg.Redis.Address == "" {
		return nil, service.NewStateService(fallbackRepo, logger)
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if errPing := repository.Ping(ctx, redisClient); errPing != nil {
		logger.Warn().Err(errPing).Msg("Redis unavailable, falling back to memory while it is down")
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, ttl)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func buildPipeline(cfg *config.Config, db *database.DB, backend domain.GenerationBackend, logger *zerolog.Logger) *resolver.Pipeline {
	generative := resolver.NewGenerativeResolver(backend, db, resolver.GenerativeConfig{
		Timeout: cfg.LLM.Timeout,
		Retry: worker.RetryPolicy{
			MaxRetries:    cfg.LLM.MaxAttempts,
			InitialDelay:  cfg.LLM.Backoff,
			MaxDelay:      config.GenerationMaxBackoff,
			BackoffFactor: 2,
		},
		Threshold: cfg.Bot.ConfidenceThreshold,
	}, logger)

	return resolver.NewPipeline(
		resolver.Gate{Threshold: cfg.Bot.ConfidenceThreshold},
		logger,
		resolver.NewForbiddenResolver(db, logger),
		resolver.NewDirectResolver(),
		resolver.NewContextualResolver(),
		generative,
	)
}

// buildAnalysis returns nil when transcription is not configured; /analyze then says so.
func buildAnalysis(cfg *config.Config, db *database.DB, files worker.FileDownloader, backend domain.GenerationBackend, logger *zerolog.Logger) *worker.AnalysisJob {
	if cfg.LLM.TranscriptionKey == "" {
		return nil
	}
	baseURL := ""
	if cfg.LLM.Provider == llm.ProviderOpenAI {
		baseURL = cfg.LLM.BaseURL
	}
	transcriber, err := llm.NewWhisperTranscriber(cfg.LLM.TranscriptionKey, baseURL, cfg.LLM.TranscriptionModel)
	if err != nil {
		logger.Warn().Err(err).Msg("Transcriber is not available, /analyze disabled")
		return nil
	}
	translator := llm.NewTranslator(backend, worker.RetryPolicy{
		MaxRetries:    cfg.LLM.MaxAttempts,
		InitialDelay:  cfg.LLM.Backoff,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}, cfg.Analysis.TranslateTimeout)

	return worker.NewAnalysisJob(db, files, transcriber, translator, cfg.Analysis.MediaDir, cfg.Analysis.Concurrency, logger)
}

func buildOCR(cfg *config.Config, logger *zerolog.Logger) domain.OCRService {
	if cfg.OCR.Endpoint == "" {
		logger.Info().Msg("OCR endpoint is not configured, ids will be typed manually")
		return ocr.Noop{}
	}
	return ocr.NewClient(cfg.OCR.Endpoint, cfg.OCR.Timeout, logger)
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	db *database.DB,
	stateService *service.StateService,
	eventBus *events.EventBus,
	backend domain.GenerationBackend,
	logger *zerolog.Logger,
) error {
	botWrapper, err := bot.NewBotWrapper(cfg.Telegram.BotToken, cfg.Telegram.Debug)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	tgService := service.NewTelegramService(botWrapper)

	notifier := service.NewOperatorNotifier(tgService, cfg.Operators, logger)
	userService := service.NewUserService(db, cfg, logger)
	handoff := service.NewHandoffService(db, db, db, db, stateService, notifier, eventBus, logger)
	applications := service.NewApplicationService(db, db, db, db, stateService, notifier, eventBus,
		cfg.Bot.PhotosMin, cfg.Bot.PhotosMax, logger)
	registration := service.NewRegistrationService(db, db, buildOCR(cfg, logger), tgService, notifier, eventBus, logger)
	answers := service.NewAnswerService(userService, db, db, buildPipeline(cfg, db, backend, logger), handoff, logger)

	telegramBot, err := bot.NewBot(bot.Deps{
		Telegram:     tgService,
		Config:       cfg,
		DB:           db,
		State:        stateService,
		Users:        userService,
		Answers:      answers,
		Applications: applications,
		Registration: registration,
		Handoff:      handoff,
		Analysis:     buildAnalysis(cfg, db, tgService, backend, logger),
		Metrics:      bot.NewMetrics(nil),
		Logger:       logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)
	telegramBot.Stop()

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
