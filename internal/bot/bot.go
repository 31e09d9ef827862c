package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/logging"
	"recruitbot/internal/models"
	"recruitbot/internal/repository"
	"recruitbot/internal/service"
	"recruitbot/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultHandlerTimeout = 30 * time.Second

// Deps collects everything the bot talks to.
type Deps struct {
	Telegram     domain.TelegramService
	Config       *config.Config
	DB           *database.DB
	State        domain.StateManager
	Users        *service.UserService
	Answers      *service.AnswerService
	Applications *service.ApplicationService
	Registration *service.RegistrationService
	Handoff      *service.HandoffService
	Analysis     *worker.AnalysisJob
	Metrics      *Metrics
	Logger       *zerolog.Logger
}

type Bot struct {
	tg           domain.TelegramService
	config       *config.Config
	db           *database.DB
	state        domain.StateManager
	users        *service.UserService
	answers      *service.AnswerService
	apps         *service.ApplicationService
	registration *service.RegistrationService
	handoff      *service.HandoffService
	analysis     *worker.AnalysisJob
	batcher      *repository.PhotoBatcher
	locks        *userLocks
	metrics      *Metrics
	logger       *zerolog.Logger

	bgCtx context.Context
	wg    sync.WaitGroup
}

func NewBot(deps Deps) (*Bot, error) {
	switch {
	case deps.Telegram == nil:
		return nil, errors.New("telegram service is required")
	case deps.Config == nil:
		return nil, errors.New("config is required")
	case deps.DB == nil:
		return nil, errors.New("database is required")
	case deps.State == nil:
		return nil, errors.New("state manager is required")
	case deps.Users == nil || deps.Answers == nil || deps.Applications == nil ||
		deps.Registration == nil || deps.Handoff == nil:
		return nil, errors.New("services are required")
	}

	b := &Bot{
		tg:           deps.Telegram,
		config:       deps.Config,
		db:           deps.DB,
		state:        deps.State,
		users:        deps.Users,
		answers:      deps.Answers,
		apps:         deps.Applications,
		registration: deps.Registration,
		handoff:      deps.Handoff,
		analysis:     deps.Analysis,
		locks:        newUserLocks(),
		metrics:      deps.Metrics,
		logger:       logging.OrNop(deps.Logger),
		bgCtx:        context.Background(),
	}

	debounce := deps.Config.Bot.AlbumDebounce
	if debounce <= 0 {
		debounce = models.AlbumDebounce
	}
	b.batcher = repository.NewPhotoBatcher(debounce, b.flushAlbum)

	return b, nil
}

// Start читает апдейты до отмены ctx. Каждый апдейт обрабатывается в своей
// горутине, апдейты одного пользователя выполняются строго по очереди.
func (b *Bot) Start(ctx context.Context) {
	b.bgCtx = ctx

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	key := updateKey(update)
	if key == 0 {
		return
	}
	t := b.locks.reserve(key)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer t.release()
		t.wait()
		b.processUpdate(ctx, update)
	}()
}

// Stop stops receiving updates, flushes buffered albums and waits for handlers.
func (b *Bot) Stop() {
	b.tg.StopReceivingUpdates()
	b.batcher.Close()
	b.wg.Wait()
}

// updateKey is the serialization key: the sender for private updates, the chat for group ones.
func updateKey(update tgbotapi.Update) int64 {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.Chat != nil && !update.Message.Chat.IsPrivate():
		return update.Message.Chat.ID
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	default:
		return 0
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	updateCtx, cancel := context.WithTimeout(ctx, b.handlerTimeout())
	defer cancel()

	l := b.logger.With().Str("request_id", uuid.New().String()).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		switch {
		case update.CallbackQuery != nil:
			b.countUpdate("callback")
			if b.users.IsBlacklisted(update.CallbackQuery.From.ID) {
				return
			}
			b.handleCallbackQuery(updateCtx, update.CallbackQuery)

		case update.Message == nil || update.Message.From == nil || update.Message.Chat == nil:
			return

		case b.isTrainingGroup(update.Message.Chat):
			b.countUpdate("group")
			b.handleGroupMessage(updateCtx, update.Message)

		case update.Message.Chat.IsPrivate():
			b.countUpdate("message")
			b.handlePrivateMessage(updateCtx, update.Message)
		}
	})
}

func (b *Bot) handlePrivateMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	if b.users.IsBlacklisted(userID) {
		return
	}

	if b.users.IsOperator(userID) {
		b.handleOperatorMessage(ctx, msg)
		return
	}

	if !b.allow(ctx, userID) {
		if b.metrics != nil {
			b.metrics.RateLimited.Inc()
		}
		b.sendText(msg.Chat.ID, rateLimitedText)
		return
	}

	b.handleMessage(ctx, msg)
}

func (b *Bot) allow(ctx context.Context, userID int64) bool {
	limit := b.config.Bot.RateLimitMessages
	if limit <= 0 {
		limit = models.RateLimitMessages
	}
	window := b.config.Bot.RateLimitWindow
	if window <= 0 {
		window = models.RateLimitWindow
	}

	allowed, err := b.state.CheckRateLimit(ctx, userID, limit, time.Duration(window)*time.Second)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Rate limit check failed")
		return true
	}
	if !allowed {
		zerolog.Ctx(ctx).Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
	}
	return allowed
}

func (b *Bot) handlerTimeout() time.Duration {
	if b.config.Bot.HandlerTimeout > 0 {
		return b.config.Bot.HandlerTimeout
	}
	return defaultHandlerTimeout
}

func (b *Bot) isTrainingGroup(chat *tgbotapi.Chat) bool {
	return chat != nil && b.config.Group.ChatID != 0 && chat.ID == b.config.Group.ChatID
}

func (b *Bot) countUpdate(kind string) {
	if b.metrics != nil {
		b.metrics.UpdatesProcessed.WithLabelValues(kind).Inc()
	}
}
