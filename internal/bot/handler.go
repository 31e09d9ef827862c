package bot

import (
	"context"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"
	"recruitbot/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// handleMessage обрабатывает личное сообщение кандидата. На каждое сообщение
// приходится ровно один исход: ответ, эскалация или тишина.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	l := zerolog.Ctx(ctx)
	from := msg.From

	user, created, err := b.users.EnsureUser(ctx, from.ID, from.UserName, from.FirstName)
	if err != nil {
		b.fail(ctx, msg.Chat.ID, models.DefaultLanguage, err, "Failed to load user")
		return
	}
	if !created {
		if err := b.users.Touch(ctx, user.ID); err != nil {
			l.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to update user activity")
		}
	}

	l.Debug().
		Int64("user_id", user.ID).
		Str("status", string(user.Status)).
		Bool("photo", len(msg.Photo) > 0).
		Msg("Handling message")

	if user.Status.IsTerminal() {
		return
	}

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.handleStart(ctx, user, created)

	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, user, msg)

	case msg.Video != nil || msg.VideoNote != nil || isVideoDocument(msg.Document):
		b.handleVideo(ctx, user, msg)

	case msg.Text != "":
		b.handleText(ctx, user, msg.Chat.ID, msg.Text)
	}
}

// handleStart: участница группы сразу считается зарегистрированной,
// новый пользователь получает приветствие.
func (b *Bot) handleStart(ctx context.Context, user *models.User, created bool) {
	lang := user.ReplyLanguage("")

	if user.InGroup && user.Status != models.StatusRegistered && onboarding.Can(user.Status, onboarding.EventGroupJoined) {
		if err := b.users.Advance(ctx, user, onboarding.EventGroupJoined); err != nil {
			b.fail(ctx, user.ID, lang, err, "Failed to register group member")
			return
		}
		b.reply(ctx, user.ID, knowledge.WelcomeGroupMember.In(lang))
		return
	}

	if err := b.users.Advance(ctx, user, onboarding.EventStarted); err != nil {
		b.fail(ctx, user.ID, lang, err, "Failed to apply start")
		return
	}

	switch {
	case user.InGroup:
		b.reply(ctx, user.ID, knowledge.WelcomeGroupMember.In(lang))
	case created || user.Status == models.StatusChatting:
		b.reply(ctx, user.ID, b.apps.WelcomeText(ctx, lang))
	default:
		b.reply(ctx, user.ID, knowledge.WelcomeBack.In(lang))
	}
}

// handlePhoto routes a photo to screenshot verification or to the application.
// Album frames are buffered and handled together in flushAlbum.
func (b *Bot) handlePhoto(ctx context.Context, user *models.User, msg *tgbotapi.Message) {
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	lang := user.ReplyLanguage("")

	switch {
	case b.registration.AcceptsScreenshot(user):
		v, err := b.registration.HandleScreenshot(ctx, user, fileID, msg.Caption)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", user.ID).Msg("Screenshot handling failed")
			b.reply(ctx, user.ID, knowledge.ScreenshotFailed.In(lang))
			return
		}
		b.deliver(ctx, msg.Chat.ID, v.Outcome)

	case b.apps.AcceptsPhotos(user):
		if msg.MediaGroupID != "" && b.batcher.Add(msg.MediaGroupID, user.ID, msg.Chat.ID, fileID) {
			return
		}
		out, err := b.apps.AddPhotos(ctx, user, []string{fileID})
		if err != nil {
			b.fail(ctx, msg.Chat.ID, lang, err, "Failed to store photo")
			return
		}
		b.deliver(ctx, msg.Chat.ID, out)

	case strings.TrimSpace(msg.Caption) != "":
		b.handleText(ctx, user, msg.Chat.ID, msg.Caption)
	}
}

func (b *Bot) handleVideo(ctx context.Context, user *models.User, msg *tgbotapi.Message) {
	if b.apps.AcceptsPhotos(user) {
		b.remember(ctx, user.ID, models.RoleUser, "[видео]")
		b.reply(ctx, user.ID, knowledge.PhotosOnly.In(user.ReplyLanguage("")))
		return
	}
	if strings.TrimSpace(msg.Caption) != "" {
		b.handleText(ctx, user, msg.Chat.ID, msg.Caption)
	}
}

// handleText: анкета, ручной ввод ID, отзывы, затем каскад ответов.
func (b *Bot) handleText(ctx context.Context, user *models.User, chatID int64, text string) {
	lang := user.ReplyLanguage("")

	if b.apps.InScreening(user) {
		out, err := b.apps.AnswerScreening(ctx, user, text)
		if err != nil {
			b.fail(ctx, chatID, lang, err, "Screening answer failed")
			return
		}
		b.deliver(ctx, chatID, out)
		return
	}

	v, handled, err := b.registration.HandleTypedID(ctx, user, text)
	if err != nil {
		b.fail(ctx, chatID, lang, err, "Typed id handling failed")
		return
	}
	if handled {
		b.deliver(ctx, chatID, v.Outcome)
		return
	}

	if reviewsAllowed(user.Status) && knowledge.IsReviewRequest(text) {
		b.remember(ctx, user.ID, models.RoleUser, text)
		b.sendReviews(ctx, user)
		return
	}

	out, err := b.answers.Handle(ctx, user, text)
	if err != nil {
		b.fail(ctx, chatID, lang, err, "Answer pipeline failed")
		return
	}
	b.deliver(ctx, chatID, out)
}

// reviewsAllowed: отзывы показываем вне анкеты и проверки заявки.
func reviewsAllowed(status models.Status) bool {
	switch status {
	case models.StatusChatting, models.StatusHelpingRegistration, models.StatusWaitingAdmin, models.StatusRegistered:
		return true
	}
	return false
}

// flushAlbum is the PhotoBatcher callback; it runs outside the update loop,
// so it takes the user's place in the queue itself.
func (b *Bot) flushAlbum(batch repository.PhotoBatch) {
	unlock := b.locks.lock(batch.UserID)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.handlerTimeout())
	defer cancel()
	ctx = b.logger.With().Str("media_group", batch.GroupID).Logger().WithContext(ctx)

	b.withRecovery(func() {
		user, err := b.users.GetUser(ctx, batch.UserID)
		if err != nil {
			b.fail(ctx, batch.ChatID, models.DefaultLanguage, err, "Failed to load user for album")
			return
		}
		out, err := b.apps.AddPhotos(ctx, user, batch.FileIDs)
		if err != nil {
			b.fail(ctx, batch.ChatID, user.ReplyLanguage(""), err, "Failed to store album")
			return
		}
		b.deliver(ctx, batch.ChatID, out)
	})
}

func isVideoDocument(doc *tgbotapi.Document) bool {
	return doc != nil && strings.HasPrefix(doc.MimeType, "video/")
}
