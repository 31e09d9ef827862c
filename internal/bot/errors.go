package bot

import (
	"context"
	"errors"

	"recruitbot/internal/database"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"
	"recruitbot/internal/service"

	"github.com/rs/zerolog"
)

const (
	rateLimitedText     = "⚠️ Ты отправляешь сообщения слишком часто. Подожди немного 🙏"
	alreadyDecidedText  = "Решение по этой анкете уже принято"
	notPendingText      = "Пользователь сейчас не ждёт решения"
	userNotFoundText    = "❌ Пользователь не найден"
	operatorFailureText = "❌ Произошла ошибка, подробности в логах"
)

// getErrorMessage maps a handler error onto the text the user sees. nil and
// expected refusals produce "".
func (b *Bot) getErrorMessage(err error, lang models.Language) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, onboarding.ErrTerminal):
		return ""
	default:
		return knowledge.StorageFailure.In(lang)
	}
}

// operatorErrorMessage is the operator-facing variant.
func operatorErrorMessage(err error) string {
	switch {
	case errors.Is(err, database.ErrAlreadyDecided):
		return alreadyDecidedText
	case errors.Is(err, service.ErrNotPending):
		return notPendingText
	case errors.Is(err, database.ErrNotFound):
		return userNotFoundText
	default:
		return operatorFailureText
	}
}

// fail logs err and sends the localized apology. Status is left untouched.
func (b *Bot) fail(ctx context.Context, chatID int64, lang models.Language, err error, msg string) {
	if b.metrics != nil {
		b.metrics.ErrorsTotal.Inc()
	}
	zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg(msg)
	if text := b.getErrorMessage(err, lang); text != "" {
		b.sendText(chatID, text)
	}
}
