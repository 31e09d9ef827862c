package bot

import (
	"context"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// maxMessageLength оставляет запас под подпись о продолжении (лимит Telegram 4096).
const maxMessageLength = 4000

// deliver sends every reply of an outcome. Noop sends nothing.
func (b *Bot) deliver(ctx context.Context, chatID int64, out *service.Outcome) {
	if out == nil {
		return
	}
	if b.metrics != nil {
		b.metrics.Outcomes.WithLabelValues(out.Kind.String()).Inc()
	}
	if out.Kind == service.OutcomeNoop {
		return
	}

	for _, reply := range out.Replies {
		parts := splitMessage(reply, maxMessageLength)
		for i, part := range parts {
			if i < len(parts)-1 {
				part += knowledge.Continued.In(out.Language)
			}
			if _, err := b.tg.SendMessage(chatID, part); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver reply")
				return
			}
		}
	}
}

// reply sends text to the user and keeps it in the dialog history.
func (b *Bot) reply(ctx context.Context, userID int64, text string) {
	b.sendText(userID, text)
	b.remember(ctx, userID, models.RoleBot, text)
}

func (b *Bot) remember(ctx context.Context, userID int64, role models.Role, text string) {
	msg, err := models.NewMessage(userID, role, text)
	if err != nil {
		return
	}
	if err := b.db.AppendMessage(ctx, msg); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("Failed to store message")
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.tg.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeMarkdown
	if _, err := b.tg.Send(msg); err != nil {
		// битая разметка: повторяем простым текстом
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Markdown send failed, retrying as plain text")
		b.sendText(chatID, text)
	}
}

// splitMessage режет текст на части не длиннее limit рун, по возможности по переводу строки.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
