package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	data := callback.Data
	operatorID := callback.From.ID

	if !b.users.IsOperator(operatorID) {
		b.answerCallback(callback.ID, "")
		return
	}

	switch {
	case strings.HasPrefix(data, service.CallbackApprove):
		b.handleDecision(ctx, callback, strings.TrimPrefix(data, service.CallbackApprove), true)

	case strings.HasPrefix(data, service.CallbackReject):
		b.handleDecision(ctx, callback, strings.TrimPrefix(data, service.CallbackReject), false)

	case strings.HasPrefix(data, service.CallbackAnswer):
		b.answerCallback(callback.ID, "")
		userID, err := strconv.ParseInt(strings.TrimPrefix(data, service.CallbackAnswer), 10, 64)
		if err != nil {
			return
		}
		b.startAnswering(ctx, operatorID, userID)

	default:
		b.answerCallback(callback.ID, "")
	}
}

// handleDecision применяет одобрение или отказ. Повторное нажатие (в том числе
// другим оператором) ничего не меняет и получает всплывающее пояснение.
func (b *Bot) handleDecision(ctx context.Context, callback *tgbotapi.CallbackQuery, rawID string, approve bool) {
	l := zerolog.Ctx(ctx)
	applicationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		b.answerCallback(callback.ID, "")
		return
	}

	decision, err := b.apps.Decide(ctx, applicationID, callback.From.ID, approve)
	if err != nil {
		l.Warn().Err(err).Int64("application_id", applicationID).Msg("Decision refused")
		b.answerCallback(callback.ID, operatorErrorMessage(err))
		return
	}

	label, mark := "rejected", knowledge.OperatorRejectedMark
	if approve {
		label, mark = "approved", knowledge.OperatorApprovedMark
	}
	if b.metrics != nil {
		b.metrics.Decisions.WithLabelValues(label).Inc()
	}
	b.answerCallback(callback.ID, "")

	if callback.Message != nil {
		text := callback.Message.Text + mark
		if _, err := b.tg.EditMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil); err != nil {
			l.Warn().Err(err).Msg("Failed to mark application card")
		}
	}

	b.deliver(ctx, decision.User.ID, decision.Outcome)
	l.Info().
		Int64("application_id", applicationID).
		Int64("operator", callback.From.ID).
		Str("decision", label).
		Msg("Application decided")
}

// startAnswering запоминает, кому оператор отвечает следующим сообщением.
func (b *Bot) startAnswering(ctx context.Context, operatorID, userID int64) {
	user, err := b.users.GetUser(ctx, userID)
	if err != nil {
		b.sendText(operatorID, operatorErrorMessage(err))
		return
	}
	if err := b.state.SetUserState(ctx, operatorID, models.StepAnswering, map[string]interface{}{
		stateKeyTarget: userID,
	}); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("operator", operatorID).Msg("Failed to save operator step")
		b.sendText(operatorID, operatorFailureText)
		return
	}

	prompt := fmt.Sprintf("✍️ Напиши ответ для %s (текст, фото, видео, документ или голосовое).\n/cancel для отмены", user.DisplayName())
	if q, err := b.db.GetPendingQuestion(ctx, userID); err == nil {
		prompt = fmt.Sprintf("❓ %s\n\n%s", q.Question, prompt)
	}
	b.sendText(operatorID, prompt)
}

func (b *Bot) answerCallback(callbackID, text string) {
	if err := b.tg.AnswerCallback(callbackID, text); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to answer callback")
	}
}
