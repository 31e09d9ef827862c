package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"recruitbot/internal/domain"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Префиксы callback data операторских кнопок.
const (
	CallbackApprove = "approve_"
	CallbackReject  = "reject_"
	CallbackAnswer  = "answer_"
)

// OperatorNotifier fans operator cards out to every configured operator.
// A card counts as delivered when at least one operator received it.
type OperatorNotifier struct {
	tg        domain.TelegramService
	operators []int64
	logger    *zerolog.Logger
}

func NewOperatorNotifier(tg domain.TelegramService, operators []int64, logger *zerolog.Logger) *OperatorNotifier {
	return &OperatorNotifier{tg: tg, operators: operators, logger: nopIfNil(logger)}
}

func AnswerKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💬 Ответить", CallbackAnswer+strconv.FormatInt(userID, 10)),
	))
}

func DecisionKeyboard(applicationID int64) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatInt(applicationID, 10)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", CallbackApprove+id),
		tgbotapi.NewInlineKeyboardButtonData("❌ Отказать", CallbackReject+id),
	))
}

func (n *OperatorNotifier) NotifyEscalation(ctx context.Context, user *models.User, question string) error {
	text := fmt.Sprintf(knowledge.OperatorQuestionCard, user.DisplayName(), question)
	return n.broadcast(func(chatID int64) error {
		_, err := n.tg.SendWithInlineKeyboard(chatID, text, AnswerKeyboard(user.ID))
		return err
	})
}

func (n *OperatorNotifier) NotifyFollowUp(ctx context.Context, user *models.User, question string) error {
	text := fmt.Sprintf(knowledge.OperatorFollowUpCard, user.DisplayName(), question)
	return n.broadcast(func(chatID int64) error {
		_, err := n.tg.SendWithInlineKeyboard(chatID, text, AnswerKeyboard(user.ID))
		return err
	})
}

// NotifyApplication sends the screening photos as an album, then the card with decision buttons.
func (n *OperatorNotifier) NotifyApplication(ctx context.Context, user *models.User, app *models.Application, photoIDs []string) error {
	card := fmt.Sprintf(knowledge.OperatorApplicationFmt, user.DisplayName(), profileLink(user), app.WorkHours, app.Experience)
	return n.broadcast(func(chatID int64) error {
		if len(photoIDs) > 0 {
			if err := n.tg.SendPhotos(chatID, photoIDs); err != nil {
				n.logger.Warn().Err(err).Int64("operator", chatID).Msg("failed to send application photos")
			}
		}
		_, err := n.tg.SendWithInlineKeyboard(chatID, card, DecisionKeyboard(app.ID))
		return err
	})
}

// NotifyScreenshot forwards the verification screenshot; fileID may be empty for a typed id.
func (n *OperatorNotifier) NotifyScreenshot(ctx context.Context, user *models.User, fileID, platformID string) error {
	caption := fmt.Sprintf(knowledge.OperatorScreenshotFmt, platformID, user.DisplayName())
	return n.broadcast(func(chatID int64) error {
		if fileID == "" {
			_, err := n.tg.SendMessage(chatID, caption)
			return err
		}
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		photo.Caption = caption
		_, err := n.tg.Send(photo)
		return err
	})
}

func (n *OperatorNotifier) broadcast(send func(chatID int64) error) error {
	if len(n.operators) == 0 {
		return errors.New("no operators configured")
	}

	var errs []error
	for _, op := range n.operators {
		if err := send(op); err != nil {
			n.logger.Error().Err(err).Int64("operator", op).Msg("failed to notify operator")
			errs = append(errs, err)
		}
	}
	if len(errs) == len(n.operators) {
		return errors.Join(errs...)
	}
	return nil
}

func profileLink(user *models.User) string {
	if user.Username != "" {
		return "https://t.me/" + user.Username
	}
	return "tg://user?id=" + strconv.FormatInt(user.ID, 10)
}
