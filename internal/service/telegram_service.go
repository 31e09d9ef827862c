package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruitbot/internal/domain"
	"recruitbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxDownloadSize совпадает с лимитом Bot API на getFile.
const maxDownloadSize = 20 * 1024 * 1024

var errEmptyMediaGroup = errors.New("media group is empty")

type TelegramService struct {
	bot  domain.TelegramSender
	http *http.Client
}

func NewTelegramService(bot domain.TelegramSender) *TelegramService {
	return &TelegramService{
		bot:  bot,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *TelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.bot.Send(c)
}

func (s *TelegramService) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return s.bot.Request(c)
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return s.bot.Send(msg)
}

func (s *TelegramService) SendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeMarkdown
	return s.bot.Send(msg)
}

func (s *TelegramService) SendWithInlineKeyboard(
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.bot.Send(msg)
}

// SendPhotos sends one photo as a plain message and 2-10 photos as an album.
func (s *TelegramService) SendPhotos(chatID int64, fileIDs []string) error {
	switch len(fileIDs) {
	case 0:
		return errEmptyMediaGroup
	case 1:
		_, err := s.bot.Send(tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileIDs[0])))
		return err
	}

	media := make([]interface{}, 0, len(fileIDs))
	for _, id := range fileIDs {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(id)))
	}
	_, err := s.bot.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media))
	return err
}

func (s *TelegramService) EditMessage(
	chatID int64,
	messageID int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if keyboard != nil {
		msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
		return s.bot.Send(msg)
	}
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	return s.bot.Send(msg)
}

func (s *TelegramService) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := s.bot.Request(callback)
	return err
}

// DownloadFile resolves the direct file URL and reads the body.
func (s *TelegramService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := s.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.bot.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}
