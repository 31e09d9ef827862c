package bot

import (
	"testing"

	"recruitbot/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBotValidation(t *testing.T) {
	_, err := NewBot(Deps{})
	assert.Error(t, err)

	_, err = NewBot(Deps{Telegram: &fakeTelegram{}})
	assert.EqualError(t, err, "config is required")

	_, err = NewBot(Deps{Telegram: &fakeTelegram{}, Config: &config.Config{}})
	assert.EqualError(t, err, "database is required")
}

func TestUpdateKey(t *testing.T) {
	private := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
	}}
	group := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: -100, Type: "supergroup"},
	}}
	callback := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 900}}}

	assert.Equal(t, int64(7), updateKey(private))
	assert.Equal(t, int64(-100), updateKey(group))
	assert.Equal(t, int64(900), updateKey(callback))
	assert.Zero(t, updateKey(tgbotapi.Update{}))
}

func TestStopWaitsForHandlers(t *testing.T) {
	tb := newTestBot(t)

	tb.dispatch(t.Context(), tgbotapi.Update{Message: privateText(100, "/start")})
	tb.dispatch(t.Context(), tgbotapi.Update{Message: privateText(100, "привет")})
	tb.Stop()

	texts := tb.tg.to(100)
	require.Len(t, texts, 2)
	assert.Equal(t, "Работа полностью онлайн 💻", texts[1])
}
