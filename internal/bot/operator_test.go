package bot

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"recruitbot/internal/models"
	"recruitbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastTo(tb *testBot, chatID int64) string {
	texts := tb.tg.to(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func TestOperatorAnswersEscalation(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()
	const uid = int64(70)

	tb.resolver.answer = ""
	tb.send(privateText(uid, "можно работать с телефона?"))
	require.Equal(t, models.StatusWaitingAdmin, tb.status(t, uid))

	tb.tg.reset()
	tb.press(testOperator, service.CallbackAnswer+strconv.FormatInt(uid, 10), nil)
	prompt := lastTo(tb, testOperator)
	assert.Contains(t, prompt, "можно работать с телефона?")
	assert.Contains(t, prompt, "/cancel")

	tb.send(privateText(testOperator, "Да, с телефона можно"))

	assert.Equal(t, []string{"Да, с телефона можно"}, tb.tg.to(uid))
	assert.Equal(t, models.StatusChatting, tb.status(t, uid))
	assert.Contains(t, lastTo(tb, testOperator), "Вопрос закрыт")

	pending, err := tb.db.ListPendingQuestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	learned, err := tb.db.RecentLearnedAnswers(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, learned)
	assert.Equal(t, models.SourceAdmin, learned[0].Source)

	// шаг сброшен: следующий текст оператора уже не уходит пользователю
	tb.tg.reset()
	tb.send(privateText(testOperator, "ещё текст"))
	assert.Empty(t, tb.tg.to(uid))
}

func TestOperatorReplyCommand(t *testing.T) {
	tb := newTestBot(t)
	tb.seedUser(t, 71, models.StatusHelpingRegistration)

	tb.send(privateText(testOperator, "/reply 71 Скачай приложение по ссылке"))
	assert.Equal(t, []string{"Скачай приложение по ссылке"}, tb.tg.to(71))
	assert.Equal(t, models.StatusHelpingRegistration, tb.status(t, 71))
	assert.Contains(t, lastTo(tb, testOperator), "Ответ отправлен")

	tb.tg.reset()
	tb.send(privateText(testOperator, "/reply abc"))
	assert.Equal(t, []string{"Формат: /reply <id> <текст>"}, tb.tg.to(testOperator))

	tb.tg.reset()
	tb.send(privateText(testOperator, "/reply 999 привет"))
	assert.Equal(t, []string{userNotFoundText}, tb.tg.to(testOperator))
}

func TestOperatorMediaReply(t *testing.T) {
	tb := newTestBot(t)
	tb.seedUser(t, 72, models.StatusChatting)

	tb.press(testOperator, service.CallbackAnswer+"72", nil)

	msg := privateText(testOperator, "")
	msg.MessageID = 555
	msg.Photo = []tgbotapi.PhotoSize{{FileID: "instruction"}}
	msg.Caption = "вот инструкция"
	tb.send(msg)

	assert.Equal(t, []string{"copy"}, tb.tg.kindsTo(72))
	assert.Equal(t, []string{strconv.FormatInt(testOperator, 10) + "/555"}, tb.tg.to(72))

	history, err := tb.db.RecentMessages(context.Background(), 72, 5)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "[фото] вот инструкция", history[len(history)-1].Content)
}

func TestOperatorReplyToRejectedUser(t *testing.T) {
	tb := newTestBot(t)
	tb.seedUser(t, 73, models.StatusRejected)

	tb.send(privateText(testOperator, "/reply 73 привет"))
	assert.Empty(t, tb.tg.to(73))
}

func TestOperatorCommands(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()
	tb.seedUser(t, 80, models.StatusChatting)

	t.Run("Help", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/admin"))
		assert.Equal(t, []string{operatorHelp}, tb.tg.to(testOperator))
	})

	t.Run("Stats", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/stats"))
		require.Len(t, tb.tg.to(testOperator), 1)
		assert.Contains(t, tb.tg.to(testOperator)[0], "Пользователей: *1*")
	})

	t.Run("PendingEmpty", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/pending"))
		assert.Equal(t, []string{"✅ Открытых вопросов нет"}, tb.tg.to(testOperator))
	})

	t.Run("Pending", func(t *testing.T) {
		q, err := models.NewPendingQuestion(80, "когда выплаты?")
		require.NoError(t, err)
		require.NoError(t, tb.db.SetPendingQuestion(ctx, q))

		tb.tg.reset()
		tb.send(privateText(testOperator, "/pending"))
		out := strings.Join(tb.tg.to(testOperator), "\n")
		assert.Contains(t, out, "когда выплаты?")
		assert.Contains(t, out, "/reply 80")
	})

	t.Run("Conversation", func(t *testing.T) {
		require.NoError(t, tb.db.AppendMessage(ctx, &models.Message{UserID: 80, Role: models.RoleUser, Content: "привет"}))
		require.NoError(t, tb.db.AppendMessage(ctx, &models.Message{UserID: 80, Role: models.RoleBot, Content: "здравствуй"}))

		tb.tg.reset()
		tb.send(privateText(testOperator, "/conversation 80"))
		out := strings.Join(tb.tg.to(testOperator), "\n")
		assert.Contains(t, out, "👤")
		assert.Contains(t, out, "🤖")
		assert.Contains(t, out, "здравствуй")

		tb.tg.reset()
		tb.send(privateText(testOperator, "/conversation x"))
		assert.Equal(t, []string{"Формат: /conversation <id>"}, tb.tg.to(testOperator))
	})

	t.Run("WelcomeInTwoSteps", func(t *testing.T) {
		tb.send(privateText(testOperator, "/welcome"))
		tb.send(privateText(testOperator, "Новое приветствие"))

		v, err := tb.db.GetSetting(ctx, service.SettingWelcome)
		require.NoError(t, err)
		assert.Equal(t, "Новое приветствие", v)
		assert.Equal(t, "✅ Текст сохранён", lastTo(tb, testOperator))
	})

	t.Run("RejectionInline", func(t *testing.T) {
		tb.send(privateText(testOperator, "/rejection Спасибо, но нет"))
		v, err := tb.db.GetSetting(ctx, service.SettingRejection)
		require.NoError(t, err)
		assert.Equal(t, "Спасибо, но нет", v)
	})

	t.Run("ForbiddenTopics", func(t *testing.T) {
		tb.send(privateText(testOperator, "/forbidden_add казино: Казино, ставки, казино"))
		topics, err := tb.db.ListForbiddenTopics(ctx)
		require.NoError(t, err)
		var found *models.ForbiddenTopic
		for _, topic := range topics {
			if topic.Name == "казино" {
				found = topic
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, []string{"казино", "ставки"}, found.Keywords)

		tb.tg.reset()
		tb.send(privateText(testOperator, "/forbidden"))
		assert.Contains(t, lastTo(tb, testOperator), "казино: казино, ставки")

		tb.send(privateText(testOperator, "/forbidden_del казино"))
		assert.Contains(t, lastTo(tb, testOperator), "удалена")
		tb.send(privateText(testOperator, "/forbidden_del казино"))
		assert.Contains(t, lastTo(tb, testOperator), "не найдена")

		tb.send(privateText(testOperator, "/forbidden_add без двоеточия"))
		assert.Equal(t, "Формат: тема: слово1, слово2", lastTo(tb, testOperator))
	})

	t.Run("FAQ", func(t *testing.T) {
		tb.send(privateText(testOperator, "/faq_add working | Когда выплаты? | По понедельникам"))
		entries, err := tb.db.ListKnowledge(ctx, models.CategoryWorking, 100)
		require.NoError(t, err)
		var found bool
		for _, e := range entries {
			if e.Question == "Когда выплаты?" && e.Answer == "По понедельникам" {
				found = true
			}
		}
		assert.True(t, found)

		tb.send(privateText(testOperator, "/faq_add working | только вопрос"))
		assert.Contains(t, lastTo(tb, testOperator), "Формат: /faq_add")
	})

	t.Run("Export", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/export"))
		assert.Equal(t, []string{"text", "document"}, tb.tg.kindsTo(testOperator))
	})

	t.Run("AnalyzeWithoutBackends", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/analyze"))
		assert.Contains(t, lastTo(tb, testOperator), "не настроен")
	})

	t.Run("Cancel", func(t *testing.T) {
		tb.send(privateText(testOperator, "/welcome"))
		tb.send(privateText(testOperator, "/cancel"))
		tb.tg.reset()
		tb.send(privateText(testOperator, "просто текст"))
		assert.Equal(t, []string{"Используй /admin для списка команд"}, tb.tg.to(testOperator))
	})

	t.Run("Unknown", func(t *testing.T) {
		tb.tg.reset()
		tb.send(privateText(testOperator, "/foo"))
		assert.Contains(t, lastTo(tb, testOperator), "Неизвестная команда")
	})
}

func TestParseLines(t *testing.T) {
	topic, err := parseTopicLine("ставки:  Ставки , спорт")
	require.NoError(t, err)
	assert.Equal(t, "ставки", topic.Name)
	assert.Equal(t, []string{"ставки", "спорт"}, topic.Keywords)

	_, err = parseTopicLine("ставки")
	assert.ErrorIs(t, err, errBadFormat)

	entry, err := parseFAQLine("Registration | Как скачать? | По ссылке")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryRegistration, entry.Category)
	assert.Equal(t, "Как скачать?", entry.Question)

	_, err = parseFAQLine("new | вопрос")
	assert.ErrorIs(t, err, errBadFormat)
}
