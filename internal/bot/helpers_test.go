package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/events"
	"recruitbot/internal/models"
	"recruitbot/internal/repository"
	"recruitbot/internal/resolver"
	"recruitbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testOperator = int64(900)
	testGroup    = int64(-1001)
)

type sentMessage struct {
	chatID int64
	kind   string
	text   string
}

// fakeTelegram records everything the bot sends.
type fakeTelegram struct {
	mu      sync.Mutex
	sent    []sentMessage
	nextID  int
	sendErr error
}

func (f *fakeTelegram) record(chatID int64, kind, text string) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, sentMessage{chatID: chatID, kind: kind, text: text})
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		return f.record(m.ChatID, "text", m.Text)
	case tgbotapi.PhotoConfig:
		return f.record(m.ChatID, "photo", m.Caption)
	case tgbotapi.DocumentConfig:
		return f.record(m.ChatID, "document", m.Caption)
	case tgbotapi.CopyMessageConfig:
		return f.record(m.ChatID, "copy", fmt.Sprintf("%d/%d", m.FromChatID, m.MessageID))
	case tgbotapi.EditMessageTextConfig:
		return f.record(m.ChatID, "edit", m.Text)
	default:
		return f.record(0, "other", "")
	}
}

func (f *fakeTelegram) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if mg, ok := c.(tgbotapi.MediaGroupConfig); ok {
		_, err := f.record(mg.ChatID, "media_group", fmt.Sprint(len(mg.Media)))
		return &tgbotapi.APIResponse{Ok: err == nil}, err
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegram) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return f.record(chatID, "text", text)
}

func (f *fakeTelegram) SendWithInlineKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	data := ""
	if len(kb.InlineKeyboard) > 0 && len(kb.InlineKeyboard[0]) > 0 && kb.InlineKeyboard[0][0].CallbackData != nil {
		data = *kb.InlineKeyboard[0][0].CallbackData
	}
	return f.record(chatID, "keyboard:"+data, text)
}

func (f *fakeTelegram) SendPhotos(chatID int64, fileIDs []string) error {
	_, err := f.record(chatID, "photos", fmt.Sprint(len(fileIDs)))
	return err
}

func (f *fakeTelegram) EditMessage(chatID int64, messageID int, text string, _ *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return f.record(chatID, "edit", text)
}

func (f *fakeTelegram) AnswerCallback(string, string) error { return nil }

func (f *fakeTelegram) DownloadFile(context.Context, string) ([]byte, error) {
	return []byte("image"), nil
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTelegram) GetSelf() tgbotapi.User { return tgbotapi.User{UserName: "recruit_test_bot"} }

func (f *fakeTelegram) StopReceivingUpdates() {}

// to returns texts sent to chatID in order.
func (f *fakeTelegram) to(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.chatID == chatID {
			out = append(out, m.text)
		}
	}
	return out
}

func (f *fakeTelegram) kindsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.chatID == chatID {
			out = append(out, m.kind)
		}
	}
	return out
}

func (f *fakeTelegram) reset() {
	f.mu.Lock()
	f.sent = nil
	f.mu.Unlock()
}

// stubResolver answers everything with answer, or escalates when answer is empty.
type stubResolver struct {
	answer string
}

func (s *stubResolver) Resolve(_ context.Context, in *resolver.Input) *resolver.Result {
	if s.answer == "" {
		return &resolver.Result{Escalate: true, Language: in.Language}
	}
	return &resolver.Result{Answer: s.answer, Confidence: 95, Language: in.Language, Tier: resolver.TierDirect}
}

type stubOCR struct {
	id string
}

func (s stubOCR) ExtractID(context.Context, []byte) (string, bool, error) {
	return s.id, s.id != "", nil
}

type testBot struct {
	*Bot
	tg       *fakeTelegram
	db       *database.DB
	resolver *stubResolver
	ocr      *stubOCR
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	logger := zerolog.Nop()

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Operators: []int64{testOperator},
		Blacklist: []int64{666},
		Group:     config.GroupConfig{ChatID: testGroup, InviteLink: "https://t.me/+group"},
		Exports:   config.ExportConfig{Path: t.TempDir()},
		Bot: config.BotConfig{
			RateLimitMessages: 5,
			RateLimitWindow:   60,
			AlbumDebounce:     20 * time.Millisecond,
			HandlerTimeout:    5 * time.Second,
		},
	}

	tg := &fakeTelegram{}
	bus := events.NewEventBus()
	state := service.NewStateService(repository.NewMemoryStateRepository(time.Hour), &logger)
	notifier := service.NewOperatorNotifier(tg, cfg.Operators, &logger)
	stub := &stubResolver{answer: "Работа полностью онлайн 💻"}
	ocr := &stubOCR{}

	users := service.NewUserService(db, cfg, &logger)
	handoff := service.NewHandoffService(db, db, db, db, state, notifier, bus, &logger)
	apps := service.NewApplicationService(db, db, db, db, state, notifier, bus, models.PhotosMin, models.PhotosMax, &logger)
	registration := service.NewRegistrationService(db, db, ocr, tg, notifier, bus, &logger)
	answers := service.NewAnswerService(users, db, db, stub, handoff, &logger)

	b, err := NewBot(Deps{
		Telegram:     tg,
		Config:       cfg,
		DB:           db,
		State:        state,
		Users:        users,
		Answers:      answers,
		Applications: apps,
		Registration: registration,
		Handoff:      handoff,
		Metrics:      NewMetrics(prometheus.NewRegistry()),
		Logger:       &logger,
	})
	require.NoError(t, err)
	t.Cleanup(b.batcher.Close)

	return &testBot{Bot: b, tg: tg, db: db, resolver: stub, ocr: ocr}
}

func (tb *testBot) seedUser(t *testing.T, id int64, status models.Status) *models.User {
	t.Helper()
	u, err := models.NewUser(id, fmt.Sprintf("user%d", id), "Анна")
	require.NoError(t, err)
	u.Status = status
	require.NoError(t, tb.db.SaveUser(context.Background(), u))
	return u
}

func (tb *testBot) status(t *testing.T, id int64) models.Status {
	t.Helper()
	u, err := tb.db.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u.Status
}

func privateText(userID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: int(time.Now().UnixNano() % 100000),
		From:      &tgbotapi.User{ID: userID, UserName: fmt.Sprintf("user%d", userID), FirstName: "Анна"},
		Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
		Text:      text,
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return msg
}

func privatePhoto(userID int64, fileID, mediaGroup string) *tgbotapi.Message {
	msg := privateText(userID, "")
	msg.Photo = []tgbotapi.PhotoSize{{FileID: fileID + "_small"}, {FileID: fileID}}
	msg.MediaGroupID = mediaGroup
	return msg
}

func (tb *testBot) send(msg *tgbotapi.Message) {
	tb.processUpdate(context.Background(), tgbotapi.Update{Message: msg})
}

func (tb *testBot) press(operatorID int64, data string, card *tgbotapi.Message) {
	tb.processUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: operatorID},
		Message: card,
		Data:    data,
	}})
}
