package domain

import (
	"context"
	"time"

	"recruitbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	UpdateUserStatus(ctx context.Context, id int64, status models.Status) error
	SetUserLanguage(ctx context.Context, id int64, lang models.Language, locked bool) error
	TouchUser(ctx context.Context, id int64) error
	SetInGroup(ctx context.Context, id int64, inGroup bool) error
	SetPlatformID(ctx context.Context, id int64, platformID string) error
	AddPhotos(ctx context.Context, userID int64, fileIDs []string, max int) (int, error)
	GetPhotos(ctx context.Context, userID int64) ([]*models.Photo, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	HideInactive(ctx context.Context, statuses []models.Status, before time.Time) (int64, error)
}

type MessageStore interface {
	AppendMessage(ctx context.Context, msg *models.Message) error
	RecentMessages(ctx context.Context, userID int64, limit int) ([]*models.Message, error)
	AllMessages(ctx context.Context, userID int64) ([]*models.Message, error)
}

type PendingStore interface {
	SetPendingQuestion(ctx context.Context, q *models.PendingQuestion) error
	GetPendingQuestion(ctx context.Context, userID int64) (*models.PendingQuestion, error)
	ClearPendingQuestion(ctx context.Context, userID int64) error
	ListPendingQuestions(ctx context.Context) ([]*models.PendingQuestion, error)
}

type KnowledgeStore interface {
	ListKnowledge(ctx context.Context, category models.Category, limit int) ([]*models.KnowledgeEntry, error)
	AddKnowledge(ctx context.Context, entry *models.KnowledgeEntry) error
	ListForbiddenTopics(ctx context.Context) ([]*models.ForbiddenTopic, error)
	SaveForbiddenTopic(ctx context.Context, topic *models.ForbiddenTopic) error
	DeleteForbiddenTopic(ctx context.Context, name string) error
	RecordLearnedAnswer(ctx context.Context, answer *models.LearnedAnswer) error
	RecentLearnedAnswers(ctx context.Context, limit int) ([]*models.LearnedAnswer, error)
	ListTrainingMaterials(ctx context.Context) ([]*models.TrainingMaterial, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	DecideAndAdvance(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64, userStatus models.Status) error
}

type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type StateManager interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
	SetUserState(ctx context.Context, userID int64, step string, data map[string]interface{}) error
	ClearUserState(ctx context.Context, userID int64) error
	UpdateUserStateData(ctx context.Context, userID int64, key string, value interface{}) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	SendPhotos(chatID int64, fileIDs []string) error
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// SheetsWriter mirrors applications into a spreadsheet.
type SheetsWriter interface {
	UpsertApplication(ctx context.Context, row *models.ApplicationRow) error
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, applicationID int64, row *models.ApplicationRow, status models.ApplicationStatus) error
}

// GenerationBackend is a chat-completion provider.
type GenerationBackend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text string, target models.Language) (string, error)
}

// NotificationChannel reaches the human operators.
type NotificationChannel interface {
	NotifyEscalation(ctx context.Context, user *models.User, question string) error
	NotifyFollowUp(ctx context.Context, user *models.User, question string) error
	NotifyApplication(ctx context.Context, user *models.User, app *models.Application, photoIDs []string) error
	NotifyScreenshot(ctx context.Context, user *models.User, fileID, platformID string) error
}

// OCRService extracts a platform account ID from a profile screenshot.
type OCRService interface {
	ExtractID(ctx context.Context, image []byte) (string, bool, error)
}

type UserService interface {
	IsOperator(userID int64) bool
	IsBlacklisted(userID int64) bool
	Operators() []int64
	EnsureUser(ctx context.Context, id int64, username, firstName string) (*models.User, bool, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SwitchLanguage(ctx context.Context, id int64, lang models.Language) error
}
