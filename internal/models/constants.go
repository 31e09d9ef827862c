package models

import "time"

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	// DefaultRedisTTL время жизни сценарных данных в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах

	// PhotosMin минимум фото для анкеты
	PhotosMin = 2

	// PhotosMax максимум фото для анкеты
	PhotosMax = 3

	// ConfidenceThreshold ниже этого порога вопрос уходит оператору
	ConfidenceThreshold = 70

	// DislikeRatioLimit допустимый коэффициент дизлайков
	DislikeRatioLimit = 0.18

	// AlbumDebounce ожидание остальных фото альбома
	AlbumDebounce = time.Second

	// PlatformIDMinDigits / PlatformIDMaxDigits длина ID на платформе
	PlatformIDMinDigits = 6
	PlatformIDMaxDigits = 15

	// HistoryRecent и HistoryFull окна истории для генерации
	HistoryRecent = 5
	HistoryFull   = 15

	// ConversationViewLimit сообщений в карточке диалога у оператора
	ConversationViewLimit = 20

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 128
)
