package models

import (
	"strconv"
	"strings"
	"time"
)

type User struct {
	ID             int64      `json:"id"`                    // Telegram ID
	Username       string     `json:"username"`              // без @
	FirstName      string     `json:"first_name"`            // имя из Telegram
	Status         Status     `json:"status"`                // этап онбординга
	Language       Language   `json:"language"`              // язык ответов
	LanguageLocked bool       `json:"language_locked"`       // язык выбран явно
	PhotosCount    int        `json:"photos_count"`          // принятые фото анкеты
	InGroup        bool       `json:"in_group"`              // состоит в рабочей группе
	PlatformID     string     `json:"platform_id,omitempty"` // ID на платформе после регистрации
	HiddenAt       *time.Time `json:"hidden_at,omitempty"`
	LastActivity   time.Time  `json:"last_activity"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewUser creates a user on first contact in the chatting state.
func NewUser(id int64, username, firstName string) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	now := time.Now()
	return &User{
		ID:           id,
		Username:     strings.TrimPrefix(strings.TrimSpace(username), "@"),
		FirstName:    strings.TrimSpace(firstName),
		Status:       StatusChatting,
		Language:     DefaultLanguage,
		LastActivity: now,
		CreatedAt:    now,
	}, nil
}

func (u *User) IsHidden() bool {
	return u.HiddenAt != nil
}

// ReplyLanguage keeps an explicitly chosen language, otherwise follows detection.
func (u *User) ReplyLanguage(detected Language) Language {
	if u.LanguageLocked && u.Language.IsValid() {
		return u.Language
	}
	if detected.IsValid() {
		return detected
	}
	if u.Language.IsValid() {
		return u.Language
	}
	return DefaultLanguage
}

// DisplayName is used in operator-facing cards.
func (u *User) DisplayName() string {
	switch {
	case u.Username != "":
		return "@" + u.Username
	case u.FirstName != "":
		return u.FirstName
	default:
		return "id" + strconv.FormatInt(u.ID, 10)
	}
}

// IsPlatformID reports whether s is a bare 6-15 digit account id.
func IsPlatformID(s string) bool {
	if len(s) < PlatformIDMinDigits || len(s) > PlatformIDMaxDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
