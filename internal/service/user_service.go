package service

import (
	"context"
	"errors"

	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/rs/zerolog"
)

type UserService struct {
	store        domain.UserStore
	logger       *zerolog.Logger
	operators    []int64
	operatorsMap map[int64]bool
	blacklistMap map[int64]bool
}

func NewUserService(store domain.UserStore, cfg *config.Config, logger *zerolog.Logger) *UserService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	operatorsMap := make(map[int64]bool)
	for _, id := range cfg.Operators {
		operatorsMap[id] = true
	}

	blacklistMap := make(map[int64]bool)
	for _, id := range cfg.Blacklist {
		blacklistMap[id] = true
	}

	return &UserService{
		store:        store,
		logger:       logger,
		operators:    append([]int64(nil), cfg.Operators...),
		operatorsMap: operatorsMap,
		blacklistMap: blacklistMap,
	}
}

func (s *UserService) IsOperator(userID int64) bool {
	return s.operatorsMap[userID]
}

func (s *UserService) IsBlacklisted(userID int64) bool {
	return s.blacklistMap[userID]
}

func (s *UserService) Operators() []int64 {
	return append([]int64(nil), s.operators...)
}

// EnsureUser loads the user or registers a new one in status chatting.
// created reports whether the row was inserted by this call.
func (s *UserService) EnsureUser(ctx context.Context, id int64, username, firstName string) (*models.User, bool, error) {
	user, err := s.store.GetUser(ctx, id)
	if err == nil {
		s.refreshProfile(ctx, user, username, firstName)
		return user, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	user, err = models.NewUser(id, username, firstName)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Info().Int64("user_id", id).Str("username", user.Username).Msg("new user")
	return user, true, nil
}

// refreshProfile keeps username and first name in sync with Telegram; empty values are ignored.
func (s *UserService) refreshProfile(ctx context.Context, user *models.User, username, firstName string) {
	fresh, err := models.NewUser(user.ID, username, firstName)
	if err != nil {
		return
	}
	changed := false
	if fresh.Username != "" && fresh.Username != user.Username {
		user.Username, changed = fresh.Username, true
	}
	if fresh.FirstName != "" && fresh.FirstName != user.FirstName {
		user.FirstName, changed = fresh.FirstName, true
	}
	if !changed {
		return
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to refresh user profile")
	}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Touch bumps last_activity and unhides the dialog.
func (s *UserService) Touch(ctx context.Context, id int64) error {
	return s.store.TouchUser(ctx, id)
}

// SwitchLanguage stores an explicit preference; it wins over detection until the next switch.
func (s *UserService) SwitchLanguage(ctx context.Context, id int64, lang models.Language) error {
	return s.store.SetUserLanguage(ctx, id, lang, true)
}

// RememberLanguage keeps the last detected language for users without a locked preference.
func (s *UserService) RememberLanguage(ctx context.Context, user *models.User, lang models.Language) {
	if user.LanguageLocked || user.Language == lang || !lang.IsValid() {
		return
	}
	if err := s.store.SetUserLanguage(ctx, user.ID, lang, false); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store detected language")
		return
	}
	user.Language = lang
}

func (s *UserService) MarkInGroup(ctx context.Context, user *models.User) error {
	if err := s.store.SetInGroup(ctx, user.ID, true); err != nil {
		return err
	}
	user.InGroup = true
	return nil
}

// Advance applies an onboarding event and persists the new status.
func (s *UserService) Advance(ctx context.Context, user *models.User, event onboarding.Event) error {
	return advance(ctx, s.store, user, event)
}
