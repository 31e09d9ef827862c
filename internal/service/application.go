package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/events"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/rs/zerolog"
)

// Ключи settings, редактируемые операторами.
const (
	SettingWelcome   = "welcome_message"
	SettingRejection = "rejection_message"
)

// ErrNotPending is returned when a decision arrives for a user who is not under review.
var ErrNotPending = errors.New("user is not waiting for a decision")

// SettingsReader reads operator-editable texts.
type SettingsReader interface {
	GetSetting(ctx context.Context, key string) (string, error)
}

// ApplicationService covers screening: photos, two questions, the operator decision.
type ApplicationService struct {
	users     domain.UserStore
	apps      domain.ApplicationStore
	messages  domain.MessageStore
	settings  SettingsReader
	state     domain.StateManager
	notifier  domain.NotificationChannel
	events    domain.EventPublisher
	photosMin int
	photosMax int
	logger    *zerolog.Logger
}

func NewApplicationService(
	users domain.UserStore,
	apps domain.ApplicationStore,
	messages domain.MessageStore,
	settings SettingsReader,
	state domain.StateManager,
	notifier domain.NotificationChannel,
	publisher domain.EventPublisher,
	photosMin, photosMax int,
	logger *zerolog.Logger,
) *ApplicationService {
	if photosMin <= 0 {
		photosMin = models.PhotosMin
	}
	if photosMax < photosMin {
		photosMax = models.PhotosMax
	}
	return &ApplicationService{
		users:     users,
		apps:      apps,
		messages:  messages,
		settings:  settings,
		state:     state,
		notifier:  notifier,
		events:    publisher,
		photosMin: photosMin,
		photosMax: photosMax,
		logger:    nopIfNil(logger),
	}
}

// AcceptsPhotos reports whether photos from user belong to the screening flow.
func (s *ApplicationService) AcceptsPhotos(user *models.User) bool {
	return onboarding.AcceptsPhotosForScreening(user.Status)
}

// AddPhotos stores a single photo or a whole album. An album that does not
// fit under the maximum is rejected entirely and the count is not changed.
func (s *ApplicationService) AddPhotos(ctx context.Context, user *models.User, fileIDs []string) (*Outcome, error) {
	if user.Status.IsTerminal() || !s.AcceptsPhotos(user) {
		return noop(), nil
	}
	lang := user.ReplyLanguage("")

	count, err := s.users.AddPhotos(ctx, user.ID, fileIDs, s.photosMax)
	if errors.Is(err, database.ErrTooManyPhotos) {
		var reply string
		if count >= s.photosMax {
			reply = fmt.Sprintf(knowledge.PhotosTooMany.In(lang), s.photosMax)
		} else {
			reply = fmt.Sprintf(knowledge.AlbumTooLarge.In(lang), s.photosMax, s.photosMax-count)
		}
		return s.deliver(ctx, user.ID, lang, reply), nil
	}
	if err != nil {
		return nil, fmt.Errorf("add photos: %w", err)
	}
	user.PhotosCount = count

	if count < s.photosMin {
		if err := advance(ctx, s.users, user, onboarding.EventPhotoAdded); err != nil {
			return nil, err
		}
		return s.deliver(ctx, user.ID, lang, fmt.Sprintf(knowledge.PhotosNeedMore.In(lang), s.photosMin-count)), nil
	}

	if err := advance(ctx, s.users, user, onboarding.EventPhotosComplete); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Int("photos", count).Msg("photos collected")
	return s.deliver(ctx, user.ID, lang, knowledge.QuestionWorkHours.In(lang)), nil
}

// InScreening reports whether the next text is a screening answer.
func (s *ApplicationService) InScreening(user *models.User) bool {
	return user.Status == models.StatusAskingWorkHours || user.Status == models.StatusAskingExperience
}

// AnswerScreening takes the work-hours answer, then the experience answer
// which submits the application.
func (s *ApplicationService) AnswerScreening(ctx context.Context, user *models.User, text string) (*Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return noop(), nil
	}
	lang := user.ReplyLanguage("")

	if msg, err := models.NewMessage(user.ID, models.RoleUser, text); err == nil {
		if err := s.messages.AppendMessage(ctx, msg); err != nil {
			return nil, fmt.Errorf("store message: %w", err)
		}
	}

	switch user.Status {
	case models.StatusAskingWorkHours:
		if err := s.state.UpdateUserStateData(ctx, user.ID, models.StateKeyWorkHours, text); err != nil {
			return nil, fmt.Errorf("save work hours: %w", err)
		}
		if err := advance(ctx, s.users, user, onboarding.EventAnswered); err != nil {
			return nil, err
		}
		return s.deliver(ctx, user.ID, lang, knowledge.QuestionExperience.In(lang)), nil

	case models.StatusAskingExperience:
		return s.submit(ctx, user, lang, text)
	}
	return noop(), nil
}

func (s *ApplicationService) submit(ctx context.Context, user *models.User, lang models.Language, experience string) (*Outcome, error) {
	workHours := "—"
	if st, err := s.state.GetUserState(ctx, user.ID); err == nil {
		if wh := st.GetString(models.StateKeyWorkHours); wh != "" {
			workHours = wh
		}
	}

	app, err := models.NewApplication(user.ID, workHours, experience)
	if err != nil {
		return nil, err
	}
	if err := s.apps.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	if err := advance(ctx, s.users, user, onboarding.EventSubmitted); err != nil {
		return nil, err
	}

	var photoIDs []string
	if photos, err := s.users.GetPhotos(ctx, user.ID); err == nil {
		for _, p := range photos {
			photoIDs = append(photoIDs, p.FileID)
		}
	}
	if err := s.notifier.NotifyApplication(ctx, user, app, photoIDs); err != nil {
		s.logger.Error().Err(err).Int64("application_id", app.ID).Msg("operators were not notified about application")
	}
	s.publish(events.EventApplicationSubmitted, events.ApplicationEventPayload{
		ApplicationID: app.ID, UserID: user.ID, Status: string(app.Status), At: app.CreatedAt,
	})

	s.logger.Info().Int64("user_id", user.ID).Int64("application_id", app.ID).Msg("application submitted")
	return s.deliver(ctx, user.ID, lang, knowledge.ApplicationSubmitted.In(lang)), nil
}

// Decision is the result of an operator approve/reject.
type Decision struct {
	Application *models.Application
	User        *models.User
	Outcome     *Outcome
}

// Decide applies an operator decision once; a second decision gets database.ErrAlreadyDecided.
func (s *ApplicationService) Decide(ctx context.Context, applicationID, operatorID int64, approve bool) (*Decision, error) {
	app, err := s.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationPending {
		return nil, database.ErrAlreadyDecided
	}
	user, err := s.users.GetUser(ctx, app.UserID)
	if err != nil {
		return nil, err
	}

	status, event := models.ApplicationApproved, onboarding.EventApproved
	if !approve {
		status, event = models.ApplicationRejected, onboarding.EventRejected
	}
	next, err := onboarding.Next(user.Status, event)
	if err != nil {
		return nil, fmt.Errorf("%w: status %s", ErrNotPending, user.Status)
	}

	// решение и статус пользователя пишутся вместе, иначе повтор упрется в ErrAlreadyDecided
	if err := s.apps.DecideAndAdvance(ctx, applicationID, status, operatorID, next); err != nil {
		return nil, err
	}
	now := time.Now()
	app.Status, app.DecidedBy, app.DecidedAt = status, operatorID, &now
	user.Status = next

	lang := user.ReplyLanguage("")
	var replies []string
	eventType := events.EventApplicationApproved
	if approve {
		replies = []string{knowledge.RegistrationDownload.In(lang), knowledge.RegistrationSteps.In(lang)}
	} else {
		eventType = events.EventApplicationRejected
		replies = []string{s.setting(ctx, SettingRejection, knowledge.Rejection.In(lang))}
	}
	recordReplies(ctx, s.messages, s.logger, user.ID, replies...)

	s.publish(eventType, events.ApplicationEventPayload{
		ApplicationID: app.ID, UserID: user.ID, Status: string(status), DecidedBy: operatorID, At: now,
	})
	s.logger.Info().Int64("application_id", app.ID).Int64("operator", operatorID).Str("status", string(status)).
		Msg("application decided")

	return &Decision{
		Application: app,
		User:        user,
		Outcome:     &Outcome{Kind: OutcomeDeliver, Replies: replies, Language: lang},
	}, nil
}

// WelcomeText is the operator-edited welcome message or the localized default.
func (s *ApplicationService) WelcomeText(ctx context.Context, lang models.Language) string {
	return s.setting(ctx, SettingWelcome, knowledge.Welcome.In(lang))
}

func (s *ApplicationService) setting(ctx context.Context, key, fallback string) string {
	if s.settings == nil {
		return fallback
	}
	v, err := s.settings.GetSetting(ctx, key)
	if err != nil || strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func (s *ApplicationService) deliver(ctx context.Context, userID int64, lang models.Language, replies ...string) *Outcome {
	recordReplies(ctx, s.messages, s.logger, userID, replies...)
	return &Outcome{Kind: OutcomeDeliver, Replies: replies, Language: lang}
}

func (s *ApplicationService) publish(eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event handler failed")
	}
}
