package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruitbot/internal/domain"
	"recruitbot/internal/events"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/rs/zerolog"
)

// ID sources, as logged and shown to operators.
const (
	IDSourceOCR     = "ocr"
	IDSourceCaption = "caption"
	IDSourceTyped   = "typed"
)

// Verification is the outcome of a screenshot or a typed id.
type Verification struct {
	Verified   bool
	PlatformID string
	Source     string
	Outcome    *Outcome
}

// RegistrationService verifies the platform account after approval.
type RegistrationService struct {
	users    domain.UserStore
	messages domain.MessageStore
	ocr      domain.OCRService
	files    interface {
		DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	}
	notifier domain.NotificationChannel
	events   domain.EventPublisher
	logger   *zerolog.Logger
}

func NewRegistrationService(
	users domain.UserStore,
	messages domain.MessageStore,
	ocr domain.OCRService,
	files interface {
		DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	},
	notifier domain.NotificationChannel,
	publisher domain.EventPublisher,
	logger *zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:    users,
		messages: messages,
		ocr:      ocr,
		files:    files,
		notifier: notifier,
		events:   publisher,
		logger:   nopIfNil(logger),
	}
}

// AcceptsScreenshot reports whether a photo from user is a verification screenshot.
func (s *RegistrationService) AcceptsScreenshot(user *models.User) bool {
	return onboarding.Can(user.Status, onboarding.EventScreenshotPhoto)
}

// HandleScreenshot tries OCR first, then the caption. OCR failures are an
// expected branch: the user is asked to type the id.
func (s *RegistrationService) HandleScreenshot(ctx context.Context, user *models.User, fileID, caption string) (*Verification, error) {
	if !s.AcceptsScreenshot(user) {
		return &Verification{Outcome: noop()}, nil
	}
	lang := user.ReplyLanguage("")

	if err := advance(ctx, s.users, user, onboarding.EventScreenshotPhoto); err != nil {
		return nil, err
	}

	id, ok := s.recognize(ctx, user.ID, fileID)
	source := IDSourceOCR
	if !ok {
		if c := strings.TrimSpace(caption); models.IsPlatformID(c) {
			id, ok, source = c, true, IDSourceCaption
		}
	}

	if !ok {
		if err := s.notifier.NotifyScreenshot(ctx, user, fileID, "не распознан"); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("screenshot was not forwarded")
		}
		reply := knowledge.ScreenshotNoID.In(lang)
		recordReplies(ctx, s.messages, s.logger, user.ID, reply)
		return &Verification{Outcome: &Outcome{Kind: OutcomeDeliver, Replies: []string{reply}, Language: lang}}, nil
	}

	return s.verify(ctx, user, lang, id, source, fileID)
}

// HandleTypedID accepts a typed id while the user is expected to send one.
// In waiting_screenshot every other text gets the screenshot prompt again.
// handled=false means the text belongs to the answer pipeline.
func (s *RegistrationService) HandleTypedID(ctx context.Context, user *models.User, text string) (v *Verification, handled bool, err error) {
	if !onboarding.Can(user.Status, onboarding.EventIDVerified) {
		return nil, false, nil
	}
	lang := user.ReplyLanguage("")

	candidate := strings.TrimSpace(text)
	if models.IsPlatformID(candidate) {
		v, err := s.verify(ctx, user, lang, candidate, IDSourceTyped, "")
		return v, true, err
	}
	if user.Status != models.StatusWaitingScreenshot {
		return nil, false, nil
	}

	reply := knowledge.ScreenshotPrompt.In(lang)
	recordReplies(ctx, s.messages, s.logger, user.ID, reply)
	return &Verification{Outcome: &Outcome{Kind: OutcomeDeliver, Replies: []string{reply}, Language: lang}}, true, nil
}

func (s *RegistrationService) verify(ctx context.Context, user *models.User, lang models.Language, id, source, fileID string) (*Verification, error) {
	if err := s.users.SetPlatformID(ctx, user.ID, id); err != nil {
		return nil, fmt.Errorf("save platform id: %w", err)
	}
	user.PlatformID = id
	if err := advance(ctx, s.users, user, onboarding.EventIDVerified); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyScreenshot(ctx, user, fileID, fmt.Sprintf("%s (%s)", id, source)); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("registration was not forwarded")
	}
	if s.events != nil {
		if err := s.events.PublishJSON(events.EventUserRegistered, events.UserEventPayload{
			UserID: user.ID, PlatformID: id, At: time.Now(),
		}); err != nil {
			s.logger.Warn().Err(err).Msg("event handler failed")
		}
	}

	reply := knowledge.ScreenshotAccepted.In(lang)
	recordReplies(ctx, s.messages, s.logger, user.ID, reply)
	s.logger.Info().Int64("user_id", user.ID).Str("source", source).Msg("platform id verified")

	return &Verification{
		Verified:   true,
		PlatformID: id,
		Source:     source,
		Outcome:    &Outcome{Kind: OutcomeDeliver, Replies: []string{reply}, Language: lang},
	}, nil
}

func (s *RegistrationService) recognize(ctx context.Context, userID int64, fileID string) (string, bool) {
	if s.ocr == nil || s.files == nil || fileID == "" {
		return "", false
	}
	image, err := s.files.DownloadFile(ctx, fileID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("screenshot download failed")
		return "", false
	}
	id, ok, err := s.ocr.ExtractID(ctx, image)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("ocr failed")
		return "", false
	}
	return id, ok
}
