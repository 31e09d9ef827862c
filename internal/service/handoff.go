package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/events"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/rs/zerolog"
)

// LearnedRecorder stores answers for the generative tier's context.
type LearnedRecorder interface {
	RecordLearnedAnswer(ctx context.Context, answer *models.LearnedAnswer) error
}

// HandoffService moves questions between users and operators.
type HandoffService struct {
	users    domain.UserStore
	pending  domain.PendingStore
	messages domain.MessageStore
	learned  LearnedRecorder
	state    domain.StateManager
	notifier domain.NotificationChannel
	events   domain.EventPublisher
	logger   *zerolog.Logger
}

func NewHandoffService(
	users domain.UserStore,
	pending domain.PendingStore,
	messages domain.MessageStore,
	learned LearnedRecorder,
	state domain.StateManager,
	notifier domain.NotificationChannel,
	publisher domain.EventPublisher,
	logger *zerolog.Logger,
) *HandoffService {
	return &HandoffService{
		users:    users,
		pending:  pending,
		messages: messages,
		learned:  learned,
		state:    state,
		notifier: notifier,
		events:   publisher,
		logger:   nopIfNil(logger),
	}
}

// Escalate persists the pending question before any operator sees it, then
// moves the user to waiting_admin where the table allows it.
func (s *HandoffService) Escalate(ctx context.Context, user *models.User, question string) error {
	q, err := models.NewPendingQuestion(user.ID, question)
	if err != nil {
		return err
	}
	if err := s.pending.SetPendingQuestion(ctx, q); err != nil {
		return fmt.Errorf("save pending question: %w", err)
	}

	origin := user.Status
	if onboarding.Can(user.Status, onboarding.EventEscalated) {
		next, _ := onboarding.Next(user.Status, onboarding.EventEscalated)
		if next == models.StatusWaitingAdmin && origin != models.StatusWaitingAdmin {
			if err := s.state.UpdateUserStateData(ctx, user.ID, models.StateKeyReturnStatus, string(origin)); err != nil {
				s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to remember escalation origin")
			}
		}
		if err := advance(ctx, s.users, user, onboarding.EventEscalated); err != nil {
			return fmt.Errorf("escalate status: %w", err)
		}
	}

	if err := s.notifier.NotifyEscalation(ctx, user, question); err != nil {
		// вопрос уже сохранен и виден в /pending
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("operators were not notified")
	}
	s.publish(events.EventQuestionEscalated, events.QuestionEventPayload{UserID: user.ID, Question: question, At: time.Now()})

	s.logger.Info().Int64("user_id", user.ID).Str("from", string(origin)).Msg("question escalated")
	return nil
}

// FollowUp forwards another message of a user who already waits for an operator.
func (s *HandoffService) FollowUp(ctx context.Context, user *models.User, text string) error {
	return s.notifier.NotifyFollowUp(ctx, user, text)
}

// Reply records an operator answer. The caller delivers content to the user.
// question is empty when the operator wrote without an open question.
func (s *HandoffService) Reply(ctx context.Context, operatorID, userID int64, content string) (user *models.User, question string, err error) {
	user, err = s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	q, err := s.pending.GetPendingQuestion(ctx, userID)
	switch {
	case err == nil:
		question = q.Question
	case errors.Is(err, database.ErrNotFound):
	default:
		return nil, "", err
	}

	if question != "" {
		if la, lerr := models.NewLearnedAnswer(question, content, models.SourceAdmin, 100); lerr == nil {
			if err := s.learned.RecordLearnedAnswer(ctx, la); err != nil {
				s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to store learned answer")
			}
		}
		if err := s.pending.ClearPendingQuestion(ctx, userID); err != nil {
			return nil, "", fmt.Errorf("clear pending question: %w", err)
		}
	}

	recordReplies(ctx, s.messages, s.logger, userID, content)

	if user.Status == models.StatusWaitingAdmin {
		if err := s.resume(ctx, user); err != nil {
			return nil, "", err
		}
	}

	s.publish(events.EventQuestionAnswered, events.QuestionEventPayload{
		UserID: userID, Question: question, OperatorID: operatorID, At: time.Now(),
	})
	s.logger.Info().Int64("user_id", userID).Int64("operator", operatorID).Msg("operator replied")
	return user, question, nil
}

// resume returns the user to where they escalated from.
func (s *HandoffService) resume(ctx context.Context, user *models.User) error {
	var origin models.Status
	if st, err := s.state.GetUserState(ctx, user.ID); err == nil && st != nil {
		origin = models.Status(st.GetString(models.StateKeyReturnStatus))
	}

	next := onboarding.Resume(origin)
	if !onboarding.Can(user.Status, onboarding.EventOperatorReplied) {
		return nil
	}
	if err := s.users.UpdateUserStatus(ctx, user.ID, next); err != nil {
		return fmt.Errorf("resume status: %w", err)
	}
	user.Status = next

	if err := s.state.UpdateUserStateData(ctx, user.ID, models.StateKeyReturnStatus, ""); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to clear escalation origin")
	}
	return nil
}

func (s *HandoffService) publish(eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event handler failed")
	}
}
