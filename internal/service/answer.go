package service

import (
	"context"
	"fmt"

	"recruitbot/internal/domain"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/language"
	"recruitbot/internal/models"
	"recruitbot/internal/resolver"

	"github.com/rs/zerolog"
)

type OutcomeKind int

const (
	// OutcomeNoop: no reply, no state change.
	OutcomeNoop OutcomeKind = iota
	// OutcomeDeliver: Replies go to the user.
	OutcomeDeliver
	// OutcomeEscalated: the question is with an operator; Replies hold the acknowledgement.
	OutcomeEscalated
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDeliver:
		return "deliver"
	case OutcomeEscalated:
		return "escalated"
	default:
		return "noop"
	}
}

// Outcome is the single result of processing one inbound message.
type Outcome struct {
	Kind     OutcomeKind
	Replies  []string
	Language models.Language
	Result   *resolver.Result
}

// Text returns the first reply or "".
func (o *Outcome) Text() string {
	if o == nil || len(o.Replies) == 0 {
		return ""
	}
	return o.Replies[0]
}

func noop() *Outcome { return &Outcome{Kind: OutcomeNoop} }

// Resolver is the answer pipeline as seen by the service.
type Resolver interface {
	Resolve(ctx context.Context, in *resolver.Input) *resolver.Result
}

// AnswerService answers free-text messages: language handling, the resolver
// cascade and the escalation decision.
type AnswerService struct {
	users    *UserService
	messages domain.MessageStore
	learned  LearnedRecorder
	pipeline Resolver
	handoff  *HandoffService
	logger   *zerolog.Logger
}

func NewAnswerService(users *UserService, messages domain.MessageStore, learned LearnedRecorder, pipeline Resolver, handoff *HandoffService, logger *zerolog.Logger) *AnswerService {
	return &AnswerService{
		users:    users,
		messages: messages,
		learned:  learned,
		pipeline: pipeline,
		handoff:  handoff,
		logger:   nopIfNil(logger),
	}
}

// Handle produces exactly one outcome per message: an answer, an escalation or nothing.
func (s *AnswerService) Handle(ctx context.Context, user *models.User, text string) (*Outcome, error) {
	if user.Status.IsTerminal() {
		return noop(), nil
	}
	if knowledge.Trimmed(text) == "" {
		return noop(), nil
	}

	if lang, ok := language.DetectSwitch(text); ok {
		return s.switchLanguage(ctx, user, text, lang)
	}

	lang := user.ReplyLanguage(language.Detect(text))
	s.users.RememberLanguage(ctx, user, lang)

	history, err := s.messages.RecentMessages(ctx, user.ID, models.HistoryFull)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if err := s.appendUser(ctx, user.ID, text); err != nil {
		return nil, err
	}

	if user.Status == models.StatusWaitingAdmin {
		if err := s.handoff.FollowUp(ctx, user, text); err != nil {
			s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("follow-up was not forwarded")
		}
		ack := knowledge.FollowUpAck.In(lang)
		recordReplies(ctx, s.messages, s.logger, user.ID, ack)
		return &Outcome{Kind: OutcomeEscalated, Replies: []string{ack}, Language: lang}, nil
	}

	in := resolver.NewInput(user.ID, text, lang, user.Status, user.InGroup, history)
	res := s.pipeline.Resolve(ctx, in)
	if res.Language.IsValid() && !user.LanguageLocked {
		lang = res.Language
	}

	if res.Escalate || res.Answer == "" {
		// генерация могла съесть весь таймаут обработчика, вопрос все равно сохраняем
		escCtx, cancel := detached(ctx)
		defer cancel()
		if err := s.handoff.Escalate(escCtx, user, text); err != nil {
			return nil, err
		}
		ack := knowledge.EscalationAck.In(lang)
		recordReplies(escCtx, s.messages, s.logger, user.ID, ack)
		return &Outcome{Kind: OutcomeEscalated, Replies: []string{ack}, Language: lang, Result: res}, nil
	}

	recordReplies(ctx, s.messages, s.logger, user.ID, res.Answer)
	s.learn(ctx, user.ID, text, res)
	return &Outcome{Kind: OutcomeDeliver, Replies: []string{res.Answer}, Language: lang, Result: res}, nil
}

func (s *AnswerService) switchLanguage(ctx context.Context, user *models.User, text string, lang models.Language) (*Outcome, error) {
	if err := s.users.SwitchLanguage(ctx, user.ID, lang); err != nil {
		return nil, fmt.Errorf("switch language: %w", err)
	}
	user.Language, user.LanguageLocked = lang, true

	if err := s.appendUser(ctx, user.ID, text); err != nil {
		return nil, err
	}
	replies := []string{knowledge.LanguageSwitched.In(lang), knowledge.Welcome.In(lang)}
	recordReplies(ctx, s.messages, s.logger, user.ID, replies...)

	s.logger.Info().Int64("user_id", user.ID).Str("lang", string(lang)).Msg("language switched")
	return &Outcome{Kind: OutcomeDeliver, Replies: replies, Language: lang}, nil
}

func (s *AnswerService) appendUser(ctx context.Context, userID int64, text string) error {
	msg, err := models.NewMessage(userID, models.RoleUser, text)
	if err != nil {
		return err
	}
	if err := s.messages.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("store message: %w", err)
	}
	return nil
}

func (s *AnswerService) learn(ctx context.Context, userID int64, question string, res *resolver.Result) {
	la, err := models.NewLearnedAnswer(question, res.Answer, models.SourceAuto, res.Confidence)
	if err != nil {
		return
	}
	if err := s.learned.RecordLearnedAnswer(ctx, la); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to store learned answer")
	}
}
