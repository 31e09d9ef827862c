package resolver

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

const forbiddenConfidence = 100

type TopicSource interface {
	ListForbiddenTopics(ctx context.Context) ([]*models.ForbiddenTopic, error)
}

// ForbiddenResolver refuses banned subjects before anything else runs.
type ForbiddenResolver struct {
	topics TopicSource
	logger *zerolog.Logger
}

func NewForbiddenResolver(topics TopicSource, logger *zerolog.Logger) *ForbiddenResolver {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &ForbiddenResolver{topics: topics, logger: logger}
}

func (r *ForbiddenResolver) Name() Tier { return TierForbidden }

func (r *ForbiddenResolver) TryResolve(ctx context.Context, in *Input) (*Result, bool) {
	topics := r.load(ctx)
	for _, topic := range topics {
		for _, kw := range topic.Keywords {
			if kw == "" || !strings.Contains(in.Normalized, kw) {
				continue
			}
			// имя темы пользователю не показываем
			r.logger.Info().Int64("user_id", in.UserID).Str("topic", topic.Name).Msg("forbidden topic")
			return &Result{
				Answer:     knowledge.Refusal.In(in.Language),
				Confidence: forbiddenConfidence,
				Language:   in.Language,
				Tier:       TierForbidden,
				Rule:       topic.Name,
			}, true
		}
	}
	return nil, false
}

func (r *ForbiddenResolver) load(ctx context.Context) []*models.ForbiddenTopic {
	if r.topics == nil {
		return knowledge.DefaultForbiddenTopics()
	}
	topics, err := r.topics.ListForbiddenTopics(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("load forbidden topics, using defaults")
		return knowledge.DefaultForbiddenTopics()
	}
	return topics
}
