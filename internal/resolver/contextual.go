package resolver

import (
	"context"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

const (
	confidenceContextual = 92

	followUpMaxWords   = 6
	followUpMinHistory = 2
	botMessagesToScan  = 3
)

// ContextualResolver answers "what now?" from the bot's own last messages.
type ContextualResolver struct{}

func NewContextualResolver() *ContextualResolver { return &ContextualResolver{} }

func (r *ContextualResolver) Name() Tier { return TierContextual }

func (r *ContextualResolver) TryResolve(_ context.Context, in *Input) (*Result, bool) {
	if !isFollowUp(in.Normalized) || len(in.History) < followUpMinHistory {
		return nil, false
	}

	for _, msg := range lastBotMessages(in.History, botMessagesToScan) {
		reply, rule, ok := continuation(knowledge.Normalize(msg.Content))
		if !ok {
			continue
		}
		return &Result{
			Answer:     reply.In(in.Language),
			Confidence: confidenceContextual,
			Language:   in.Language,
			Tier:       TierContextual,
			Rule:       rule,
		}, true
	}
	return nil, false
}

func isFollowUp(text string) bool {
	if text == "" || knowledge.WordCount(text) > followUpMaxWords {
		return false
	}
	_, ok := knowledge.ContainsAny(text, knowledge.FollowUps)
	return ok
}

// lastBotMessages returns up to n bot messages, newest first.
func lastBotMessages(history []*models.Message, n int) []*models.Message {
	out := make([]*models.Message, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		if history[i].Role == models.RoleBot {
			out = append(out, history[i])
		}
	}
	return out
}

func continuation(botText string) (models.Localized, string, bool) {
	if _, ok := knowledge.ContainsAny(botText, knowledge.PhotoRequestMarkers); ok {
		return knowledge.SendPhotosReply, "photo_request", true
	}
	if _, ok := knowledge.ContainsAny(botText, knowledge.PhotoOnlyForMarkers); ok &&
		(strings.Contains(botText, "фото") || strings.Contains(botText, "photo")) {
		return knowledge.PhotosForReviewReply, "photo_review", true
	}
	if _, ok := knowledge.ContainsAny(botText, knowledge.InstructionMarkers); ok {
		if _, office := knowledge.ContainsAny(botText, knowledge.OfficeMarkers); office {
			return knowledge.WaitOfficeReply, "wait_office", true
		}
		return knowledge.FollowStepsReply, "follow_steps", true
	}
	return nil, "", false
}
