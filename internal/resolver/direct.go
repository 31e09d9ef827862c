package resolver

import (
	"context"

	"recruitbot/internal/knowledge"
)

// Уверенность детерминированных правил.
const (
	confidenceRatio    = 98
	confidenceTopic    = 95
	confidenceReaction = 99
	confidenceGreeting = 97
	confidenceFixed    = 95
	confidenceCountry  = 95

	// topicMaxWords длиннее этого блок отдаётся модели как контекст
	topicMaxWords = 15
)

type directRule struct {
	name  string
	apply func(in *Input) (string, int, bool)
}

// DirectResolver answers high-frequency questions from static tables.
type DirectResolver struct {
	rules []directRule
}

func NewDirectResolver() *DirectResolver {
	return &DirectResolver{rules: []directRule{
		{"ratio", ratioRule},
		{"topic", topicRule},
		{"reaction", reactionRule},
		{"greeting", greetingRule},
		{"video_instead_of_photo", videoRule},
		{"country", countryRule},
		{"tell_me_more", tellMeMoreRule},
		{"just_wait", justWaitRule},
	}}
}

func (r *DirectResolver) Name() Tier { return TierDirect }

func (r *DirectResolver) TryResolve(_ context.Context, in *Input) (*Result, bool) {
	if in.Normalized == "" {
		return nil, false
	}
	for _, rule := range r.rules {
		answer, confidence, ok := rule.apply(in)
		if !ok {
			continue
		}
		return &Result{
			Answer:     answer,
			Confidence: confidence,
			Language:   in.Language,
			Tier:       TierDirect,
			Rule:       rule.name,
		}, true
	}
	return nil, false
}

func ratioRule(in *Input) (string, int, bool) {
	r, ok := parseRatio(in.Normalized)
	if !ok {
		return "", 0, false
	}
	return knowledge.RatioReport(in.Language, r.Dislikes, r.Likes, r.Value, r.OK()), confidenceRatio, true
}

func topicRule(in *Input) (string, int, bool) {
	if knowledge.WordCount(in.Normalized) > topicMaxWords {
		return "", 0, false
	}
	matches := knowledge.FindBlocks(in.Normalized, in.Language)
	if len(matches) == 0 {
		return "", 0, false
	}
	return matches[0].Text, confidenceTopic, true
}

func reactionRule(in *Input) (string, int, bool) {
	reply, ok := knowledge.MatchReaction(in.Normalized)
	if !ok {
		return "", 0, false
	}
	return reply.In(in.Language), confidenceReaction, true
}

func greetingRule(in *Input) (string, int, bool) {
	phrase, ok := knowledge.MatchGreeting(in.Normalized)
	if !ok {
		return "", 0, false
	}
	return phrase.Reply.In(in.Language), confidenceGreeting, true
}

func videoRule(in *Input) (string, int, bool) {
	if _, ok := knowledge.ContainsAny(in.Normalized, knowledge.VideoInsteadOfPhoto); !ok {
		return "", 0, false
	}
	return knowledge.VideoReply.In(in.Language), confidenceFixed, true
}

func countryRule(in *Input) (string, int, bool) {
	country, ok := knowledge.DetectCountry(in.Normalized)
	if !ok {
		return "", 0, false
	}
	return knowledge.CountryReply(country, in.Language), confidenceCountry, true
}

func tellMeMoreRule(in *Input) (string, int, bool) {
	if _, ok := knowledge.ContainsAny(in.Normalized, knowledge.TellMeMore); !ok {
		return "", 0, false
	}
	return knowledge.Pitch.In(in.Language), confidenceFixed, true
}

func justWaitRule(in *Input) (string, int, bool) {
	if _, ok := knowledge.ContainsAny(in.Normalized, knowledge.JustWait); !ok {
		return "", 0, false
	}
	return knowledge.JustWaitReply.In(in.Language), confidenceFixed, true
}
