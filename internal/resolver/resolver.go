// Package resolver turns a user question into an answer, a confidence and an
// escalation decision. Tiers are tried in order and the first one with an
// opinion wins.
package resolver

import (
	"context"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"
)

type Tier string

const (
	TierForbidden  Tier = "forbidden"
	TierDirect     Tier = "direct"
	TierContextual Tier = "contextual"
	TierGenerative Tier = "generative"
	TierNone       Tier = "none"
)

// Input is everything a tier may look at. History excludes the message being
// resolved and is ordered oldest first.
type Input struct {
	UserID     int64
	Text       string
	Normalized string
	Language   models.Language
	Status     models.Status
	InGroup    bool
	History    []*models.Message
}

// NewInput normalizes text once for all tiers.
func NewInput(userID int64, text string, lang models.Language, status models.Status, inGroup bool, history []*models.Message) *Input {
	return &Input{
		UserID:     userID,
		Text:       text,
		Normalized: knowledge.Normalize(text),
		Language:   lang,
		Status:     status,
		InGroup:    inGroup,
		History:    history,
	}
}

// Category scopes FAQ retrieval; group members count as working.
func (in *Input) Category() models.Category {
	return onboarding.CategoryFor(in.Status, in.InGroup)
}

// Recent returns the last n history messages.
func (in *Input) Recent(n int) []*models.Message {
	if len(in.History) <= n {
		return in.History
	}
	return in.History[len(in.History)-n:]
}

type Result struct {
	Answer     string          `json:"answer"`
	Confidence int             `json:"confidence"`
	Escalate   bool            `json:"escalate"`
	Language   models.Language `json:"language"`
	Tier       Tier            `json:"tier"`
	Rule       string          `json:"rule,omitempty"`
}

// Resolver is one tier of the cascade. ok=false means no opinion.
type Resolver interface {
	Name() Tier
	TryResolve(ctx context.Context, in *Input) (*Result, bool)
}
