package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"recruitbot/internal/metrics"
	"recruitbot/internal/models"
)

// Gate applies the global confidence threshold.
type Gate struct {
	Threshold int
}

// Apply clamps confidence and forces escalation below the threshold.
func (g Gate) Apply(res *Result) *Result {
	threshold := g.Threshold
	if threshold <= 0 {
		threshold = models.ConfidenceThreshold
	}
	res.Confidence = clamp(res.Confidence)
	if res.Confidence < threshold {
		res.Escalate = true
	}
	return res
}

// Pipeline tries tiers in order; the first opinion is gated and returned.
type Pipeline struct {
	tiers  []Resolver
	gate   Gate
	logger *zerolog.Logger
}

func NewPipeline(gate Gate, logger *zerolog.Logger, tiers ...Resolver) *Pipeline {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &Pipeline{tiers: tiers, gate: gate, logger: logger}
}

// Resolve never returns nil. Without any opinion the question escalates.
func (p *Pipeline) Resolve(ctx context.Context, in *Input) *Result {
	for _, tier := range p.tiers {
		res, ok := p.try(ctx, tier, in)
		if !ok || res == nil {
			continue
		}
		if res.Language == "" {
			res.Language = in.Language
		}
		if res.Tier == "" {
			res.Tier = tier.Name()
		}
		res = p.gate.Apply(res)
		metrics.ObserveResolution(string(res.Tier), res.Escalate)
		p.logger.Debug().
			Int64("user_id", in.UserID).
			Str("tier", string(res.Tier)).
			Str("rule", res.Rule).
			Int("confidence", res.Confidence).
			Bool("escalate", res.Escalate).
			Msg("question resolved")
		return res
	}

	res := p.gate.Apply(&Result{Language: in.Language, Escalate: true, Tier: TierNone})
	metrics.ObserveResolution(string(TierNone), true)
	return res
}

// try turns a panicking tier into "no opinion".
func (p *Pipeline) try(ctx context.Context, tier Resolver, in *Input) (res *Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("tier", string(tier.Name())).Err(fmt.Errorf("panic: %v", r)).Msg("resolver tier failed")
			res, ok = nil, false
		}
	}()
	return tier.TryResolve(ctx, in)
}
