package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"recruitbot/internal/domain"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/metrics"
	"recruitbot/internal/models"
	"recruitbot/internal/worker"
)

var (
	errErrorContent = errors.New("backend returned error content")
	errEmptyVerdict = errors.New("zero confidence without escalation")
)

// ContextSource supplies retrieval context for the prompt.
type ContextSource interface {
	ListKnowledge(ctx context.Context, category models.Category, limit int) ([]*models.KnowledgeEntry, error)
	ListTrainingMaterials(ctx context.Context) ([]*models.TrainingMaterial, error)
	RecentLearnedAnswers(ctx context.Context, limit int) ([]*models.LearnedAnswer, error)
}

type GenerativeConfig struct {
	Timeout   time.Duration
	Retry     worker.RetryPolicy
	Threshold int
}

// GenerativeResolver is the last tier. It always has an opinion: on failure
// it forces escalation.
type GenerativeResolver struct {
	backend domain.GenerationBackend
	source  ContextSource
	cfg     GenerativeConfig
	logger  *zerolog.Logger
}

func NewGenerativeResolver(backend domain.GenerationBackend, source ContextSource, cfg GenerativeConfig, logger *zerolog.Logger) *GenerativeResolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.InitialDelay <= 0 {
		cfg.Retry.InitialDelay = 2 * time.Second
	}
	if cfg.Retry.BackoffFactor <= 0 {
		cfg.Retry.BackoffFactor = 1
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = models.ConfidenceThreshold
	}
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &GenerativeResolver{backend: backend, source: source, cfg: cfg, logger: logger}
}

func (r *GenerativeResolver) Name() Tier { return TierGenerative }

func (r *GenerativeResolver) TryResolve(ctx context.Context, in *Input) (*Result, bool) {
	system := SystemPrompt(in.Language)
	user := buildUserPrompt(in, r.loadContext(ctx, in))

	res, err := worker.Do(ctx, r.cfg.Retry, func(ctx context.Context, attempt int) (*Result, error) {
		return r.attempt(ctx, in, system, user, attempt)
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", in.UserID).Msg("generation exhausted, escalating")
		return &Result{Language: in.Language, Escalate: true, Tier: TierGenerative, Rule: "exhausted"}, true
	}
	return res, true
}

func (r *GenerativeResolver) attempt(ctx context.Context, in *Input, system, user string, attempt int) (*Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := r.backend.Complete(callCtx, system, user)
	took := time.Since(start)

	log := r.logger.With().Int64("user_id", in.UserID).Int("attempt", attempt).Dur("took", took).Logger()
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)):
		metrics.ObserveGeneration("timeout", took)
		log.Warn().Err(err).Msg("generation timeout")
		return nil, err
	case err != nil:
		metrics.ObserveGeneration("error", took)
		log.Warn().Err(err).Msg("generation failed")
		return nil, err
	case isErrorContent(raw):
		metrics.ObserveGeneration("invalid", took)
		log.Warn().Str("content", raw).Msg("generation returned error content")
		return nil, errErrorContent
	}

	res := parseGeneration(raw, in, r.cfg.Threshold)
	if res.Confidence == 0 && (!res.Escalate || res.Rule == ruleEmptyAnswer) {
		metrics.ObserveGeneration("invalid", took)
		return nil, errEmptyVerdict
	}
	metrics.ObserveGeneration("ok", took)
	log.Debug().Int("confidence", res.Confidence).Bool("escalate", res.Escalate).Str("mode", res.Rule).Msg("generation done")
	return res, nil
}

func (r *GenerativeResolver) loadContext(ctx context.Context, in *Input) promptContext {
	pc := promptContext{Blocks: knowledge.FindBlocks(in.Normalized, in.Language)}
	if r.source == nil {
		return pc
	}

	var err error
	if pc.CategoryFAQ, err = r.source.ListKnowledge(ctx, in.Category(), promptCategoryFAQ); err != nil {
		r.logger.Warn().Err(err).Msg("load category faq")
	}
	if pc.AllFAQ, err = r.source.ListKnowledge(ctx, "", promptAllFAQ); err != nil {
		r.logger.Warn().Err(err).Msg("load faq")
	}
	materials, err := r.source.ListTrainingMaterials(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("load training materials")
	}
	pc.Materials = knowledge.SelectMaterials(in.Text, in.Language, materials)
	if pc.Learned, err = r.source.RecentLearnedAnswers(ctx, promptLearned); err != nil {
		r.logger.Warn().Err(err).Msg("load learned answers")
	}
	return pc
}
