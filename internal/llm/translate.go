package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/domain"
	"recruitbot/internal/models"
	"recruitbot/internal/worker"
)

var languageNames = map[models.Language]string{
	models.LangRU: "Russian",
	models.LangUK: "Ukrainian",
	models.LangEN: "English",
}

// Translator translates training materials through the generation backend.
type Translator struct {
	backend domain.GenerationBackend
	policy  worker.RetryPolicy
	timeout time.Duration
}

func NewTranslator(backend domain.GenerationBackend, policy worker.RetryPolicy, timeout time.Duration) *Translator {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = 3
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = 2 * time.Second
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Translator{backend: backend, policy: policy, timeout: timeout}
}

func (t *Translator) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	name, ok := languageNames[target]
	if !ok {
		return "", worker.Permanent(models.ErrInvalidLanguage)
	}
	system := fmt.Sprintf("Translate the user's text to %s. Keep emoji, links and line breaks. Reply with the translation only.", name)

	return worker.Do(ctx, t.policy, func(ctx context.Context, _ int) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()

		out, err := t.backend.Complete(callCtx, system, text)
		if err != nil {
			if errors.Is(err, ErrNotInitialized) {
				return "", worker.Permanent(err)
			}
			return "", err
		}
		if out == "" {
			return "", errors.New("empty translation")
		}
		return out, nil
	})
}
