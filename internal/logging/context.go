package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrNop подставляет пустой логгер вместо nil.
func OrNop(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}

// WithRequest создает дочерний логгер с request_id и кладет его в контекст.
// Достать его можно через zerolog.Ctx(ctx).
func WithRequest(ctx context.Context, base *zerolog.Logger, fields map[string]interface{}) (context.Context, *zerolog.Logger) {
	lc := OrNop(base).With().Str("request_id", uuid.NewString())
	if len(fields) > 0 {
		lc = lc.Fields(fields)
	}
	l := lc.Logger()
	return l.WithContext(ctx), &l
}

// RunID генерирует идентификатор фонового прогона (анализ, бэкап).
func RunID() string {
	return uuid.NewString()
}
