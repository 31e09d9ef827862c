package bot

import (
	"context"
	"runtime/debug"
	"time"
)

func (b *Bot) withRecovery(handler func()) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.ErrorsTotal.Inc()
			}
			b.logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic in update handler")
		}
	}()
	handler()
}

// goBackground runs fn detached from the update, under the bot's root context.
func (b *Bot) goBackground(name string, timeout time.Duration, fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(b.bgCtx, timeout)
		defer cancel()
		b.withRecovery(func() {
			b.logger.Debug().Str("job", name).Msg("background job started")
			fn(ctx)
		})
	}()
}
