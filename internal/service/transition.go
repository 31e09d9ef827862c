package service

import (
	"context"
	"time"

	"recruitbot/internal/domain"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/rs/zerolog"
)

// escalationTimeout bounds the writes of an escalation that outlive the handler context.
const escalationTimeout = 10 * time.Second

// detached keeps ctx values (logger, request id) but not its deadline or cancellation.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), escalationTimeout)
}

type statusWriter interface {
	UpdateUserStatus(ctx context.Context, id int64, status models.Status) error
}

// advance moves user through the onboarding table and persists a changed status.
func advance(ctx context.Context, store statusWriter, user *models.User, event onboarding.Event) error {
	next, err := onboarding.Next(user.Status, event)
	if err != nil {
		return err
	}
	if next == user.Status {
		return nil
	}
	if err := store.UpdateUserStatus(ctx, user.ID, next); err != nil {
		return err
	}
	user.Status = next
	return nil
}

// recordReplies appends bot replies to the history; failures only lose context.
func recordReplies(ctx context.Context, store domain.MessageStore, logger *zerolog.Logger, userID int64, replies ...string) {
	for _, text := range replies {
		msg, err := models.NewMessage(userID, models.RoleBot, text)
		if err != nil {
			continue
		}
		if err := store.AppendMessage(ctx, msg); err != nil {
			logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to store bot message")
		}
	}
}

func nopIfNil(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return logger
}
