package bot

import (
	"context"
	"strings"

	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// handleGroupMessage: сообщения рабочей группы сохраняются как сырьё для
// /analyze, а вступившие и пишущие в группу отмечаются как её участницы.
func (b *Bot) handleGroupMessage(ctx context.Context, msg *tgbotapi.Message) {
	for i := range msg.NewChatMembers {
		member := msg.NewChatMembers[i]
		if member.IsBot {
			continue
		}
		b.markGroupMember(ctx, &member)
	}
	if msg.From != nil && !msg.From.IsBot {
		b.markGroupMember(ctx, msg.From)
	}

	gm := groupMessageFrom(msg)
	if gm == nil {
		return
	}
	inserted, err := b.db.SaveGroupMessage(ctx, gm)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("message_id", gm.MessageID).Msg("Failed to capture group message")
		return
	}
	if inserted {
		zerolog.Ctx(ctx).Debug().Int64("message_id", gm.MessageID).Str("kind", string(gm.Kind)).Msg("Group message captured")
	}
}

// markGroupMember sets in_group and, where the table allows it, registers the user.
func (b *Bot) markGroupMember(ctx context.Context, from *tgbotapi.User) {
	if b.users.IsOperator(from.ID) {
		return
	}
	l := zerolog.Ctx(ctx)

	unlock := b.locks.lock(from.ID)
	defer unlock()

	user, _, err := b.users.EnsureUser(ctx, from.ID, from.UserName, from.FirstName)
	if err != nil {
		l.Error().Err(err).Int64("user_id", from.ID).Msg("Failed to load group member")
		return
	}
	if user.InGroup && user.Status == models.StatusRegistered {
		return
	}
	if !user.InGroup {
		if err := b.users.MarkInGroup(ctx, user); err != nil {
			l.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to mark group member")
			return
		}
	}
	if user.Status != models.StatusRegistered && onboarding.Can(user.Status, onboarding.EventGroupJoined) {
		if err := b.users.Advance(ctx, user, onboarding.EventGroupJoined); err != nil {
			l.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to register group member")
			return
		}
		l.Info().Int64("user_id", user.ID).Msg("User joined the working group")
	}
}

func groupMessageFrom(msg *tgbotapi.Message) *models.GroupMessage {
	gm := &models.GroupMessage{
		MessageID: int64(msg.MessageID),
		CreatedAt: msg.Time(),
	}
	if msg.From != nil {
		gm.Username = msg.From.UserName
	}

	switch {
	case msg.Voice != nil:
		gm.Kind, gm.FileID = models.MaterialAudio, msg.Voice.FileID
	case msg.Audio != nil:
		gm.Kind, gm.FileID = models.MaterialAudio, msg.Audio.FileID
	case msg.Video != nil:
		gm.Kind, gm.FileID = models.MaterialVideo, msg.Video.FileID
	case msg.VideoNote != nil:
		gm.Kind, gm.FileID = models.MaterialVideo, msg.VideoNote.FileID
	case strings.TrimSpace(msg.Text) != "":
		gm.Kind, gm.Content = models.MaterialText, msg.Text
	default:
		return nil
	}
	if gm.Kind != models.MaterialText {
		gm.Content = strings.TrimSpace(msg.Caption)
	}
	return gm
}
