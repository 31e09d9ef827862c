package service

import (
	"context"
	"testing"

	"recruitbot/internal/database"
	"recruitbot/internal/events"
	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff_EscalatePersistsBeforeNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 20, models.StatusChatting)

	// операторы недоступны, но вопрос не теряется
	f.notifier.err = assert.AnError
	require.NoError(t, f.handoff.Escalate(ctx, user, "сколько платят за смену?"))

	q, err := f.db.GetPendingQuestion(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, "сколько платят за смену?", q.Question)
	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, models.StatusWaitingAdmin, f.reload(t, 20).Status)
	assert.Contains(t, f.published(), events.EventQuestionEscalated)

	st, err := f.state.GetUserState(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusChatting), st.GetString(models.StateKeyReturnStatus))
}

func TestHandoff_EscalateKeepsRegistrationStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 21, models.StatusHelpingRegistration)

	require.NoError(t, f.handoff.Escalate(ctx, user, "не приходит код"))
	assert.Equal(t, models.StatusHelpingRegistration, f.reload(t, 21).Status)
	assert.Equal(t, []string{"escalation"}, f.notifier.kinds())

	// в pending_review эскалация не меняет статус, но вопрос сохраняется
	reviewed := f.seedUser(t, 22, models.StatusPendingReview)
	require.NoError(t, f.handoff.Escalate(ctx, reviewed, "когда ответ?"))
	assert.Equal(t, models.StatusPendingReview, f.reload(t, 22).Status)
	_, err := f.db.GetPendingQuestion(ctx, 22)
	assert.NoError(t, err)
}

func TestHandoff_ReplyResumesOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin models.Status
		want   models.Status
	}{
		{"chatting", models.StatusChatting, models.StatusChatting},
		{"waiting photos", models.StatusWaitingPhotos, models.StatusChatting},
		{"registered", models.StatusRegistered, models.StatusRegistered},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			id := int64(30 + i)
			user := f.seedUser(t, id, tt.origin)

			require.NoError(t, f.handoff.Escalate(ctx, user, "вопрос"))
			require.Equal(t, models.StatusWaitingAdmin, f.reload(t, id).Status)

			got, question, err := f.handoff.Reply(ctx, testOperator, id, "ответ оператора")
			require.NoError(t, err)
			assert.Equal(t, "вопрос", question)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, tt.want, f.reload(t, id).Status)

			_, err = f.db.GetPendingQuestion(ctx, id)
			assert.ErrorIs(t, err, database.ErrNotFound)

			learned, err := f.db.RecentLearnedAnswers(ctx, 5)
			require.NoError(t, err)
			require.Len(t, learned, 1)
			assert.Equal(t, models.SourceAdmin, learned[0].Source)
			assert.Equal(t, 100, learned[0].Confidence)

			history, err := f.db.AllMessages(ctx, id)
			require.NoError(t, err)
			require.NotEmpty(t, history)
			assert.Equal(t, "ответ оператора", history[len(history)-1].Content)
			assert.Contains(t, f.published(), events.EventQuestionAnswered)
		})
	}
}

func TestHandoff_ReplyWithoutQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, 40, models.StatusRegistered)

	user, question, err := f.handoff.Reply(ctx, testOperator, 40, "напоминаю про смену")
	require.NoError(t, err)
	assert.Empty(t, question)
	assert.Equal(t, models.StatusRegistered, user.Status)

	learned, err := f.db.RecentLearnedAnswers(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, learned)

	_, _, err = f.handoff.Reply(ctx, testOperator, 404, "кто здесь?")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestHandoff_FollowUp(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 41, models.StatusWaitingAdmin)

	require.NoError(t, f.handoff.FollowUp(context.Background(), user, "и ещё вопрос"))
	assert.Equal(t, []string{"follow_up"}, f.notifier.kinds())
}
