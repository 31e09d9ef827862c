package database

import (
	"context"
	"fmt"
	"testing"

	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_RecentInOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		role := models.RoleUser
		if i%2 == 0 {
			role = models.RoleBot
		}
		msg, err := models.NewMessage(10, role, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		require.NoError(t, db.AppendMessage(ctx, msg))
		assert.NotZero(t, msg.ID)
	}
	other, _ := models.NewMessage(11, models.RoleUser, "чужое")
	require.NoError(t, db.AppendMessage(ctx, other))

	recent, err := db.RecentMessages(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "msg 5", recent[0].Content)
	assert.Equal(t, "msg 7", recent[2].Content)
	assert.Equal(t, models.RoleBot, recent[1].Role)

	all, err := db.AllMessages(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	latest, err := db.ListMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "чужое", latest[0].Content)
}

func TestPendingQuestions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.GetPendingQuestion(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	q, err := models.NewPendingQuestion(5, "сколько платят?")
	require.NoError(t, err)
	require.NoError(t, db.SetPendingQuestion(ctx, q))

	// второй вопрос заменяет первый: не больше одного на пользователя
	q2, _ := models.NewPendingQuestion(5, "а когда выплаты?")
	require.NoError(t, db.SetPendingQuestion(ctx, q2))

	list, err := db.ListPendingQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "а когда выплаты?", list[0].Question)

	got, err := db.GetPendingQuestion(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "а когда выплаты?", got.Question)

	require.NoError(t, db.ClearPendingQuestion(ctx, 5))
	_, err = db.GetPendingQuestion(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	// очистка отсутствующего вопроса не ошибка
	assert.NoError(t, db.ClearPendingQuestion(ctx, 5))
}
