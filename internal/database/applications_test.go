package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"recruitbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_Decide(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	seedUser(t, db, 21, models.StatusPendingReview)

	app, err := models.NewApplication(21, "4-5 часов", "нет опыта")
	require.NoError(t, err)
	require.NoError(t, db.CreateApplication(ctx, app))
	require.NotZero(t, app.ID)

	require.NoError(t, db.DecideApplication(ctx, app.ID, models.ApplicationApproved, 100))

	got, err := db.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, got.Status)
	assert.Equal(t, int64(100), got.DecidedBy)
	require.NotNil(t, got.DecidedAt)

	// второе решение отклоняется
	err = db.DecideApplication(ctx, app.ID, models.ApplicationRejected, 200)
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	err = db.DecideApplication(ctx, 9999, models.ApplicationRejected, 200)
	assert.ErrorIs(t, err, ErrNotFound)

	err = db.DecideApplication(ctx, app.ID, models.ApplicationPending, 200)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestApplication_DecideAndAdvance(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	// автора заявки нет: статус не обновить, решение откатывается
	orphan, _ := models.NewApplication(24, "днем", "нет")
	require.NoError(t, db.CreateApplication(ctx, orphan))
	err := db.DecideAndAdvance(ctx, orphan.ID, models.ApplicationApproved, 100, models.StatusHelpingRegistration)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := db.GetApplication(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, got.Status)

	// после появления пользователя повтор проходит
	seedUser(t, db, 24, models.StatusPendingReview)
	require.NoError(t, db.DecideAndAdvance(ctx, orphan.ID, models.ApplicationApproved, 100, models.StatusHelpingRegistration))
	got, err = db.GetApplication(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, got.Status)
	u, err := db.GetUser(ctx, 24)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHelpingRegistration, u.Status)

	err = db.DecideAndAdvance(ctx, orphan.ID, models.ApplicationRejected, 200, models.StatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	u, err = db.GetUser(ctx, 24)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHelpingRegistration, u.Status)

	err = db.DecideAndAdvance(ctx, orphan.ID, models.ApplicationRejected, 200, models.Status("bogus"))
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestApplication_ConcurrentDecisions(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(t.TempDir(), "decide.db"), &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seedUser(t, db, 22, models.StatusPendingReview)

	app, _ := models.NewApplication(22, "весь день", "да")
	require.NoError(t, db.CreateApplication(ctx, app))

	const operators = 8
	var wg sync.WaitGroup
	results := make(chan error, operators)
	for i := 0; i < operators; i++ {
		wg.Add(1)
		go func(op int64) {
			defer wg.Done()
			status := models.ApplicationApproved
			if op%2 == 0 {
				status = models.ApplicationRejected
			}
			results <- db.DecideApplication(ctx, app.ID, status, op)
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	}
	assert.Equal(t, 1, wins)
}

func TestApplicationRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	u := seedUser(t, db, 23, models.StatusPendingReview)
	u.PlatformID = "5551234"
	u.Language = models.LangEN
	require.NoError(t, db.SaveUser(ctx, u))

	app, _ := models.NewApplication(23, "evenings", "yes")
	require.NoError(t, db.CreateApplication(ctx, app))

	row, err := db.GetApplicationRow(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "user23", row.Username)
	assert.Equal(t, models.LangEN, row.Language)
	assert.Equal(t, "5551234", row.PlatformID)
	assert.Equal(t, models.ApplicationPending, row.Status)
	assert.Nil(t, row.DecidedAt)

	rows, err := db.ListApplicationRows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = db.GetApplicationRow(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
