package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"recruitbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

// seedUser создает пользователя в нужном статусе.
func seedUser(t *testing.T, db *DB, id int64, status models.Status) *models.User {
	t.Helper()
	u, err := models.NewUser(id, fmt.Sprintf("user%d", id), "Test")
	require.NoError(t, err)
	u.Status = status
	require.NoError(t, db.SaveUser(context.Background(), u))
	return u
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
	assert.Equal(t, dbPath, db.Path())
}

func TestNewDB_NilLogger(t *testing.T) {
	db, err := NewDB(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	// повторное создание схемы не должно падать
	require.NoError(t, db.createTables())
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	assert.NoError(t, db.PingContext(context.Background()))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestClosedDB_ReturnsErrors(t *testing.T) {
	db := setupTestDB(t)
	db.Close()

	ctx := context.Background()

	_, err := db.GetUser(ctx, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Error(t, db.AppendMessage(ctx, &models.Message{UserID: 1, Role: models.RoleUser, Content: "hi"}))
	_, err = db.GetStats(ctx)
	assert.Error(t, err)
	assert.Error(t, db.CreateSyncTask(ctx, &models.SyncTask{}))
}
