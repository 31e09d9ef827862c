package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recruitbot/internal/config"
	"recruitbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService(t *testing.T) {
	tempDir := t.TempDir()
	storagePath := filepath.Join(tempDir, "backups")

	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(tempDir, "source.db"), &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seedUser(t, db, 1, models.StatusRegistered)

	cfg := config.BackupConfig{
		Enabled:       true,
		StoragePath:   storagePath,
		RetentionDays: 1,
	}
	s := NewBackupService(db, cfg, &logger)

	var backupPath string
	t.Run("PerformBackup", func(t *testing.T) {
		backupPath, err = s.PerformBackup(ctx)
		require.NoError(t, err)
		assert.FileExists(t, backupPath)
		assert.True(t, strings.HasPrefix(filepath.Base(backupPath), backupPrefix))

		// копия открывается и содержит пользователя
		restored, err := NewDB(backupPath, &logger)
		require.NoError(t, err)
		defer restored.Close()
		u, err := restored.GetUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRegistered, u.Status)
	})

	t.Run("CleanupOldBackups", func(t *testing.T) {
		oldFile := filepath.Join(storagePath, backupPrefix+"old.db")
		require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0o644))
		foreign := filepath.Join(storagePath, "notes.txt")
		require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0o644))

		oldTime := time.Now().AddDate(0, 0, -2)
		require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))
		require.NoError(t, os.Chtimes(foreign, oldTime, oldTime))

		assert.Equal(t, 1, s.CleanupOldBackups())
		assert.NoFileExists(t, oldFile)
		assert.FileExists(t, foreign)
		assert.FileExists(t, backupPath)
	})
}

func TestBackupService_Disabled(t *testing.T) {
	logger := zerolog.Nop()
	s := NewBackupService(setupTestDB(t), config.BackupConfig{Enabled: false}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Start(ctx)

	assert.Zero(t, s.CleanupOldBackups())
}
