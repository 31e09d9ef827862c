package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/models"
)

const userColumns = `id, username, first_name, status, language, language_locked,
	photos_count, in_group, platform_id, hidden_at, last_activity, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u      models.User
		status string
		lang   string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &status, &lang, &u.LanguageLocked,
		&u.PhotosCount, &u.InGroup, &u.PlatformID, &u.HiddenAt, &u.LastActivity, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.Status, err = models.ParseStatus(status); err != nil {
		return nil, err
	}
	if u.Language, err = models.ParseLanguage(lang); err != nil {
		u.Language = models.DefaultLanguage
	}
	return &u, nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	u, err := scanUser(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// SaveUser создает пользователя или перезаписывает все его поля.
func (db *DB) SaveUser(ctx context.Context, user *models.User) error {
	if user.ID <= 0 {
		return models.ErrInvalidUserID
	}
	if !user.Status.IsValid() {
		return models.ErrInvalidStatus
	}
	query := `INSERT INTO users (` + userColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(id) DO UPDATE SET
                username = excluded.username,
                first_name = excluded.first_name,
                status = excluded.status,
                language = excluded.language,
                language_locked = excluded.language_locked,
                photos_count = excluded.photos_count,
                in_group = excluded.in_group,
                platform_id = excluded.platform_id,
                hidden_at = excluded.hidden_at,
                last_activity = excluded.last_activity`
	now := time.Now().UTC()
	lastActivity := user.LastActivity
	if lastActivity.IsZero() {
		lastActivity = now
	}
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	lang := user.Language
	if !lang.IsValid() {
		lang = models.DefaultLanguage
	}
	_, err := db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		string(user.Status),
		string(lang),
		user.LanguageLocked,
		user.PhotosCount,
		user.InGroup,
		user.PlatformID,
		user.HiddenAt,
		lastActivity.UTC(),
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (db *DB) UpdateUserStatus(ctx context.Context, id int64, status models.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	res, err := db.ExecContext(ctx, `UPDATE users SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("user %d", id))
}

func (db *DB) SetUserLanguage(ctx context.Context, id int64, lang models.Language, locked bool) error {
	if !lang.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidLanguage, lang)
	}
	res, err := db.ExecContext(ctx, `UPDATE users SET language = ?, language_locked = ? WHERE id = ?`,
		string(lang), locked, id)
	if err != nil {
		return fmt.Errorf("failed to update user language: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("user %d", id))
}

// TouchUser отмечает активность и снимает скрытие.
func (db *DB) TouchUser(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `UPDATE users SET last_activity = ?, hidden_at = NULL WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}

func (db *DB) SetInGroup(ctx context.Context, id int64, inGroup bool) error {
	res, err := db.ExecContext(ctx, `UPDATE users SET in_group = ? WHERE id = ?`, inGroup, id)
	if err != nil {
		return fmt.Errorf("failed to update group flag: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("user %d", id))
}

func (db *DB) SetPlatformID(ctx context.Context, id int64, platformID string) error {
	res, err := db.ExecContext(ctx, `UPDATE users SET platform_id = ? WHERE id = ?`, platformID, id)
	if err != nil {
		return fmt.Errorf("failed to update platform id: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("user %d", id))
}

// AddPhotos сохраняет пачку фото целиком или не сохраняет ничего, если превышен max.
// Возвращает текущее число фото пользователя.
func (db *DB) AddPhotos(ctx context.Context, userID int64, fileIDs []string, max int) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, `SELECT photos_count FROM users WHERE id = ?`, userID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read photos count: %w", err)
	}

	if count+len(fileIDs) > max {
		return count, ErrTooManyPhotos
	}

	now := time.Now().UTC()
	for _, fileID := range fileIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO photos (user_id, file_id, created_at) VALUES (?, ?, ?)`,
			userID, fileID, now); err != nil {
			return count, fmt.Errorf("failed to insert photo: %w", err)
		}
	}

	count += len(fileIDs)
	if _, err := tx.ExecContext(ctx, `UPDATE users SET photos_count = ? WHERE id = ?`, count, userID); err != nil {
		return 0, fmt.Errorf("failed to update photos count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit photos: %w", err)
	}
	return count, nil
}

func (db *DB) GetPhotos(ctx context.Context, userID int64) ([]*models.Photo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, file_id, created_at FROM photos WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.FileID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY last_activity DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// HideInactive скрывает пользователей в указанных статусах, не писавших с before.
func (db *DB) HideInactive(ctx context.Context, statuses []models.Status, before time.Time) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(statuses)+2)
	args = append(args, time.Now().UTC())
	for _, s := range statuses {
		args = append(args, string(s))
	}
	args = append(args, before.UTC())

	query := `UPDATE users SET hidden_at = ?
              WHERE hidden_at IS NULL AND status IN (` + placeholders(len(statuses)) + `) AND last_activity < ?`
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to hide inactive users: %w", err)
	}
	return res.RowsAffected()
}
