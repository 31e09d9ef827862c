package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/models"
)

func (db *DB) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO messages (user_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		msg.UserID, string(msg.Role), msg.Content, msg.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	msg.ID, _ = res.LastInsertId()
	return nil
}

// RecentMessages возвращает последние limit сообщений в хронологическом порядке.
func (db *DB) RecentMessages(ctx context.Context, userID int64, limit int) ([]*models.Message, error) {
	query := `SELECT id, user_id, role, content, created_at FROM (
                SELECT id, user_id, role, content, created_at FROM messages
                WHERE user_id = ? ORDER BY id DESC LIMIT ?
              ) ORDER BY id ASC`
	return db.queryMessages(ctx, query, userID, limit)
}

func (db *DB) AllMessages(ctx context.Context, userID int64) ([]*models.Message, error) {
	query := `SELECT id, user_id, role, content, created_at FROM messages WHERE user_id = ? ORDER BY id ASC`
	return db.queryMessages(ctx, query, userID)
}

// ListMessages отдает последние сообщения всех пользователей (для выгрузки).
func (db *DB) ListMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	query := `SELECT id, user_id, role, content, created_at FROM messages ORDER BY id DESC LIMIT ?`
	return db.queryMessages(ctx, query, limit)
}

func (db *DB) queryMessages(ctx context.Context, query string, args ...interface{}) ([]*models.Message, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var (
			m    models.Message
			role string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = models.Role(role)
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// SetPendingQuestion заменяет открытый вопрос пользователя.
func (db *DB) SetPendingQuestion(ctx context.Context, q *models.PendingQuestion) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO pending_questions (user_id, question, created_at) VALUES (?, ?, ?)
         ON CONFLICT(user_id) DO UPDATE SET question = excluded.question, created_at = excluded.created_at`,
		q.UserID, q.Question, q.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save pending question: %w", err)
	}
	return nil
}

func (db *DB) GetPendingQuestion(ctx context.Context, userID int64) (*models.PendingQuestion, error) {
	var q models.PendingQuestion
	err := db.QueryRowContext(ctx,
		`SELECT user_id, question, created_at FROM pending_questions WHERE user_id = ?`, userID).
		Scan(&q.UserID, &q.Question, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pending question of %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending question: %w", err)
	}
	return &q, nil
}

func (db *DB) ClearPendingQuestion(ctx context.Context, userID int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM pending_questions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear pending question: %w", err)
	}
	return nil
}

func (db *DB) ListPendingQuestions(ctx context.Context) ([]*models.PendingQuestion, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id, question, created_at FROM pending_questions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending questions: %w", err)
	}
	defer rows.Close()

	var out []*models.PendingQuestion
	for rows.Next() {
		var q models.PendingQuestion
		if err := rows.Scan(&q.UserID, &q.Question, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending question: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}
