package database

import (
	"context"
	"fmt"
	"time"

	"recruitbot/internal/models"
)

// SaveGroupMessage сохраняет сообщение учебной группы; повтор того же message_id игнорируется.
func (db *DB) SaveGroupMessage(ctx context.Context, msg *models.GroupMessage) (bool, error) {
	if !msg.Kind.IsValid() {
		return false, models.ErrInvalidCategory
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO group_messages (message_id, kind, content, file_id, username, processed, created_at)
         VALUES (?, ?, ?, ?, ?, 0, ?)`,
		msg.MessageID, string(msg.Kind), msg.Content, msg.FileID, msg.Username, msg.CreatedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to save group message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (db *DB) UnprocessedGroupMessages(ctx context.Context, limit int) ([]*models.GroupMessage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT message_id, kind, content, file_id, username, processed, created_at
         FROM group_messages WHERE processed = 0 ORDER BY message_id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get group messages: %w", err)
	}
	defer rows.Close()

	var out []*models.GroupMessage
	for rows.Next() {
		var (
			m    models.GroupMessage
			kind string
		)
		if err := rows.Scan(&m.MessageID, &kind, &m.Content, &m.FileID, &m.Username, &m.Processed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group message: %w", err)
		}
		m.Kind = models.MaterialKind(kind)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (db *DB) MarkGroupMessageProcessed(ctx context.Context, messageID int64) error {
	res, err := db.ExecContext(ctx, `UPDATE group_messages SET processed = 1 WHERE message_id = ?`, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark group message: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("group message %d", messageID))
}

// GetStats собирает цифры для /stats и API.
func (db *DB) GetStats(ctx context.Context) (*models.Stats, error) {
	var s models.Stats
	queries := []struct {
		query string
		dest  interface{}
	}{
		{`SELECT COUNT(*) FROM users`, &s.TotalUsers},
		{`SELECT COUNT(*) FROM users WHERE status = 'registered'`, &s.Registered},
		{`SELECT COUNT(*) FROM applications WHERE status = 'pending'`, &s.Pending},
		{`SELECT COUNT(*) FROM applications WHERE status = 'approved'`, &s.Approved},
		{`SELECT COUNT(*) FROM applications WHERE status = 'rejected'`, &s.Rejected},
		{`SELECT COUNT(*) FROM pending_questions`, &s.OpenQuestions},
		{`SELECT COUNT(*) FROM learned_answers WHERE source = 'auto'`, &s.AutoAnswers},
		{`SELECT COUNT(*) FROM learned_answers WHERE source = 'admin'`, &s.AdminAnswers},
		{`SELECT COALESCE(AVG(confidence), 0) FROM learned_answers WHERE source = 'auto'`, &s.AvgConfidence},
	}
	for _, q := range queries {
		if err := db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to collect stats: %w", err)
		}
	}
	return &s, nil
}
