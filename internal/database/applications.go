package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/models"
)

func (db *DB) CreateApplication(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO applications (user_id, work_hours, experience, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		app.UserID, app.WorkHours, app.Experience, string(app.Status), app.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	app.ID = id
	return nil
}

func (db *DB) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	var (
		app    models.Application
		status string
	)
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, work_hours, experience, status, decided_by, created_at, decided_at
         FROM applications WHERE id = ?`, id).
		Scan(&app.ID, &app.UserID, &app.WorkHours, &app.Experience, &status, &app.DecidedBy, &app.CreatedAt, &app.DecidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	app.Status = models.ApplicationStatus(status)
	return &app, nil
}

// DecideApplication принимает решение только по заявке в статусе pending:
// два оператора, нажавшие кнопки одновременно, не перезапишут друг друга.
func (db *DB) DecideApplication(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64) error {
	return db.decide(ctx, id, status, decidedBy, "")
}

// DecideAndAdvance записывает решение и новый статус автора заявки одной транзакцией.
// Если статус пользователя не обновился, заявка остается pending.
func (db *DB) DecideAndAdvance(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64, userStatus models.Status) error {
	if !userStatus.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, userStatus)
	}
	return db.decide(ctx, id, status, decidedBy, userStatus)
}

func (db *DB) decide(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64, userStatus models.Status) error {
	if status != models.ApplicationApproved && status != models.ApplicationRejected {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = ?, decided_by = ?, decided_at = ? WHERE id = ? AND status = ?`,
		string(status), decidedBy, time.Now().UTC(), id, string(models.ApplicationPending))
	if err != nil {
		return fmt.Errorf("failed to decide application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM applications WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("application %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get application: %w", err)
		}
		return fmt.Errorf("application %d: %w", id, ErrAlreadyDecided)
	}

	if userStatus != "" {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET status = ? WHERE id = (SELECT user_id FROM applications WHERE id = ?)`,
			string(userStatus), id)
		if err != nil {
			return fmt.Errorf("failed to update user status: %w", err)
		}
		if err := checkAffected(res, fmt.Sprintf("user of application %d", id)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decision: %w", err)
	}
	return nil
}

const applicationRowQuery = `SELECT a.id, a.user_id, COALESCE(u.username, ''), COALESCE(u.first_name, ''),
                COALESCE(u.language, 'ru'), a.work_hours, a.experience, a.status,
                COALESCE(u.platform_id, ''), a.created_at, a.decided_at
         FROM applications a LEFT JOIN users u ON u.id = a.user_id`

// GetApplicationRow отдает заявку вместе с данными пользователя для таблицы.
func (db *DB) GetApplicationRow(ctx context.Context, id int64) (*models.ApplicationRow, error) {
	rows, err := db.queryApplicationRows(ctx, applicationRowQuery+` WHERE a.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	return rows[0], nil
}

func (db *DB) ListApplicationRows(ctx context.Context) ([]*models.ApplicationRow, error) {
	return db.queryApplicationRows(ctx, applicationRowQuery+` ORDER BY a.id DESC`)
}

func (db *DB) queryApplicationRows(ctx context.Context, query string, args ...interface{}) ([]*models.ApplicationRow, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var out []*models.ApplicationRow
	for rows.Next() {
		var (
			r            models.ApplicationRow
			lang, status string
		)
		if err := rows.Scan(&r.ApplicationID, &r.UserID, &r.Username, &r.FirstName, &lang,
			&r.WorkHours, &r.Experience, &status, &r.PlatformID, &r.CreatedAt, &r.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		r.Language = models.Language(lang)
		r.Status = models.ApplicationStatus(status)
		out = append(out, &r)
	}
	return out, rows.Err()
}
