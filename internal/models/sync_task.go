package models

import "time"

// SyncTask represents a queued synchronization job for the applications sheet.
type SyncTask struct {
	ID            int64      `json:"id"`
	TaskType      string     `json:"task_type"`
	ApplicationID int64      `json:"application_id"`
	Payload       string     `json:"payload"`
	Status        string     `json:"status"`
	RetryCount    int        `json:"retry_count"`
	LastError     *string    `json:"last_error"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at"`
	NextRetryAt   *time.Time `json:"next_retry_at"`
}

// ApplicationRow is an application joined with its user, as exported to sheets.
type ApplicationRow struct {
	ApplicationID int64             `json:"application_id"`
	UserID        int64             `json:"user_id"`
	Username      string            `json:"username"`
	FirstName     string            `json:"first_name"`
	Language      Language          `json:"language"`
	WorkHours     string            `json:"work_hours"`
	Experience    string            `json:"experience"`
	Status        ApplicationStatus `json:"status"`
	PlatformID    string            `json:"platform_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
}

// NewApplicationRow flattens an application and its owner.
func NewApplicationRow(app *Application, user *User) *ApplicationRow {
	row := &ApplicationRow{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		WorkHours:     app.WorkHours,
		Experience:    app.Experience,
		Status:        app.Status,
		CreatedAt:     app.CreatedAt,
		DecidedAt:     app.DecidedAt,
	}
	if user != nil {
		row.Username = user.Username
		row.FirstName = user.FirstName
		row.Language = user.Language
		row.PlatformID = user.PlatformID
	}
	return row
}
