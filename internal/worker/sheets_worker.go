package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/database"
	"recruitbot/internal/domain"
	"recruitbot/internal/events"
	"recruitbot/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TaskUpsert       = "upsert"
	TaskUpdateStatus = "update_status"
)

const (
	taskStatusPending   = "pending"
	taskStatusRetry     = "retry"
	taskStatusCompleted = "completed"
	taskStatusFailed    = "failed"
)

// sheetTaskPayload is persisted in SyncTask.Payload as JSON.
type sheetTaskPayload struct {
	ApplicationID int64                    `json:"application_id"`
	Row           *models.ApplicationRow   `json:"row,omitempty"`
	Status        models.ApplicationStatus `json:"status,omitempty"`
}

// RowSource loads the current sheet row of an application.
type RowSource interface {
	GetApplicationRow(ctx context.Context, id int64) (*models.ApplicationRow, error)
}

// SheetsWorker consumes sync_queue tasks and applies them to Google Sheets.
type SheetsWorker struct {
	db            *database.DB
	sheets        domain.SheetsWriter
	rows          RowSource
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.SyncTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	callTimeout   time.Duration
	logger        *zerolog.Logger
}

// NewSheetsWorker builds a worker with sane defaults.
func NewSheetsWorker(db *database.DB, sheets domain.SheetsWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *SheetsWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	w := &SheetsWorker{
		db:            db,
		sheets:        sheets,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.SyncTask, models.WorkerQueueSize),
		redisQueueKey: "recruitbot:sheets:queue",
		deadLetterKey: "recruitbot:sheets:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
		callTimeout:   30 * time.Second,
		logger:        logger,
	}
	if db != nil {
		w.rows = db
	}
	return w
}

// Subscribe wires application lifecycle events to sheet tasks.
func (w *SheetsWorker) Subscribe(bus *events.EventBus) {
	bus.Subscribe(w.handleEvent,
		events.EventApplicationSubmitted,
		events.EventApplicationApproved,
		events.EventApplicationRejected,
	)
}

func (w *SheetsWorker) handleEvent(event *events.Event) error {
	var p events.ApplicationEventPayload
	if err := event.Decode(&p); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if event.Type == events.EventApplicationSubmitted {
		if w.rows == nil {
			return errors.New("row source is not configured")
		}
		row, err := w.rows.GetApplicationRow(ctx, p.ApplicationID)
		if err != nil {
			return fmt.Errorf("load application row %d: %w", p.ApplicationID, err)
		}
		return w.EnqueueTask(ctx, TaskUpsert, p.ApplicationID, row, "")
	}
	return w.EnqueueTask(ctx, TaskUpdateStatus, p.ApplicationID, nil, models.ApplicationStatus(p.Status))
}

// EnqueueTask persists task to DB and schedules it via redis or in-memory queue.
func (w *SheetsWorker) EnqueueTask(ctx context.Context, taskType string, applicationID int64, row *models.ApplicationRow, status models.ApplicationStatus) error {
	if taskType == "" {
		return errors.New("task type is required")
	}
	if applicationID == 0 && row != nil {
		applicationID = row.ApplicationID
	}
	if applicationID == 0 {
		return errors.New("application id is required")
	}

	payloadBytes, err := json.Marshal(sheetTaskPayload{
		ApplicationID: applicationID,
		Row:           row,
		Status:        status,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	syncTask := models.SyncTask{
		TaskType:      taskType,
		ApplicationID: applicationID,
		Payload:       string(payloadBytes),
		Status:        taskStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := w.db.CreateSyncTask(ctx, &syncTask); err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	if w.redis != nil {
		if err := w.pushRedis(ctx, w.redisQueueKey, &syncTask); err != nil {
			w.logger.Warn().Err(err).Int64("task_id", syncTask.ID).Msg("sheets_worker: redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- syncTask:
	default:
		w.logger.Warn().Int64("task_id", syncTask.ID).Msg("sheets_worker: in-memory queue full, task left for polling")
	}
	return nil
}

// Start launches main loop; stops when ctx is done.
func (w *SheetsWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("sheets_worker: started")
	defer w.logger.Info().Msg("sheets_worker: stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingSyncTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("sheets_worker: fetch pending")
			w.sleep(ctx)
			continue
		}
		if len(tasks) == 0 {
			w.sleep(ctx)
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *SheetsWorker) sleep(ctx context.Context) {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *SheetsWorker) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *SheetsWorker) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.logger.Warn().Err(err).Msg("sheets_worker: redis BRPOP error")
		}
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("sheets_worker: decode redis task")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *SheetsWorker) processTask(ctx context.Context, task *models.SyncTask) {
	payload, err := w.decodePayload(task.Payload)
	if err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, w.callTimeout)
	err = w.handleSheetTask(callCtx, task.TaskType, payload)
	cancel()
	if err != nil {
		if errors.Is(err, ErrPermanent) {
			w.failTask(ctx, task, err)
			return
		}
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, taskStatusCompleted, "", nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("sheets_worker: mark completed")
	}
}

func (w *SheetsWorker) handleSheetTask(ctx context.Context, taskType string, payload sheetTaskPayload) error {
	if w.sheets == nil {
		return Permanent(errors.New("sheets client is not configured"))
	}
	switch taskType {
	case TaskUpsert:
		if payload.Row == nil {
			return Permanent(errors.New("application row missing"))
		}
		return w.sheets.UpsertApplication(ctx, payload.Row)
	case TaskUpdateStatus:
		if payload.ApplicationID == 0 || payload.Status == "" {
			return Permanent(errors.New("application id or status missing"))
		}
		return w.sheets.UpdateApplicationStatus(ctx, payload.ApplicationID, payload.Status)
	default:
		return Permanent(fmt.Errorf("unknown task type: %s", taskType))
	}
}

func (w *SheetsWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		w.failTask(ctx, task, cause)
		return
	}

	nextTime := time.Now().Add(w.retryPolicy.NextDelay(attempt))
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, taskStatusRetry, cause.Error(), &nextTime); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("sheets_worker: mark retry")
	}
	w.logger.Warn().Err(cause).Int64("task_id", task.ID).Int("attempt", attempt).Time("next_retry_at", nextTime).
		Msg("sheets_worker: task will be retried")
}

func (w *SheetsWorker) failTask(ctx context.Context, task *models.SyncTask, cause error) {
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, taskStatusFailed, cause.Error(), nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("sheets_worker: mark failed")
	}
	w.logger.Error().Err(cause).Int64("task_id", task.ID).Int64("application_id", task.ApplicationID).
		Msg("sheets_worker: task failed")
	if w.redis != nil {
		if err := w.pushRedis(ctx, w.deadLetterKey, task); err != nil {
			w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("sheets_worker: deadletter push")
		}
	}
}

func (w *SheetsWorker) decodePayload(raw string) (sheetTaskPayload, error) {
	var payload sheetTaskPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (w *SheetsWorker) pushRedis(ctx context.Context, key string, task *models.SyncTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, key, data).Err()
}
