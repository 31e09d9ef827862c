package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"recruitbot/internal/domain"
	"recruitbot/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxMediaSize лимит Telegram Bot API на скачивание файлов.
const maxMediaSize = 20 * 1024 * 1024

var errMediaTooLarge = errors.New("media file is too large")

// AnalysisStore is the storage surface of the group analysis job.
type AnalysisStore interface {
	UnprocessedGroupMessages(ctx context.Context, limit int) ([]*models.GroupMessage, error)
	MarkGroupMessageProcessed(ctx context.Context, messageID int64) error
	SaveTrainingMaterial(ctx context.Context, m *models.TrainingMaterial) error
}

// FileDownloader fetches Telegram files by id.
type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// AnalysisReport summarizes one /analyze run.
type AnalysisReport struct {
	RunID        string
	Texts        int
	Audios       int
	Videos       int
	Translations int
	Failed       int
}

// Total returns the number of processed group messages.
func (r AnalysisReport) Total() int {
	return r.Texts + r.Audios + r.Videos
}

// ProgressFunc is called after each processed message.
type ProgressFunc func(done, total int)

// AnalysisJob turns captured group messages into training materials:
// audio and video are transcribed, Russian text is translated to uk and en.
type AnalysisJob struct {
	store       AnalysisStore
	files       FileDownloader
	transcriber domain.Transcriber
	translator  domain.Translator
	mediaDir    string
	concurrency int
	batchSize   int
	logger      *zerolog.Logger

	mu      sync.Mutex
	running bool
}

func NewAnalysisJob(store AnalysisStore, files FileDownloader, transcriber domain.Transcriber, translator domain.Translator,
	mediaDir string, concurrency int, logger *zerolog.Logger) *AnalysisJob {
	if concurrency < 1 {
		concurrency = 1
	}
	if mediaDir == "" {
		mediaDir = os.TempDir()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &AnalysisJob{
		store:       store,
		files:       files,
		transcriber: transcriber,
		translator:  translator,
		mediaDir:    mediaDir,
		concurrency: concurrency,
		batchSize:   500,
		logger:      logger,
	}
}

// ErrAnalysisRunning is returned when /analyze is issued twice.
var ErrAnalysisRunning = errors.New("analysis is already running")

// Run processes every unprocessed group message. Per-message failures are
// counted and logged; the message is still marked processed so a broken file
// does not block later runs.
func (j *AnalysisJob) Run(ctx context.Context, progress ProgressFunc) (AnalysisReport, error) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return AnalysisReport{}, ErrAnalysisRunning
	}
	j.running = true
	j.mu.Unlock()
	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	report := AnalysisReport{RunID: uuid.NewString()}
	log := j.logger.With().Str("run_id", report.RunID).Logger()

	msgs, err := j.store.UnprocessedGroupMessages(ctx, j.batchSize)
	if err != nil {
		return report, fmt.Errorf("load group messages: %w", err)
	}
	log.Info().Int("messages", len(msgs)).Msg("analysis started")

	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		translated, err := j.processMessage(ctx, msg)
		if err != nil {
			report.Failed++
			log.Error().Err(err).Int64("message_id", msg.MessageID).Str("kind", string(msg.Kind)).Msg("analysis: message failed")
		} else {
			switch msg.Kind {
			case models.MaterialAudio:
				report.Audios++
			case models.MaterialVideo:
				report.Videos++
			default:
				report.Texts++
			}
			report.Translations += translated
		}

		if err := j.store.MarkGroupMessageProcessed(ctx, msg.MessageID); err != nil {
			log.Error().Err(err).Int64("message_id", msg.MessageID).Msg("analysis: mark processed")
		}
		if progress != nil {
			progress(i+1, len(msgs))
		}
	}

	log.Info().Int("texts", report.Texts).Int("audios", report.Audios).Int("videos", report.Videos).
		Int("translations", report.Translations).Int("failed", report.Failed).Msg("analysis finished")
	return report, nil
}

func (j *AnalysisJob) processMessage(ctx context.Context, msg *models.GroupMessage) (int, error) {
	content := msg.Content
	if msg.Kind == models.MaterialAudio || msg.Kind == models.MaterialVideo {
		text, err := j.transcribe(ctx, msg)
		if err != nil {
			return 0, err
		}
		content = text
	}

	source, err := models.NewTrainingMaterial(msg.Kind, models.LangRU, content, msg.MessageID)
	if err != nil {
		return 0, err
	}
	if err := j.store.SaveTrainingMaterial(ctx, source); err != nil {
		return 0, err
	}

	return j.translate(ctx, msg, content), nil
}

func (j *AnalysisJob) transcribe(ctx context.Context, msg *models.GroupMessage) (string, error) {
	if j.transcriber == nil || j.files == nil {
		return "", errors.New("transcription is not configured")
	}

	data, err := j.files.DownloadFile(ctx, msg.FileID)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", msg.FileID, err)
	}
	if len(data) > maxMediaSize {
		return "", errMediaTooLarge
	}

	ext := ".ogg"
	if msg.Kind == models.MaterialVideo {
		ext = ".mp4"
	}
	path := filepath.Join(j.mediaDir, fmt.Sprintf("analysis_%d%s", msg.MessageID, ext))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	defer os.Remove(path)

	return j.transcriber.Transcribe(ctx, path)
}

// translate stores uk and en versions in parallel. A failed translation
// leaves the Russian material in place and is only logged.
func (j *AnalysisJob) translate(ctx context.Context, msg *models.GroupMessage, content string) int {
	if j.translator == nil {
		return 0
	}

	targets := []models.Language{models.LangUK, models.LangEN}
	results := make([]string, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, lang := range targets {
		g.Go(func() error {
			out, err := j.translator.Translate(gctx, content, lang)
			if err != nil {
				j.logger.Warn().Err(err).Int64("message_id", msg.MessageID).Str("lang", string(lang)).Msg("analysis: translation failed")
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	saved := 0
	for i, lang := range targets {
		if results[i] == "" {
			continue
		}
		m, err := models.NewTrainingMaterial(msg.Kind, lang, results[i], msg.MessageID)
		if err != nil {
			continue
		}
		if err := j.store.SaveTrainingMaterial(ctx, m); err != nil {
			j.logger.Error().Err(err).Int64("message_id", msg.MessageID).Msg("analysis: save translation")
			continue
		}
		saved++
	}
	return saved
}
