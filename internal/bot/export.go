package bot

import (
	"context"
	"fmt"
	"os"
	"time"

	"recruitbot/internal/export"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// buildExport собирает отчёт для Excel из базы.
func (b *Bot) buildExport(ctx context.Context) (*export.Report, error) {
	apps, err := b.db.ListApplicationRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting applications: %w", err)
	}
	questions, err := b.db.ListPendingQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting pending questions: %w", err)
	}
	stats, err := b.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting stats: %w", err)
	}
	return &export.Report{
		Applications: apps,
		Questions:    questions,
		Stats:        stats,
		GeneratedAt:  time.Now(),
	}, nil
}

func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	l := zerolog.Ctx(ctx)
	b.sendText(chatID, "⏳ Формирую выгрузку...")

	report, err := b.buildExport(ctx)
	if err != nil {
		l.Error().Err(err).Msg("Failed to build export")
		b.sendText(chatID, "Ошибка при получении данных")
		return
	}

	dir := b.config.Exports.Path
	if dir == "" {
		dir = os.TempDir()
	}
	path, err := export.SaveFile(dir, report)
	if err != nil {
		l.Error().Err(err).Msg("Failed to save export")
		b.sendText(chatID, "Ошибка при создании файла")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("📊 Анкет: %d, открытых вопросов: %d", len(report.Applications), len(report.Questions))
	if _, err := b.tg.Send(doc); err != nil {
		l.Error().Err(err).Str("path", path).Msg("Failed to send export")
		b.sendText(chatID, "Ошибка при отправке файла")
		return
	}
	l.Info().Str("path", path).Int("applications", len(report.Applications)).Msg("Export sent")
}
