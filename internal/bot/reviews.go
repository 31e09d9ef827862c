package bot

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Telegram принимает в альбоме не больше 10 файлов.
const mediaGroupLimit = 10

var reviewExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// sendReviews отправляет скриншоты отзывов из каталога; без картинок отвечает текстом.
func (b *Bot) sendReviews(ctx context.Context, user *models.User) {
	lang := user.ReplyLanguage("")
	images := reviewImages(b.config.Knowledge.ReviewsDir)
	if len(images) == 0 {
		b.reply(ctx, user.ID, knowledge.ReviewsFallback.In(lang))
		return
	}

	b.reply(ctx, user.ID, knowledge.ReviewsIntro.In(lang))
	for start := 0; start < len(images); start += mediaGroupLimit {
		end := start + mediaGroupLimit
		if end > len(images) {
			end = len(images)
		}
		if err := b.sendLocalPhotos(user.ID, images[start:end]); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", user.ID).Msg("Failed to send review images")
			break
		}
	}
	b.reply(ctx, user.ID, knowledge.ReviewsOutro.In(lang))
}

func (b *Bot) sendLocalPhotos(chatID int64, paths []string) error {
	if len(paths) == 1 {
		_, err := b.tg.Send(tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(paths[0])))
		return err
	}
	media := make([]interface{}, 0, len(paths))
	for _, p := range paths {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(p)))
	}
	_, err := b.tg.Request(tgbotapi.NewMediaGroup(chatID, media))
	return err
}

// reviewImages lists images in dir sorted by name; a missing dir yields none.
func reviewImages(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !reviewExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out
}
