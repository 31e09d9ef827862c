package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recruitbot/internal/models"
	"recruitbot/internal/service"
	"recruitbot/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const stateKeyTarget = "target_user"

const operatorHelp = `👨‍💼 Команды оператора

/stats — статистика
/pending — открытые вопросы
/conversation <id> — последние сообщения пользователя
/reply <id> <текст> — ответить пользователю
/export — выгрузка в Excel
/welcome [текст] — приветствие
/rejection [текст] — текст отказа
/forbidden — запрещённые темы
/forbidden_add <тема>: слово1, слово2
/forbidden_del <тема>
/faq_add <new|registration|working> | вопрос | ответ
/analyze — разбор сообщений рабочей группы
/cancel — отменить текущее действие`

var errBadFormat = errors.New("bad command format")

// handleOperatorMessage: команды консоли, затем незавершённый шаг (ответ
// пользователю или редактирование текста).
func (b *Bot) handleOperatorMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleOperatorCommand(ctx, msg)
		return
	}

	state, err := b.state.GetUserState(ctx, msg.From.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("operator", msg.From.ID).Msg("Failed to load operator step")
	}

	step := ""
	if state != nil {
		step = state.CurrentStep
	}

	switch step {
	case models.StepAnswering:
		b.sendOperatorReply(ctx, msg, state.GetInt64(stateKeyTarget))
	case models.StepEditWelcome:
		b.saveSetting(ctx, msg.From.ID, service.SettingWelcome, msg.Text)
	case models.StepEditRejection:
		b.saveSetting(ctx, msg.From.ID, service.SettingRejection, msg.Text)
	case models.StepAddForbidden:
		b.addForbiddenTopic(ctx, msg.From.ID, msg.Text)
	default:
		b.sendText(msg.Chat.ID, "Используй /admin для списка команд")
	}
}

func (b *Bot) handleOperatorCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	command := msg.Command()

	if b.metrics != nil {
		b.metrics.OperatorCommands.WithLabelValues(command).Inc()
	}

	switch command {
	case "start", "admin", "help":
		b.sendText(chatID, operatorHelp)

	case "stats":
		b.showStats(ctx, chatID)

	case "pending":
		b.showPending(ctx, chatID)

	case "conversation":
		b.showConversation(ctx, chatID, args)

	case "reply":
		b.replyCommand(ctx, msg, args)

	case "export":
		b.handleExport(ctx, chatID)

	case "welcome":
		b.editSetting(ctx, msg.From.ID, service.SettingWelcome, models.StepEditWelcome, args)

	case "rejection":
		b.editSetting(ctx, msg.From.ID, service.SettingRejection, models.StepEditRejection, args)

	case "forbidden":
		b.showForbiddenTopics(ctx, chatID)

	case "forbidden_add":
		if args == "" {
			b.setStep(ctx, msg.From.ID, models.StepAddForbidden)
			b.sendText(chatID, "Пришли тему в формате: тема: слово1, слово2")
			return
		}
		b.addForbiddenTopic(ctx, msg.From.ID, args)

	case "forbidden_del":
		b.deleteForbiddenTopic(ctx, chatID, args)

	case "faq_add":
		b.addFAQ(ctx, chatID, args)

	case "analyze":
		b.handleAnalyze(ctx, chatID)

	case "cancel":
		b.clearStep(ctx, msg.From.ID)
		b.sendText(chatID, "❌ Действие отменено")

	default:
		b.sendText(chatID, "Неизвестная команда. /admin — список команд")
	}
}

func (b *Bot) showStats(ctx context.Context, chatID int64) {
	st, err := b.db.GetStats(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Error getting stats")
		b.sendText(chatID, "Ошибка при получении данных")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Статистика*\n\n")
	sb.WriteString(fmt.Sprintf("👥 Пользователей: *%d*\n", st.TotalUsers))
	sb.WriteString(fmt.Sprintf("✅ Зарегистрировано: *%d*\n\n", st.Registered))
	sb.WriteString("📋 *Анкеты*\n")
	sb.WriteString(fmt.Sprintf("На рассмотрении: *%d*\n", st.Pending))
	sb.WriteString(fmt.Sprintf("Одобрено: *%d*\n", st.Approved))
	sb.WriteString(fmt.Sprintf("Отклонено: *%d*\n\n", st.Rejected))
	sb.WriteString("💬 *Ответы*\n")
	sb.WriteString(fmt.Sprintf("Открытых вопросов: *%d*\n", st.OpenQuestions))
	sb.WriteString(fmt.Sprintf("Автоответов: *%d*\n", st.AutoAnswers))
	sb.WriteString(fmt.Sprintf("Ответов операторов: *%d*\n", st.AdminAnswers))
	sb.WriteString(fmt.Sprintf("Автономность: *%.1f%%*\n", st.Autonomy()))
	sb.WriteString(fmt.Sprintf("Средняя уверенность: *%.0f*", st.AvgConfidence))

	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) showPending(ctx context.Context, chatID int64) {
	questions, err := b.db.ListPendingQuestions(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Error listing pending questions")
		b.sendText(chatID, "Ошибка при получении данных")
		return
	}
	if len(questions) == 0 {
		b.sendText(chatID, "✅ Открытых вопросов нет")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("❓ Открытые вопросы (%d):\n", len(questions)))
	for _, q := range questions {
		name := "id" + strconv.FormatInt(q.UserID, 10)
		if u, err := b.users.GetUser(ctx, q.UserID); err == nil {
			name = u.DisplayName()
		}
		sb.WriteString(fmt.Sprintf("\n%s · %s\n%s\n/reply %d ", name, q.CreatedAt.Format("02.01 15:04"), q.Question, q.UserID))
	}
	for _, part := range splitMessage(sb.String(), maxMessageLength) {
		b.sendText(chatID, part)
	}
}

func (b *Bot) showConversation(ctx context.Context, chatID int64, args string) {
	userID, err := strconv.ParseInt(args, 10, 64)
	if err != nil || userID <= 0 {
		b.sendText(chatID, "Формат: /conversation <id>")
		return
	}
	user, err := b.users.GetUser(ctx, userID)
	if err != nil {
		b.sendText(chatID, operatorErrorMessage(err))
		return
	}
	history, err := b.db.RecentMessages(ctx, userID, models.ConversationViewLimit)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Error loading conversation")
		b.sendText(chatID, "Ошибка при получении данных")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💬 %s · %s\n", user.DisplayName(), user.Status))
	if len(history) == 0 {
		sb.WriteString("\nСообщений нет")
	}
	for _, m := range history {
		icon := "👤"
		if m.Role == models.RoleBot {
			icon = "🤖"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s %s", icon, m.CreatedAt.Format("02.01 15:04"), m.Content))
	}
	for _, part := range splitMessage(sb.String(), maxMessageLength) {
		b.sendText(chatID, part)
	}
}

// replyCommand: /reply <id> <текст>, альтернатива кнопке «Ответить».
func (b *Bot) replyCommand(ctx context.Context, msg *tgbotapi.Message, args string) {
	rawID, text, _ := strings.Cut(args, " ")
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		b.sendText(msg.Chat.ID, "Формат: /reply <id> <текст>")
		return
	}
	if strings.TrimSpace(text) == "" {
		b.startAnswering(ctx, msg.From.ID, userID)
		return
	}
	b.deliverOperatorText(ctx, msg.From.ID, userID, strings.TrimSpace(text))
}

// editSetting сохраняет текст сразу или ждёт его следующим сообщением.
func (b *Bot) editSetting(ctx context.Context, operatorID int64, key, step, args string) {
	if args != "" {
		b.saveSetting(ctx, operatorID, key, args)
		return
	}
	current, err := b.db.GetSetting(ctx, key)
	if err != nil || current == "" {
		current = "(по умолчанию)"
	}
	b.setStep(ctx, operatorID, step)
	b.sendText(operatorID, fmt.Sprintf("Текущий текст:\n\n%s\n\nПришли новый текст или /cancel", current))
}

func (b *Bot) saveSetting(ctx context.Context, operatorID int64, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		b.sendText(operatorID, "Текст не может быть пустым")
		return
	}
	if err := b.db.SetSetting(ctx, key, value); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("key", key).Msg("Failed to save setting")
		b.sendText(operatorID, operatorFailureText)
		return
	}
	b.clearStep(ctx, operatorID)
	b.sendText(operatorID, "✅ Текст сохранён")
}

func (b *Bot) showForbiddenTopics(ctx context.Context, chatID int64) {
	topics, err := b.db.ListForbiddenTopics(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Error listing forbidden topics")
		b.sendText(chatID, "Ошибка при получении данных")
		return
	}
	if len(topics) == 0 {
		b.sendText(chatID, "Запрещённых тем нет")
		return
	}
	var sb strings.Builder
	sb.WriteString("🚫 Запрещённые темы:\n")
	for _, t := range topics {
		sb.WriteString(fmt.Sprintf("\n• %s: %s", t.Name, strings.Join(t.Keywords, ", ")))
	}
	b.sendText(chatID, sb.String())
}

func (b *Bot) addForbiddenTopic(ctx context.Context, operatorID int64, line string) {
	topic, err := parseTopicLine(line)
	if err != nil {
		b.sendText(operatorID, "Формат: тема: слово1, слово2")
		return
	}
	if err := b.db.SaveForbiddenTopic(ctx, topic); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("topic", topic.Name).Msg("Failed to save forbidden topic")
		b.sendText(operatorID, operatorFailureText)
		return
	}
	b.clearStep(ctx, operatorID)
	b.sendText(operatorID, fmt.Sprintf("✅ Тема «%s» сохранена (%d ключевых слов)", topic.Name, len(topic.Keywords)))
}

func (b *Bot) deleteForbiddenTopic(ctx context.Context, chatID int64, name string) {
	if name == "" {
		b.sendText(chatID, "Формат: /forbidden_del <тема>")
		return
	}
	if err := b.db.DeleteForbiddenTopic(ctx, name); err != nil {
		b.sendText(chatID, fmt.Sprintf("Тема «%s» не найдена", name))
		return
	}
	b.sendText(chatID, fmt.Sprintf("🗑 Тема «%s» удалена", name))
}

func (b *Bot) addFAQ(ctx context.Context, chatID int64, args string) {
	entry, err := parseFAQLine(args)
	if err != nil {
		b.sendText(chatID, "Формат: /faq_add <new|registration|working> | вопрос | ответ")
		return
	}
	if err := b.db.AddKnowledge(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to add faq entry")
		b.sendText(chatID, operatorFailureText)
		return
	}
	b.sendText(chatID, fmt.Sprintf("✅ Добавлено в FAQ (%s)", entry.Category))
}

func (b *Bot) setStep(ctx context.Context, operatorID int64, step string) {
	if err := b.state.SetUserState(ctx, operatorID, step, nil); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("operator", operatorID).Msg("Failed to save operator step")
	}
}

func (b *Bot) clearStep(ctx context.Context, operatorID int64) {
	if err := b.state.ClearUserState(ctx, operatorID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("operator", operatorID).Msg("Failed to clear operator step")
	}
}

// parseTopicLine разбирает «тема: слово1, слово2».
func parseTopicLine(line string) (*models.ForbiddenTopic, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return nil, errBadFormat
	}
	return models.NewForbiddenTopic(name, strings.Split(rest, ","))
}

// parseFAQLine разбирает «категория | вопрос | ответ».
func parseFAQLine(line string) (*models.KnowledgeEntry, error) {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) != 3 {
		return nil, errBadFormat
	}
	category := models.Category(strings.ToLower(strings.TrimSpace(parts[0])))
	return models.NewKnowledgeEntry(strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), category)
}

// describeMedia is what lands in the history for a non-text operator reply.
func describeMedia(msg *tgbotapi.Message) string {
	label := ""
	switch {
	case len(msg.Photo) > 0:
		label = "[фото]"
	case msg.Video != nil:
		label = "[видео]"
	case msg.Voice != nil:
		label = "[голосовое]"
	case msg.Document != nil:
		label = "[документ]"
	case msg.VideoNote != nil:
		label = "[видеосообщение]"
	case msg.Audio != nil:
		label = "[аудио]"
	}
	if caption := strings.TrimSpace(msg.Caption); caption != "" {
		if label == "" {
			return caption
		}
		return label + " " + caption
	}
	return label
}

// sendOperatorReply доставляет ответ оператора: текст как есть, медиа копией.
func (b *Bot) sendOperatorReply(ctx context.Context, msg *tgbotapi.Message, userID int64) {
	operatorID := msg.From.ID
	if userID <= 0 {
		b.clearStep(ctx, operatorID)
		b.sendText(operatorID, userNotFoundText)
		return
	}
	if msg.Text != "" {
		b.deliverOperatorText(ctx, operatorID, userID, msg.Text)
		return
	}

	content := describeMedia(msg)
	if content == "" {
		b.sendText(operatorID, "Этот тип сообщения не поддерживается")
		return
	}
	b.completeReply(ctx, operatorID, userID, content, func() error {
		_, err := b.tg.Send(tgbotapi.NewCopyMessage(userID, msg.Chat.ID, msg.MessageID))
		return err
	})
}

func (b *Bot) deliverOperatorText(ctx context.Context, operatorID, userID int64, text string) {
	b.completeReply(ctx, operatorID, userID, text, func() error {
		for _, part := range splitMessage(text, maxMessageLength) {
			if _, err := b.tg.SendMessage(userID, part); err != nil {
				return err
			}
		}
		return nil
	})
}

// completeReply sends first and resolves the pending question only after the
// user actually received the answer.
func (b *Bot) completeReply(ctx context.Context, operatorID, userID int64, content string, send func() error) {
	l := zerolog.Ctx(ctx)
	if operatorID != userID {
		unlock := b.locks.lock(userID)
		defer unlock()
	}

	user, err := b.users.GetUser(ctx, userID)
	if err != nil {
		b.sendText(operatorID, operatorErrorMessage(err))
		return
	}
	if user.Status.IsTerminal() {
		b.clearStep(ctx, operatorID)
		b.sendText(operatorID, "Пользователь получил отказ, ответ не отправлен")
		return
	}

	if err := send(); err != nil {
		l.Error().Err(err).Int64("user_id", userID).Msg("Failed to deliver operator reply")
		b.sendText(operatorID, "❌ Не удалось доставить ответ, вопрос остаётся открытым")
		return
	}

	_, question, err := b.handoff.Reply(ctx, operatorID, userID, content)
	if err != nil {
		l.Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve pending question")
		b.sendText(operatorID, operatorFailureText)
		return
	}
	b.clearStep(ctx, operatorID)

	ack := fmt.Sprintf("✅ Ответ отправлен %s", user.DisplayName())
	if question != "" {
		ack += "\nВопрос закрыт: " + question
	}
	b.sendText(operatorID, ack)
}

// handleAnalyze запускает разбор группы в фоне и присылает прогресс.
func (b *Bot) handleAnalyze(ctx context.Context, chatID int64) {
	if b.analysis == nil {
		b.sendText(chatID, "Анализ не настроен: нужен ключ транскрибации и LLM")
		return
	}
	b.sendText(chatID, "🔍 Запускаю анализ сообщений группы...")

	timeout := 2 * time.Hour
	b.goBackground("analyze", timeout, func(ctx context.Context) {
		lastReported := 0
		report, err := b.analysis.Run(ctx, func(done, total int) {
			if total == 0 {
				return
			}
			pct := done * 100 / total
			if pct-lastReported >= 25 && done < total {
				lastReported = pct
				b.sendText(chatID, fmt.Sprintf("⏳ Обработано %d из %d", done, total))
			}
		})
		if errors.Is(err, worker.ErrAnalysisRunning) {
			b.sendText(chatID, "Анализ уже выполняется")
			return
		}
		if err != nil {
			b.logger.Error().Err(err).Msg("Group analysis failed")
			b.sendText(chatID, "❌ Анализ завершился с ошибкой: "+err.Error())
			return
		}
		b.sendText(chatID, fmt.Sprintf(
			"✅ Анализ завершён\n\nТекстов: %d\nАудио: %d\nВидео: %d\nПереводов: %d\nОшибок: %d",
			report.Texts, report.Audios, report.Videos, report.Translations, report.Failed))
	})
}
