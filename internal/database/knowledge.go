package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recruitbot/internal/models"
)

// ListKnowledge возвращает FAQ категории; пустая категория означает все записи.
func (db *DB) ListKnowledge(ctx context.Context, category models.Category, limit int) ([]*models.KnowledgeEntry, error) {
	query := `SELECT id, question, answer, category, usage_count FROM faq`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY usage_count DESC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge: %w", err)
	}
	defer rows.Close()

	var entries []*models.KnowledgeEntry
	for rows.Next() {
		var (
			e   models.KnowledgeEntry
			cat string
		)
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &cat, &e.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		e.Category = models.Category(cat)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (db *DB) AddKnowledge(ctx context.Context, entry *models.KnowledgeEntry) error {
	if !entry.Category.IsValid() {
		return models.ErrInvalidCategory
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO faq (question, answer, category, usage_count) VALUES (?, ?, ?, ?)`,
		entry.Question, entry.Answer, string(entry.Category), entry.UsageCount)
	if err != nil {
		return fmt.Errorf("failed to add knowledge entry: %w", err)
	}
	entry.ID, _ = res.LastInsertId()
	return nil
}

func (db *DB) ListForbiddenTopics(ctx context.Context) ([]*models.ForbiddenTopic, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, keywords FROM forbidden_topics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list forbidden topics: %w", err)
	}
	defer rows.Close()

	var topics []*models.ForbiddenTopic
	for rows.Next() {
		var (
			t   models.ForbiddenTopic
			raw string
		)
		if err := rows.Scan(&t.ID, &t.Name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan forbidden topic: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &t.Keywords); err != nil {
			db.logger.Warn().Err(err).Str("topic", t.Name).Msg("Skipping forbidden topic with broken keywords")
			continue
		}
		topics = append(topics, &t)
	}
	return topics, rows.Err()
}

// SaveForbiddenTopic создает тему или заменяет ключевые слова существующей.
func (db *DB) SaveForbiddenTopic(ctx context.Context, topic *models.ForbiddenTopic) error {
	if len(topic.Keywords) == 0 {
		return models.ErrNoKeywords
	}
	raw, err := json.Marshal(topic.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO forbidden_topics (name, keywords) VALUES (?, ?)
         ON CONFLICT(name) DO UPDATE SET keywords = excluded.keywords`,
		topic.Name, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save forbidden topic: %w", err)
	}
	return nil
}

func (db *DB) DeleteForbiddenTopic(ctx context.Context, name string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM forbidden_topics WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete forbidden topic: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("forbidden topic %q", name))
}

func (db *DB) RecordLearnedAnswer(ctx context.Context, answer *models.LearnedAnswer) error {
	if answer.Confidence < 0 || answer.Confidence > 100 {
		return models.ErrInvalidConfidence
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO learned_answers (question, answer, source, confidence, created_at) VALUES (?, ?, ?, ?, ?)`,
		answer.Question, answer.Answer, string(answer.Source), answer.Confidence, answer.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record learned answer: %w", err)
	}
	answer.ID, _ = res.LastInsertId()
	return nil
}

// RecentLearnedAnswers отдает свежие ответы, новые первыми.
func (db *DB) RecentLearnedAnswers(ctx context.Context, limit int) ([]*models.LearnedAnswer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, question, answer, source, confidence, created_at
         FROM learned_answers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list learned answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.LearnedAnswer
	for rows.Next() {
		var (
			a      models.LearnedAnswer
			source string
		)
		if err := rows.Scan(&a.ID, &a.Question, &a.Answer, &source, &a.Confidence, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan learned answer: %w", err)
		}
		a.Source = models.Source(source)
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

func (db *DB) SaveTrainingMaterial(ctx context.Context, m *models.TrainingMaterial) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO training_materials (kind, language, content, source_ref, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(m.Kind), string(m.Language), m.Content, m.SourceRef, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save training material: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

func (db *DB) ListTrainingMaterials(ctx context.Context) ([]*models.TrainingMaterial, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, kind, language, content, source_ref, created_at FROM training_materials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list training materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.TrainingMaterial
	for rows.Next() {
		var (
			m          models.TrainingMaterial
			kind, lang string
		)
		if err := rows.Scan(&m.ID, &kind, &lang, &m.Content, &m.SourceRef, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan training material: %w", err)
		}
		m.Kind = models.MaterialKind(kind)
		m.Language = models.Language(lang)
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}

func (db *DB) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

func (db *DB) SetSetting(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// SeedDefaults заполняет пустые таблицы запрещенных тем и FAQ.
func (db *DB) SeedDefaults(ctx context.Context, topics []*models.ForbiddenTopic, faq []*models.KnowledgeEntry) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM forbidden_topics`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count forbidden topics: %w", err)
	}
	if count == 0 {
		for _, t := range topics {
			if err := db.SaveForbiddenTopic(ctx, t); err != nil {
				return err
			}
		}
		db.logger.Info().Int("count", len(topics)).Msg("Seeded forbidden topics")
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faq`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count faq: %w", err)
	}
	if count == 0 {
		for _, e := range faq {
			if err := db.AddKnowledge(ctx, e); err != nil {
				return err
			}
		}
		db.logger.Info().Int("count", len(faq)).Msg("Seeded FAQ")
	}
	return nil
}
