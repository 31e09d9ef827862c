package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"recruitbot/internal/database"
	"recruitbot/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// KnowledgeFile is the import format: FAQ entries and forbidden topics.
type KnowledgeFile struct {
	FAQ []struct {
		Category string `yaml:"category"`
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"faq"`
	Forbidden []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"forbidden"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		filePath = flag.String("file", "configs/knowledge.yaml", "path to knowledge.yaml")
		dbPath   = flag.String("db", "./data/recruitbot.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("read knowledge: %w", err)
	}
	var kf KnowledgeFile
	if err = yaml.Unmarshal(data, &kf); err != nil {
		return fmt.Errorf("parse knowledge: %w", err)
	}
	if len(kf.FAQ) == 0 && len(kf.Forbidden) == 0 {
		return errors.New("nothing to import")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topics := 0
	for _, f := range kf.Forbidden {
		topic, err := models.NewForbiddenTopic(f.Name, f.Keywords)
		if err != nil {
			logger.Warn().Err(err).Str("topic", f.Name).Msg("skip forbidden topic")
			continue
		}
		if err = db.SaveForbiddenTopic(ctx, topic); err != nil {
			return fmt.Errorf("save topic %s: %w", f.Name, err)
		}
		topics++
	}

	created, skipped := 0, 0
	for _, e := range kf.FAQ {
		entry, err := models.NewKnowledgeEntry(e.Question, e.Answer, models.Category(strings.ToLower(e.Category)))
		if err != nil {
			logger.Warn().Err(err).Str("question", e.Question).Msg("skip faq entry")
			skipped++
			continue
		}
		exists, err := hasQuestion(ctx, db, entry)
		if err != nil {
			return err
		}
		if exists {
			skipped++
			continue
		}
		if err = db.AddKnowledge(ctx, entry); err != nil {
			return fmt.Errorf("add %q: %w", entry.Question, err)
		}
		created++
	}

	fmt.Printf("done: topics=%d faq_created=%d faq_skipped=%d\n", topics, created, skipped)
	return nil
}

func hasQuestion(ctx context.Context, db *database.DB, entry *models.KnowledgeEntry) (bool, error) {
	existing, err := db.ListKnowledge(ctx, entry.Category, -1)
	if err != nil {
		return false, fmt.Errorf("list %s: %w", entry.Category, err)
	}
	for _, e := range existing {
		if strings.EqualFold(e.Question, entry.Question) {
			return true, nil
		}
	}
	return false, nil
}
