package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyDecided = errors.New("application already decided")
	ErrTooManyPhotos  = errors.New("too many photos")
)

const memoryPath = ":memory:"

// DB хранит анкеты, диалоги и базу знаний в SQLite.
type DB struct {
	*sql.DB
	path   string
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	dsn := path
	if path != memoryPath {
		// Создаем директорию для БД, если её нет
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// один писатель: sqlite всё равно сериализует запись, а :memory: живёт в одном соединении
	sqlDB.SetMaxOpenConns(1)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, path: path, logger: logger}

	// Создаем таблицы
	if err := db.createTables(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized")
	return db, nil
}

// Path возвращает путь к файлу базы (для бэкапов).
func (db *DB) Path() string {
	return db.path
}

func (db *DB) createTables() error {
	queries := []string{
		// Пользователи: id = Telegram ID
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY,
            username TEXT NOT NULL DEFAULT '',
            first_name TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'chatting',
            language TEXT NOT NULL DEFAULT 'ru',
            language_locked BOOLEAN NOT NULL DEFAULT 0,
            photos_count INTEGER NOT NULL DEFAULT 0,
            in_group BOOLEAN NOT NULL DEFAULT 0,
            platform_id TEXT NOT NULL DEFAULT '',
            hidden_at DATETIME,
            last_activity DATETIME NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		// История диалога, только добавление
		`CREATE TABLE IF NOT EXISTS messages (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            role TEXT NOT NULL,
            content TEXT NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS photos (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            file_id TEXT NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		// Заявки на проверку
		`CREATE TABLE IF NOT EXISTS applications (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            work_hours TEXT NOT NULL,
            experience TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            decided_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            decided_at DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS faq (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            question TEXT NOT NULL,
            answer TEXT NOT NULL,
            category TEXT NOT NULL,
            usage_count INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS learned_answers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            question TEXT NOT NULL,
            answer TEXT NOT NULL,
            source TEXT NOT NULL,
            confidence INTEGER NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		// Ключевые слова хранятся JSON-массивом
		`CREATE TABLE IF NOT EXISTS forbidden_topics (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            keywords TEXT NOT NULL
        )`,
		// Не больше одного открытого вопроса на пользователя
		`CREATE TABLE IF NOT EXISTS pending_questions (
            user_id INTEGER PRIMARY KEY,
            question TEXT NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS training_materials (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            kind TEXT NOT NULL,
            language TEXT NOT NULL,
            content TEXT NOT NULL,
            source_ref INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL
        )`,
		// Сообщения учебной группы до анализа
		`CREATE TABLE IF NOT EXISTS group_messages (
            message_id INTEGER PRIMARY KEY,
            kind TEXT NOT NULL,
            content TEXT NOT NULL DEFAULT '',
            file_id TEXT NOT NULL DEFAULT '',
            username TEXT NOT NULL DEFAULT '',
            processed BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL
        )`,
		// Очередь синхронизации с Google Sheets
		`CREATE TABLE IF NOT EXISTS sync_queue (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_type TEXT NOT NULL,
            application_id INTEGER NOT NULL,
            payload TEXT,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at DATETIME NOT NULL,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,
		`CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_photos_user ON photos(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_activity ON users(status, last_activity)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_queue_status ON sync_queue(status, next_retry_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", firstLine(query), err)
		}
	}

	return nil
}

func firstLine(query string) string {
	if i := strings.IndexByte(query, '\n'); i > 0 {
		return query[:i]
	}
	return query
}

// checkAffected превращает "0 строк изменено" в ErrNotFound.
func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// placeholders строит "?, ?, ?" для IN (...).
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
