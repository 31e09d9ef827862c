package models

import (
	"strings"
	"time"
)

type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(userID int64, role Role, content string) (*Message, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if role != RoleUser && role != RoleBot {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return &Message{UserID: userID, Role: role, Content: content, CreatedAt: time.Now()}, nil
}

// PendingQuestion is a question escalated to an operator. One per user.
type PendingQuestion struct {
	UserID    int64     `json:"user_id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPendingQuestion(userID int64, question string) (*PendingQuestion, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyContent
	}
	return &PendingQuestion{UserID: userID, Question: question, CreatedAt: time.Now()}, nil
}

// KnowledgeEntry is an FAQ pair scoped to an onboarding category.
type KnowledgeEntry struct {
	ID         int64    `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   Category `json:"category"`
	UsageCount int      `json:"usage_count"`
}

func NewKnowledgeEntry(question, answer string, category Category) (*KnowledgeEntry, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyContent
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	return &KnowledgeEntry{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Category: category,
	}, nil
}

type LearnedAnswer struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Source     Source    `json:"source"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewLearnedAnswer(question, answer string, source Source, confidence int) (*LearnedAnswer, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyContent
	}
	if source != SourceAuto && source != SourceAdmin {
		return nil, ErrInvalidSource
	}
	if confidence < 0 || confidence > 100 {
		return nil, ErrInvalidConfidence
	}
	return &LearnedAnswer{
		Question:   question,
		Answer:     answer,
		Source:     source,
		Confidence: confidence,
		CreatedAt:  time.Now(),
	}, nil
}

// ForbiddenTopic is a banned subject detected by keyword containment.
type ForbiddenTopic struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// NewForbiddenTopic lowercases keywords and drops blanks and duplicates.
func NewForbiddenTopic(name string, keywords []string) (*ForbiddenTopic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	seen := make(map[string]bool, len(keywords))
	clean := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		clean = append(clean, kw)
	}
	if len(clean) == 0 {
		return nil, ErrNoKeywords
	}
	return &ForbiddenTopic{Name: name, Keywords: clean}, nil
}

type Application struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	WorkHours  string            `json:"work_hours"`
	Experience string            `json:"experience"`
	Status     ApplicationStatus `json:"status"`
	DecidedBy  int64             `json:"decided_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	DecidedAt  *time.Time        `json:"decided_at,omitempty"`
}

func NewApplication(userID int64, workHours, experience string) (*Application, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(workHours) == "" || strings.TrimSpace(experience) == "" {
		return nil, ErrEmptyContent
	}
	return &Application{
		UserID:     userID,
		WorkHours:  strings.TrimSpace(workHours),
		Experience: strings.TrimSpace(experience),
		Status:     ApplicationPending,
		CreatedAt:  time.Now(),
	}, nil
}

type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FileID    string    `json:"file_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TrainingMaterial is analysed group content used as generation context.
type TrainingMaterial struct {
	ID        int64        `json:"id"`
	Kind      MaterialKind `json:"kind"`
	Language  Language     `json:"language"`
	Content   string       `json:"content"`
	SourceRef int64        `json:"source_ref"` // message_id в группе
	CreatedAt time.Time    `json:"created_at"`
}

func NewTrainingMaterial(kind MaterialKind, lang Language, content string, sourceRef int64) (*TrainingMaterial, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !lang.IsValid() {
		return nil, ErrInvalidLanguage
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return &TrainingMaterial{Kind: kind, Language: lang, Content: content, SourceRef: sourceRef, CreatedAt: time.Now()}, nil
}

// GroupMessage is captured training-group content awaiting analysis.
type GroupMessage struct {
	MessageID int64        `json:"message_id"`
	Kind      MaterialKind `json:"kind"`
	Content   string       `json:"content,omitempty"`
	FileID    string       `json:"file_id,omitempty"`
	Username  string       `json:"username,omitempty"`
	Processed bool         `json:"processed"`
	CreatedAt time.Time    `json:"created_at"`
}

// Stats aggregates the operator dashboard numbers.
type Stats struct {
	TotalUsers    int     `json:"total_users"`
	Registered    int     `json:"registered"`
	Pending       int     `json:"applications_pending"`
	Approved      int     `json:"applications_approved"`
	Rejected      int     `json:"applications_rejected"`
	OpenQuestions int     `json:"open_questions"`
	AutoAnswers   int     `json:"auto_answers"`
	AdminAnswers  int     `json:"admin_answers"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// Autonomy is the share of questions answered without an operator, in percent.
func (s Stats) Autonomy() float64 {
	total := s.AutoAnswers + s.AdminAnswers
	if total == 0 {
		return 0
	}
	return float64(s.AutoAnswers) * 100 / float64(total)
}
