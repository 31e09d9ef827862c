package models

import "time"

// Ключи временных данных сценария
const (
	StateKeyWorkHours    = "work_hours"
	StateKeyReturnStatus = "return_status"
	StateKeyEditing      = "editing"
)

// Шаги оператора
const (
	StepAnswering     = "answering_question"
	StepEditWelcome   = "editing_welcome"
	StepEditRejection = "editing_rejection"
	StepAddForbidden  = "adding_forbidden_topic"
)

// UserState is short-lived scenario data kept in redis next to the persistent status.
type UserState struct {
	UserID      int64
	CurrentStep string
	TempData    map[string]interface{}
}

func (s *UserState) GetInt64(key string) int64 {
	if s == nil || s.TempData == nil {
		return 0
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *UserState) GetString(key string) string {
	if s == nil || s.TempData == nil {
		return ""
	}
	if str, ok := s.TempData[key].(string); ok {
		return str
	}
	return ""
}

func (s *UserState) GetTime(key string) time.Time {
	if s == nil || s.TempData == nil {
		return time.Time{}
	}
	switch v := s.TempData[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// Set lazily allocates TempData.
func (s *UserState) Set(key string, value interface{}) {
	if s.TempData == nil {
		s.TempData = make(map[string]interface{})
	}
	s.TempData[key] = value
}
