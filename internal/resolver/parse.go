package resolver

import (
	"encoding/json"
	"strconv"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

const (
	maxAnswerRunes    = 4000
	cutAnswerRunes    = 3800
	defaultConfidence = 70

	// уверенность, когда модель ответила не JSON
	rawComplexConfidence = 55
	rawSimpleConfidence  = 80
	rawPlainConfidence   = 65

	complexQuestionWords = 8
	simpleQuestionWords  = 3
)

const ruleEmptyAnswer = "empty"

var errorMarkers = []string{
	"does not exist",
	"the model does not",
	"bad request",
	"api.openai.com",
	"generativelanguage.googleapis.com",
	"openrouter.ai",
}

// isErrorContent detects provider errors returned as if they were answers.
func isErrorContent(raw string) bool {
	t := strings.ToLower(strings.TrimSpace(raw))
	if len([]rune(t)) < 3 {
		return true
	}
	if strings.HasPrefix(t, "error") {
		return true
	}
	if strings.Contains(t, "model") && strings.Contains(t, "exist") {
		return true
	}
	_, ok := knowledge.ContainsAny(t, errorMarkers)
	return ok
}

var markdownReplacer = strings.NewReplacer("**", "", "__", "", "*", "", "_", "")

func cleanGeneration(raw string) string {
	t := strings.TrimSpace(raw)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	}
	return strings.TrimSpace(markdownReplacer.Replace(t))
}

type generation struct {
	Answer     *string     `json:"answer"`
	Confidence interface{} `json:"confidence"`
	Escalate   *bool       `json:"escalate"`
	Language   string      `json:"language"`
}

// parseGeneration normalizes model output into a Result. It never fails:
// non-JSON text becomes the answer with a conservative confidence.
func parseGeneration(raw string, in *Input, threshold int) *Result {
	text := cleanGeneration(raw)
	res := &Result{Language: in.Language, Tier: TierGenerative}

	g, ok := decodeGeneration(text)
	if !ok {
		res.Answer = text
		res.Confidence = rawConfidence(in.Normalized)
		res.Escalate = res.Confidence < threshold
		res.Rule = "raw"
		return truncate(res)
	}

	res.Confidence = defaultConfidence
	if c, ok := confidenceValue(g.Confidence); ok {
		res.Confidence = clamp(c)
	}
	if g.Answer != nil {
		res.Answer = strings.TrimSpace(*g.Answer)
	}
	if g.Escalate != nil {
		res.Escalate = *g.Escalate
	} else {
		res.Escalate = res.Confidence < threshold
	}
	res.Rule = "json"
	if res.Answer == "" && !res.Escalate {
		// пустой ответ пользователю не отправляем
		res.Escalate = true
		res.Rule = ruleEmptyAnswer
	}
	return truncate(res)
}

func decodeGeneration(text string) (generation, bool) {
	var g generation
	if err := json.Unmarshal([]byte(text), &g); err == nil {
		return g, true
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return g, false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &g); err != nil {
		return g, false
	}
	return g, true
}

func confidenceValue(v interface{}) (int, bool) {
	switch c := v.(type) {
	case float64:
		return int(c), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(c, "%")))
		return n, err == nil
	default:
		return 0, false
	}
}

func rawConfidence(question string) int {
	words := knowledge.WordCount(question)
	switch {
	case words > complexQuestionWords || strings.Contains(question, "?"):
		return rawComplexConfidence
	case words <= simpleQuestionWords:
		return rawSimpleConfidence
	default:
		return rawPlainConfidence
	}
}

func clamp(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func truncate(res *Result) *Result {
	r := []rune(res.Answer)
	if len(r) > maxAnswerRunes {
		res.Answer = string(r[:cutAnswerRunes]) + knowledge.Continued.In(res.Language)
	}
	return res
}

// languageName is used inside the prompt.
func languageName(l models.Language) string {
	switch l {
	case models.LangUK:
		return "Ukrainian"
	case models.LangEN:
		return "English"
	default:
		return "Russian"
	}
}
