package language

import (
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

var switchVerbs = []string{
	"говори", "пиши", "отвечай", "общайся", "переключи", "давай на", "можно на", "перейди на", "перейдем на",
	"розмовляй", "відповідай", "спілкуйся", "перемкни", "можна на",
	"speak", "write", "answer", "reply", "respond", "talk", "switch to", "can we", "please in",
}

var languageMarkers = []struct {
	lang    models.Language
	markers []string
}{
	{models.LangUK, []string{"украинск", "українськ", "по-українськи", "по-украински", "ukrainian"}},
	{models.LangEN, []string{"английск", "англійськ", "по-английски", "english"}},
	{models.LangRU, []string{"русск", "російськ", "по-русски", "russian"}},
}

// DetectSwitch recognizes an explicit "respond in X" request. Ordinary text in
// a language is not a switch request.
func DetectSwitch(text string) (models.Language, bool) {
	norm := knowledge.Normalize(text)
	if norm == "" {
		return "", false
	}

	if lang, ok := explicitTokens[knowledge.Trimmed(norm)]; ok {
		return lang, true
	}

	target, ok := requestedLanguage(norm)
	if !ok {
		return "", false
	}

	if _, ok := knowledge.ContainsAny(norm, switchVerbs); ok {
		return target, true
	}
	// "in english please", "на украинском пожалуйста"
	if knowledge.WordCount(norm) <= 4 &&
		(strings.HasPrefix(norm, "in ") || strings.HasPrefix(norm, "на ") || strings.HasPrefix(norm, "по-")) {
		return target, true
	}
	return "", false
}

func requestedLanguage(norm string) (models.Language, bool) {
	for _, lm := range languageMarkers {
		if _, ok := knowledge.ContainsAny(norm, lm.markers); ok {
			return lm.lang, true
		}
	}
	return "", false
}
