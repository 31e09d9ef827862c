// Package language picks the reply language for a message.
package language

import (
	"strings"
	"unicode"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

// explicitTokens are whole-message language names.
var explicitTokens = map[string]models.Language{
	"english": models.LangEN, "en": models.LangEN, "eng": models.LangEN,
	"английский": models.LangEN, "англійська": models.LangEN, "по-английски": models.LangEN,
	"русский": models.LangRU, "russian": models.LangRU, "ru": models.LangRU, "рус": models.LangRU,
	"російська": models.LangRU, "по-русски": models.LangRU,
	"українська": models.LangUK, "украинский": models.LangUK, "ukrainian": models.LangUK,
	"uk": models.LangUK, "ua": models.LangUK, "укр": models.LangUK, "українською": models.LangUK,
	"по-українськи": models.LangUK, "по-украински": models.LangUK,
}

const (
	ukrainianLetters = "іїєґ"
	russianLetters   = "ёыэъ"
)

// Ключевые слова. Короткие сравниваются как целые слова, фразы как подстроки.
var keywords = map[models.Language][]string{
	models.LangRU: {"привет", "здравствуй", "здравствуйте", "да", "нет", "пожалуйста", "спасибо", "работа", "работу", "деньги", "как", "что", "хочу", "можно", "сколько"},
	models.LangUK: {"вітаю", "так", "ні", "будь ласка", "дякую", "робота", "роботу", "гроші", "як", "що", "хочу", "можна", "скільки"},
	models.LangEN: {"hello", "hi", "yes", "no", "please", "thanks", "thank", "work", "money", "how", "what", "want", "can"},
}

// Detect classifies text as ru, uk or en. Pure and deterministic.
func Detect(text string) models.Language {
	norm := knowledge.Normalize(text)
	if norm == "" {
		return models.DefaultLanguage
	}

	if lang, ok := explicitTokens[knowledge.Trimmed(norm)]; ok {
		return lang
	}

	if strings.ContainsAny(norm, ukrainianLetters) {
		return models.LangUK
	}
	if strings.ContainsAny(norm, russianLetters) {
		return models.LangRU
	}

	cyr, lat := scriptCounts(norm)
	if lang, ok := byKeywords(norm, cyr, lat); ok {
		return lang
	}

	switch {
	case lat > cyr:
		return models.LangEN
	case cyr > lat:
		return models.LangRU
	default:
		return models.DefaultLanguage
	}
}

func byKeywords(norm string, cyr, lat int) (models.Language, bool) {
	tokens := make(map[string]bool)
	for _, w := range knowledge.Words(norm) {
		tokens[w] = true
	}

	counts := make(map[models.Language]int, len(keywords))
	best := 0
	for lang, words := range keywords {
		for _, kw := range words {
			if strings.Contains(kw, " ") {
				if strings.Contains(norm, kw) {
					counts[lang]++
				}
				continue
			}
			if tokens[kw] {
				counts[lang]++
			}
		}
		if counts[lang] > best {
			best = counts[lang]
		}
	}
	if best == 0 {
		return "", false
	}

	var tied []models.Language
	for _, lang := range models.Languages {
		if counts[lang] == best {
			tied = append(tied, lang)
		}
	}
	if len(tied) == 1 {
		return tied[0], true
	}

	// ничья: решает алфавит
	preferred := models.LangRU
	if lat > cyr {
		preferred = models.LangEN
	}
	for _, lang := range tied {
		if lang == preferred {
			return lang, true
		}
	}
	if preferred == models.LangRU {
		for _, lang := range tied {
			if lang == models.LangUK {
				return lang, true
			}
		}
	}
	return "", false
}

func scriptCounts(text string) (cyr, lat int) {
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyr++
		case r >= 'a' && r <= 'z':
			lat++
		}
	}
	return cyr, lat
}
