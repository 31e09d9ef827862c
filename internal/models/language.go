package models

import (
	"fmt"
	"strings"
)

// Language is one of the supported reply languages.
type Language string

const (
	LangRU Language = "ru"
	LangUK Language = "uk"
	LangEN Language = "en"

	DefaultLanguage = LangRU
)

// Languages lists supported languages in fallback order.
var Languages = []Language{LangRU, LangUK, LangEN}

func (l Language) IsValid() bool {
	switch l {
	case LangRU, LangUK, LangEN:
		return true
	}
	return false
}

func (l Language) String() string { return string(l) }

// ParseLanguage accepts stored codes and telegram language codes (ua → uk).
func ParseLanguage(raw string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if code == "ua" {
		code = "uk"
	}
	l := Language(code)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, raw)
	}
	return l, nil
}

// Localized picks the variant for l, falling back to Russian.
type Localized map[Language]string

func (t Localized) In(l Language) string {
	if v, ok := t[l]; ok && v != "" {
		return v
	}
	return t[DefaultLanguage]
}
