package knowledge

import (
	"sort"
	"strings"

	"recruitbot/internal/models"
)

// Лимиты выдержек из обучающих материалов в промпте.
const (
	MaxTextMaterials   = 5
	MaxMediaMaterials  = 3
	TextExcerptLimit   = 2000
	MediaExcerptLimit  = 1500
	fallbackTextLimit  = 1000
	fallbackMediaLimit = 800
)

// Excerpt is a ranked, truncated training material.
type Excerpt struct {
	Kind  models.MaterialKind
	Text  string
	Score int
}

// SelectMaterials ranks materials for a question and returns text excerpts
// followed by audio/video transcripts.
func SelectMaterials(question string, lang models.Language, materials []*models.TrainingMaterial) []Excerpt {
	variants := preferLanguage(materials, lang)

	var texts, media []*models.TrainingMaterial
	for _, m := range variants {
		if m.Kind == models.MaterialText {
			texts = append(texts, m)
		} else {
			media = append(media, m)
		}
	}

	words := questionWords(question)
	categories := matchedCategoryKeywords(question)

	out := rank(texts, words, categories, MaxTextMaterials, TextExcerptLimit, fallbackTextLimit)
	return append(out, rank(media, words, categories, MaxMediaMaterials, MediaExcerptLimit, fallbackMediaLimit)...)
}

func rank(ms []*models.TrainingMaterial, words, categories []string, limit, size, fallbackSize int) []Excerpt {
	scored := make([]Excerpt, 0, len(ms))
	for _, m := range ms {
		if s := score(m.Content, words, categories); s > 0 {
			scored = append(scored, Excerpt{Kind: m.Kind, Text: m.Content, Score: s})
		}
	}

	if len(scored) == 0 {
		// ничего не совпало: берём первые материалы покороче
		for i := 0; i < len(ms) && i < limit; i++ {
			scored = append(scored, Excerpt{Kind: ms[i].Kind, Text: cut(ms[i].Content, fallbackSize)})
		}
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Text = cut(scored[i].Text, size)
	}
	return scored
}

func score(content string, words, categories []string) int {
	text := Normalize(content)
	s := 0
	for _, w := range words {
		s += 2 * strings.Count(text, w)
	}
	for _, kw := range categories {
		if strings.Contains(text, kw) {
			s += 10
		}
	}
	return s
}

func questionWords(question string) []string {
	var out []string
	for _, w := range Words(Normalize(question)) {
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// matchedCategoryKeywords returns topic keywords present in the question.
func matchedCategoryKeywords(question string) []string {
	text := Normalize(question)
	var out []string
	for _, kw := range CategoryKeywords() {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// preferLanguage keeps one variant per source message: the requested
// language if present, otherwise the first one seen.
func preferLanguage(ms []*models.TrainingMaterial, lang models.Language) []*models.TrainingMaterial {
	picked := make(map[int64]int)
	out := make([]*models.TrainingMaterial, 0, len(ms))
	for _, m := range ms {
		if m.SourceRef == 0 {
			out = append(out, m)
			continue
		}
		idx, ok := picked[m.SourceRef]
		if !ok {
			picked[m.SourceRef] = len(out)
			out = append(out, m)
			continue
		}
		if m.Language == lang && out[idx].Language != lang {
			out[idx] = m
		}
	}
	return out
}

func cut(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
