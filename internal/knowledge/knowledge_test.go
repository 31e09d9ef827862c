package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitbot/internal/models"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "привіт як справи", Normalize("  ПРИВІТ   Як\tсправи "))
	assert.Equal(t, "hello", Normalize("HeLLo"))
	assert.Equal(t, "", Normalize("   "))
}

func TestWordsAndTrimmed(t *testing.T) {
	assert.Equal(t, []string{"привет", "как", "дела"}, Words("привет, как дела?!"))
	assert.Equal(t, []string{"don't", "know"}, Words("don't know"))
	assert.Equal(t, "ок", Trimmed("  ок!!! 👍"))
}

func TestFindBlocks(t *testing.T) {
	t.Run("priority wins", func(t *testing.T) {
		matches := FindBlocks(Normalize("Как запустить эфир?"), models.LangRU)
		require.Len(t, matches, 1)
		assert.Equal(t, BlockStreamStart, matches[0].Block)
	})

	t.Run("agency", func(t *testing.T) {
		matches := FindBlocks(Normalize("Какое агентство выбрать?"), models.LangRU)
		require.NotEmpty(t, matches)
		assert.Equal(t, BlockAgencyName, matches[0].Block)
		assert.Contains(t, matches[0].Text, AgencyName)
	})

	t.Run("general dedupes blocks", func(t *testing.T) {
		matches := FindBlocks(Normalize("правила эфира"), models.LangEN)
		seen := map[string]bool{}
		for _, m := range matches {
			assert.False(t, seen[m.Block], "duplicate block %s", m.Block)
			seen[m.Block] = true
		}
		assert.True(t, seen[BlockStreamRules])
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FindBlocks(Normalize("сколько стоит хлеб"), models.LangRU))
	})
}

func TestEveryTopicBlockHasText(t *testing.T) {
	for _, topic := range AllTopics() {
		for _, key := range topic.Blocks {
			for _, lang := range models.Languages {
				assert.NotEmpty(t, Block(key, lang), "%s/%s", key, lang)
			}
		}
	}
	assert.Empty(t, Block("missing", models.LangRU))
}

func TestMatchGreeting(t *testing.T) {
	_, ok := MatchGreeting(Normalize("Привіт"))
	assert.True(t, ok)

	_, ok = MatchGreeting(Normalize("привет, дорогая"))
	assert.True(t, ok)

	_, ok = MatchGreeting(Normalize("привет, как мне зарегистрироваться в приложении"))
	assert.False(t, ok)

	_, ok = MatchGreeting("")
	assert.False(t, ok)
}

func TestMatchReaction(t *testing.T) {
	_, ok := MatchReaction(Normalize("Ок!"))
	assert.True(t, ok)

	_, ok = MatchReaction(Normalize("ок, а что дальше"))
	assert.False(t, ok)
}

func TestDetectCountry(t *testing.T) {
	c, ok := DetectCountry(Normalize("я из Германии, а можно из Польша?"))
	require.True(t, ok)
	assert.Equal(t, "польша", c)

	_, ok = DetectCountry(Normalize("i am a woman"))
	assert.False(t, ok)

	assert.True(t, strings.HasPrefix(CountryReply("польша", models.LangRU), "У нас работают"))
	assert.Contains(t, CountryReply("poland", models.LangEN), "Poland")
}

func TestDefaultForbiddenTopics(t *testing.T) {
	topics := DefaultForbiddenTopics()
	require.Len(t, topics, 4)
	for _, topic := range topics {
		assert.NotEmpty(t, topic.Keywords)
		for _, kw := range topic.Keywords {
			assert.Equal(t, strings.ToLower(kw), kw)
		}
	}
	assert.NotEqual(t, Refusal.In(models.LangRU), Refusal.In(models.LangEN))
}

func TestDefaultFAQ(t *testing.T) {
	entries := DefaultFAQ()
	require.NotEmpty(t, entries)
	cats := map[models.Category]bool{}
	for _, e := range entries {
		cats[e.Category] = true
	}
	assert.Len(t, cats, 3)
}

func TestRatioReport(t *testing.T) {
	good := RatioReport(models.LangEN, 3, 20, 3.0/23, true)
	assert.Contains(t, good, "0.130")
	assert.Contains(t, good, "Total: 23")
	assert.Contains(t, good, "below 0.18")

	bad := RatioReport(models.LangRU, 5, 10, 5.0/15, false)
	assert.Contains(t, bad, "0.333")
	assert.Contains(t, bad, "ВНИМАНИЕ")
}

func TestIsReviewRequest(t *testing.T) {
	assert.True(t, IsReviewRequest("Покажи отзывы"))
	assert.True(t, IsReviewRequest("это реально работает?"))
	assert.False(t, IsReviewRequest("как работает охота"))
}

func TestSelectMaterials(t *testing.T) {
	mk := func(kind models.MaterialKind, lang models.Language, content string, ref int64) *models.TrainingMaterial {
		m, err := models.NewTrainingMaterial(kind, lang, content, ref)
		require.NoError(t, err)
		return m
	}

	t.Run("scored and language preferred", func(t *testing.T) {
		materials := []*models.TrainingMaterial{
			mk(models.MaterialText, models.LangRU, "про вывод денег ничего", 1),
			mk(models.MaterialText, models.LangRU, "охота: нажми кнопку охота и жди звонка", 2),
			mk(models.MaterialText, models.LangUK, "полювання: натисни кнопку", 2),
			mk(models.MaterialAudio, models.LangRU, "в эфире охота работает так", 3),
		}
		out := SelectMaterials("как работает охота", models.LangRU, materials)
		require.Len(t, out, 2)
		assert.Equal(t, models.MaterialText, out[0].Kind)
		assert.Contains(t, out[0].Text, "нажми кнопку охота")
		assert.Equal(t, models.MaterialAudio, out[1].Kind)
	})

	t.Run("fallback takes first and cuts", func(t *testing.T) {
		long := strings.Repeat("я", 1500)
		materials := []*models.TrainingMaterial{mk(models.MaterialText, models.LangRU, long, 0)}
		out := SelectMaterials("zzz", models.LangRU, materials)
		require.Len(t, out, 1)
		assert.Len(t, []rune(out[0].Text), fallbackTextLimit)
	})

	t.Run("limit", func(t *testing.T) {
		var materials []*models.TrainingMaterial
		for i := 0; i < 8; i++ {
			materials = append(materials, mk(models.MaterialText, models.LangRU, "агентство", 0))
		}
		assert.Len(t, SelectMaterials("агентство", models.LangRU, materials), MaxTextMaterials)
	})
}
