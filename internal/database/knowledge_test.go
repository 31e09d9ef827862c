package database

import (
	"context"
	"testing"

	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledge_ByCategory(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	entries := []struct {
		q, a string
		cat  models.Category
	}{
		{"Сколько можно заработать?", "От 500$ в месяц", models.CategoryNew},
		{"Где скачать приложение?", "По ссылке из инструкции", models.CategoryRegistration},
		{"Как вывести деньги?", "Через офис", models.CategoryWorking},
		{"Нужен ли опыт?", "Нет, всему научим", models.CategoryNew},
	}
	for _, e := range entries {
		entry, err := models.NewKnowledgeEntry(e.q, e.a, e.cat)
		require.NoError(t, err)
		require.NoError(t, db.AddKnowledge(ctx, entry))
	}

	newOnes, err := db.ListKnowledge(ctx, models.CategoryNew, 30)
	require.NoError(t, err)
	assert.Len(t, newOnes, 2)

	all, err := db.ListKnowledge(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	limited, err := db.ListKnowledge(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	assert.ErrorIs(t, db.AddKnowledge(ctx, &models.KnowledgeEntry{Question: "q", Answer: "a", Category: "misc"}),
		models.ErrInvalidCategory)
}

func TestForbiddenTopics(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	topic, err := models.NewForbiddenTopic("politics", []string{"война", "выборы"})
	require.NoError(t, err)
	require.NoError(t, db.SaveForbiddenTopic(ctx, topic))

	// повторное сохранение заменяет слова
	topic.Keywords = []string{"президент"}
	require.NoError(t, db.SaveForbiddenTopic(ctx, topic))

	topics, err := db.ListForbiddenTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, []string{"президент"}, topics[0].Keywords)

	require.NoError(t, db.DeleteForbiddenTopic(ctx, "politics"))
	assert.ErrorIs(t, db.DeleteForbiddenTopic(ctx, "politics"), ErrNotFound)
	assert.ErrorIs(t, db.SaveForbiddenTopic(ctx, &models.ForbiddenTopic{Name: "empty"}), models.ErrNoKeywords)
}

func TestLearnedAnswers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	a1, _ := models.NewLearnedAnswer("q1", "a1", models.SourceAuto, 90)
	a2, _ := models.NewLearnedAnswer("q2", "a2", models.SourceAdmin, 100)
	require.NoError(t, db.RecordLearnedAnswer(ctx, a1))
	require.NoError(t, db.RecordLearnedAnswer(ctx, a2))

	recent, err := db.RecentLearnedAnswers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "q2", recent[0].Question)
	assert.Equal(t, models.SourceAdmin, recent[0].Source)

	assert.ErrorIs(t, db.RecordLearnedAnswer(ctx, &models.LearnedAnswer{Question: "q", Answer: "a", Confidence: 101}),
		models.ErrInvalidConfidence)
}

func TestSettingsAndMaterials(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.GetSetting(ctx, "welcome")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SetSetting(ctx, "welcome", "Привет!"))
	require.NoError(t, db.SetSetting(ctx, "welcome", "Здравствуй!"))
	v, err := db.GetSetting(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуй!", v)

	m, err := models.NewTrainingMaterial(models.MaterialAudio, models.LangUK, "розшифровка", 42)
	require.NoError(t, err)
	require.NoError(t, db.SaveTrainingMaterial(ctx, m))

	materials, err := db.ListTrainingMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, models.MaterialAudio, materials[0].Kind)
	assert.Equal(t, models.LangUK, materials[0].Language)
	assert.Equal(t, int64(42), materials[0].SourceRef)
}

func TestSeedDefaults_OnlyWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	topic, _ := models.NewForbiddenTopic("religion", []string{"бог"})
	faq, _ := models.NewKnowledgeEntry("Это бесплатно?", "Да", models.CategoryNew)

	require.NoError(t, db.SeedDefaults(ctx, []*models.ForbiddenTopic{topic}, []*models.KnowledgeEntry{faq}))
	require.NoError(t, db.SeedDefaults(ctx, []*models.ForbiddenTopic{topic}, []*models.KnowledgeEntry{faq}))

	topics, err := db.ListForbiddenTopics(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 1)

	entries, err := db.ListKnowledge(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
