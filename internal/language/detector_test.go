package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recruitbot/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Language
	}{
		{"empty defaults", "", models.LangRU},
		{"explicit token", "English", models.LangEN},
		{"explicit uk token", "українська", models.LangUK},
		{"ukrainian letter", "привіт", models.LangUK},
		{"ukrainian ї", "Де їх знайти", models.LangUK},
		{"russian letter", "Объясни ещё раз", models.LangRU},
		{"russian keywords", "привет как дела", models.LangRU},
		{"ukrainian keywords", "так, хочу дуже", models.LangUK},
		{"english keywords", "hello, how much money", models.LangEN},
		{"latin script", "Germany Berlin", models.LangEN},
		{"cyrillic script", "Берлин Германия", models.LangRU},
		{"digits only", "12345", models.LangRU},
		{"tie goes to script", "hi привет", models.LangRU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, models.LangEN, Detect("what should I do now?"))
	}
}

func TestDetectSwitch(t *testing.T) {
	tests := []struct {
		text string
		want models.Language
		ok   bool
	}{
		{"говори на украинском", models.LangUK, true},
		{"Пиши українською, будь ласка", models.LangUK, true},
		{"speak English please", models.LangEN, true},
		{"in english please", models.LangEN, true},
		{"на русском пожалуйста", models.LangRU, true},
		{"english", models.LangEN, true},
		{"я живу в украине", "", false},
		{"hello, how are you", "", false},
		{"мне нравится английский язык, я его учу уже давно", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := DetectSwitch(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
