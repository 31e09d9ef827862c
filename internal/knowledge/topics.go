package knowledge

import (
	"strings"

	"recruitbot/internal/models"
)

// Topic is a keyword category pointing at one or more training blocks.
type Topic struct {
	Name     string
	Keywords []string
	Blocks   []string
}

// Ключи обучающих блоков
const (
	BlockStartHunting      = "start_hunting"
	BlockHuntingInfo       = "hunting_info"
	BlockMultibeamJoin     = "multibeam_join"
	BlockMultibeamTypes    = "multibeam_types"
	BlockProfileSetup      = "profile_setup"
	BlockProfileEdit       = "profile_edit"
	BlockPostsActivity     = "posts_activity"
	BlockHowToPost         = "how_to_post"
	BlockStreamPosture     = "live_stream_posture"
	BlockStreamStart       = "live_stream_start"
	BlockStreamMessages    = "live_stream_messages"
	BlockStreamRules       = "live_stream_rules"
	BlockTasks             = "tasks"
	BlockDislikesInfo      = "dislikes_info"
	BlockDislikesDelete    = "dislikes_delete"
	BlockAutoMessages      = "auto_messages"
	BlockRegistrationSteps = "registration_steps"
	BlockAfterRegistration = "after_registration"
	BlockAgencyName        = "agency_name"
)

// PriorityTopics are checked first: their phrasing overlaps broader categories.
var PriorityTopics = []Topic{
	{
		Name:     "live_stream_start",
		Keywords: []string{"запустить эфир", "запустити ефір", "start stream", "начать эфир", "почати ефір", "как запустить", "як запустити", "start live", "launch stream", "open stream"},
		Blocks:   []string{BlockStreamStart},
	},
	{
		Name:     "live_stream_posture",
		Keywords: []string{"как сидеть", "як сидіти", "how to sit", "правильно сидеть", "правильно сидіти", "posture", "поза", "сидіти в ефірі", "сидеть в эфире"},
		Blocks:   []string{BlockStreamPosture},
	},
	{
		Name:     "dislikes_delete",
		Keywords: []string{"видалити дизлайк", "удалить дизлайк", "delete dislike", "убрать дизлайк", "прибрати дизлайк", "как удалить", "як видалити", "how to delete", "remove dislike"},
		Blocks:   []string{BlockDislikesDelete},
	},
	{
		Name:     "after_registration",
		Keywords: []string{"після реєстрації", "после регистрации", "after registration", "что делать после", "що робити після", "what to do after"},
		Blocks:   []string{BlockAfterRegistration},
	},
}

// GeneralTopics are checked in order after PriorityTopics.
var GeneralTopics = []Topic{
	{
		Name:     "hunting",
		Keywords: []string{"охота", "охоту", "hunting", "хантинг", "hunt", "полювання", "start hunting", "начать охоту", "почати полювання"},
		Blocks:   []string{BlockStartHunting, BlockHuntingInfo},
	},
	{
		Name:     "multibeam",
		Keywords: []string{"мультибим", "multibeam", "multi beam", "multi-beam", "multibim", "мультібім", "press unit", "спот", "spot"},
		Blocks:   []string{BlockMultibeamJoin, BlockMultibeamTypes},
	},
	{
		Name:     "profile",
		Keywords: []string{"профиль", "profile", "профіль", "аватар", "avatar", "обложк", "обкладинк", "cover", "теги", "tags", "настройка профиля", "налаштування профілю", "редактир", "edit profile"},
		Blocks:   []string{BlockProfileSetup, BlockProfileEdit},
	},
	{
		Name:     "posts",
		Keywords: []string{"пост", "post", "публикац", "публікац", "лента", "стрічк", "feed", "как публиковать", "як публікувати", "how to post"},
		Blocks:   []string{BlockPostsActivity, BlockHowToPost},
	},
	{
		Name:     "live_stream",
		Keywords: []string{"эфир", "ефір", "stream", "прямой эфир", "прямий ефір", "трансляц", "broadcast", "go live"},
		Blocks:   []string{BlockStreamStart, BlockStreamMessages, BlockStreamRules, BlockStreamPosture},
	},
	{
		Name:     "rules",
		Keywords: []string{"правила", "rules", "запрещено", "заборонено", "forbidden", "что можно", "що можна", "what allowed", "what is allowed"},
		Blocks:   []string{BlockStreamRules},
	},
	{
		Name:     "dislikes",
		Keywords: []string{"дизлайк", "dislike", "коэффициент", "коефіцієнт", "ratio"},
		Blocks:   []string{BlockDislikesInfo, BlockDislikesDelete},
	},
	{
		Name:     "auto_messages",
		Keywords: []string{"автосообщ", "auto message", "auto-message", "автоповідомл", "mass message", "массовые", "масові", "рассылка", "розсилка"},
		Blocks:   []string{BlockAutoMessages},
	},
	{
		Name:     "tasks",
		Keywords: []string{"задания", "заданий", "tasks", "завдання", "центр задач", "task center", "виконати завдання", "выполнить задания", "очки", "очків", "points"},
		Blocks:   []string{BlockTasks},
	},
	{
		Name:     "agency",
		Keywords: []string{"агентство", "агентства", "agency", "tosagency", "агенство", "какое агентство", "which agency", "яке агентство"},
		Blocks:   []string{BlockAgencyName},
	},
	{
		Name:     "registration",
		Keywords: []string{"регистрац", "registration", "реєстрац", "зарегистр", "register", "зареєстр"},
		Blocks:   []string{BlockRegistrationSteps, BlockAfterRegistration},
	},
}

// AllTopics returns priority topics followed by general ones.
func AllTopics() []Topic {
	out := make([]Topic, 0, len(PriorityTopics)+len(GeneralTopics))
	out = append(out, PriorityTopics...)
	return append(out, GeneralTopics...)
}

// Match is a training block selected for a question.
type Match struct {
	Topic string
	Block string
	Text  string
}

// FindBlocks returns the blocks relevant to normalized text. A priority topic
// hit short-circuits the general scan.
func FindBlocks(text string, lang models.Language) []Match {
	for _, topic := range PriorityTopics {
		if _, ok := ContainsAny(text, topic.Keywords); ok {
			return blocksFor(topic, lang)
		}
	}

	var out []Match
	seen := make(map[string]bool)
	for _, topic := range GeneralTopics {
		if _, ok := ContainsAny(text, topic.Keywords); !ok {
			continue
		}
		for _, m := range blocksFor(topic, lang) {
			if seen[m.Block] {
				continue
			}
			seen[m.Block] = true
			out = append(out, m)
		}
	}
	return out
}

func blocksFor(topic Topic, lang models.Language) []Match {
	out := make([]Match, 0, len(topic.Blocks))
	for _, key := range topic.Blocks {
		text := Block(key, lang)
		if text == "" {
			continue
		}
		out = append(out, Match{Topic: topic.Name, Block: key, Text: text})
	}
	return out
}

// Block returns a training block text in lang, falling back to Russian.
func Block(key string, lang models.Language) string {
	b, ok := trainingBlocks[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(b.In(lang))
}

// CategoryKeywords flattens every topic keyword, used for material ranking.
func CategoryKeywords() []string {
	var out []string
	for _, t := range AllTopics() {
		out = append(out, t.Keywords...)
	}
	return out
}
