package knowledge

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"recruitbot/internal/models"
)

// Reactions are single-word affect messages answered without escalation.
var Reactions = map[string]models.Localized{
	"ок":        {models.LangRU: "Отлично! 😊", models.LangUK: "Чудово! 😊", models.LangEN: "Great! 😊"},
	"окей":      {models.LangRU: "Супер! 👍", models.LangUK: "Супер! 👍", models.LangEN: "Perfect! 👍"},
	"хорошо":    {models.LangRU: "Отлично! 😊", models.LangUK: "Чудово! 😊", models.LangEN: "Excellent! 😊"},
	"добре":     {models.LangRU: "Чудово! 😊", models.LangUK: "Чудово! 😊", models.LangEN: "Great! 😊"},
	"понятно":   {models.LangRU: "Супер! 😊", models.LangUK: "Супер! 😊", models.LangEN: "Great! 😊"},
	"зрозуміло": {models.LangRU: "Добре! 😊", models.LangUK: "Добре! 😊", models.LangEN: "Good! 😊"},
	"класс":     {models.LangRU: "Рада помочь! 😊", models.LangUK: "Рада допомогти! 😊", models.LangEN: "Happy to help! 😊"},
	"супер":     {models.LangRU: "👍", models.LangUK: "👍", models.LangEN: "👍"},
	"круто":     {models.LangRU: "🔥", models.LangUK: "🔥", models.LangEN: "🔥"},
	"отлично":   {models.LangRU: "💪", models.LangUK: "💪", models.LangEN: "💪"},
	"ясно":      {models.LangRU: "👌", models.LangUK: "👌", models.LangEN: "👌"},
	"чудово":    {models.LangRU: "😊", models.LangUK: "😊", models.LangEN: "😊"},
	"fine":      {models.LangRU: "Отлично! 😊", models.LangUK: "Чудово! 😊", models.LangEN: "Great! 😊"},
	"okay":      {models.LangRU: "Супер! 👍", models.LangUK: "Супер! 👍", models.LangEN: "Perfect! 👍"},
	"ok":        {models.LangRU: "Отлично! 😊", models.LangUK: "Чудово! 😊", models.LangEN: "Great! 😊"},
	"good":      {models.LangRU: "Супер! 😊", models.LangUK: "Супер! 😊", models.LangEN: "Nice! 😊"},
	"great":     {models.LangRU: "Отлично! 🔥", models.LangUK: "Чудово! 🔥", models.LangEN: "Awesome! 🔥"},
	"nice":      {models.LangRU: "👍", models.LangUK: "👍", models.LangEN: "👍"},
	"cool":      {models.LangRU: "😊", models.LangUK: "😊", models.LangEN: "😊"},
}

// Phrase is a fixed phrase with its localized reply.
type Phrase struct {
	Key   string
	Reply models.Localized
}

// Greetings are matched exactly or as the opening of a very short message.
// Longer keys first so "как дела" wins over shorter prefixes.
var Greetings = []Phrase{
	{"здравствуйте", models.Localized{models.LangRU: "Здравствуй! Рада тебя видеть! Есть вопросы? 😊", models.LangUK: "Вітаю! Рада тебе бачити! Є питання? 😊", models.LangEN: "Hello! Nice to see you! Any questions? 😊"}},
	{"здравствуй", models.Localized{models.LangRU: "Здравствуй! Рада тебя видеть! Есть вопросы? 😊", models.LangUK: "Вітаю! Рада тебе бачити! Є питання? 😊", models.LangEN: "Hello! Nice to see you! Any questions? 😊"}},
	{"как дела", models.Localized{models.LangRU: "Отлично! У тебя как? 😊", models.LangUK: "Чудово! А у тебе як? 😊", models.LangEN: "Great! How are you? 😊"}},
	{"як справи", models.Localized{models.LangRU: "Отлично! У тебя как? 😊", models.LangUK: "Чудово! А у тебе як? 😊", models.LangEN: "Great! How are you? 😊"}},
	{"how are you", models.Localized{models.LangRU: "Отлично! У тебя как? 😊", models.LangUK: "Чудово! А у тебе як? 😊", models.LangEN: "Great! How are you? 😊"}},
	{"кто ты", models.Localized{models.LangRU: "Я менеджер агентства Valencia, помогаю девочкам начать работу в Halo 😊", models.LangUK: "Я менеджер агентства Valencia, допомагаю дівчатам почати роботу в Halo 😊", models.LangEN: "I'm a Valencia agency manager, helping girls start working in Halo 😊"}},
	{"хто ти", models.Localized{models.LangRU: "Я менеджер агентства Valencia, помогаю девочкам начать работу в Halo 😊", models.LangUK: "Я менеджер агентства Valencia, допомагаю дівчатам почати роботу в Halo 😊", models.LangEN: "I'm a Valencia agency manager, helping girls start working in Halo 😊"}},
	{"who are you", models.Localized{models.LangRU: "Я менеджер агентства Valencia, помогаю девочкам начать работу в Halo 😊", models.LangUK: "Я менеджер агентства Valencia, допомагаю дівчатам почати роботу в Halo 😊", models.LangEN: "I'm a Valencia agency manager, helping girls start working in Halo 😊"}},
	{"привет", models.Localized{models.LangRU: "Привет! Чем могу помочь? 😊", models.LangUK: "Привіт! Чим можу допомогти? 😊", models.LangEN: "Hi! How can I help? 😊"}},
	{"привіт", models.Localized{models.LangRU: "Привет! Есть вопросы? 😊", models.LangUK: "Привіт! Є питання? 😊", models.LangEN: "Hi! Any questions? 😊"}},
	{"вітаю", models.Localized{models.LangRU: "Здравствуй! Чем могу помочь? 😊", models.LangUK: "Вітаю! Чим можу допомогти? 😊", models.LangEN: "Hi! How can I help? 😊"}},
	{"спасибо", models.Localized{models.LangRU: "Пожалуйста! 😊", models.LangUK: "Будь ласка! 😊", models.LangEN: "You're welcome! 😊"}},
	{"дякую", models.Localized{models.LangRU: "Пожалуйста! 😊", models.LangUK: "Будь ласка! 😊", models.LangEN: "You're welcome! 😊"}},
	{"thank you", models.Localized{models.LangRU: "Пожалуйста! 😊", models.LangUK: "Будь ласка! 😊", models.LangEN: "You're welcome! 😊"}},
	{"thanks", models.Localized{models.LangRU: "Пожалуйста! 😊", models.LangUK: "Будь ласка! 😊", models.LangEN: "You're welcome! 😊"}},
	{"hello", models.Localized{models.LangRU: "Привет! Чем могу помочь? 😊", models.LangUK: "Привіт! Чим можу допомогти? 😊", models.LangEN: "Hello! How can I help? 😊"}},
	{"hi", models.Localized{models.LangRU: "Привет! Чем могу помочь? 😊", models.LangUK: "Привіт! Чим можу допомогти? 😊", models.LangEN: "Hi! How can I help? 😊"}},
}

// greetingTailWords is how many extra words a greeting may carry ("привет, дорогая").
const greetingTailWords = 2

// MatchGreeting checks normalized text against Greetings.
func MatchGreeting(text string) (Phrase, bool) {
	words := Words(text)
	if len(words) == 0 {
		return Phrase{}, false
	}
	joined := strings.Join(words, " ")
	for _, g := range Greetings {
		if joined == g.Key {
			return g, true
		}
		keyWords := strings.Fields(g.Key)
		if len(words) > len(keyWords) && len(words) <= len(keyWords)+greetingTailWords &&
			strings.HasPrefix(joined, g.Key+" ") {
			return g, true
		}
	}
	return Phrase{}, false
}

// MatchReaction checks a whole message against Reactions.
func MatchReaction(text string) (models.Localized, bool) {
	reply, ok := Reactions[Trimmed(text)]
	return reply, ok
}

// VideoInsteadOfPhoto catches "can I send a video instead".
var VideoInsteadOfPhoto = []string{
	"can i send video", "can i send a video", "video instead", "відео замість", "видео вместо",
	"можу відео", "могу видео", "відправити відео", "отправить видео", "надіслати відео",
}

var VideoReply = models.Localized{
	models.LangRU: "Нужны именно фото, не видео 📸 Пришли 2-3 фото хорошего качества, чтобы было чётко видно лицо 😊",
	models.LangUK: "Потрібні саме фото, не відео 📸 Надішли 2-3 фото хорошої якості, щоб було чітко видно обличчя 😊",
	models.LangEN: "We need photos, not videos 📸 Send 2-3 good quality photos with your face clearly visible 😊",
}

// TellMeMore triggers the long pitch document.
var TellMeMore = []string{
	"подробнее", "больше информации", "расскажи подробнее",
	"детальніше", "більше інформації", "розкажи детальніше",
	"more details", "more information", "tell me more",
}

// JustWait asks whether waiting for activation is all that's left.
var JustWait = []string{
	"просто ждать", "мне просто ждать", "мне ждать", "просто жду", "и все", "и всё", "теперь жду",
	"просто чекати", "мені чекати", "просто чекаю", "і все", "тепер чекаю",
	"just wait", "should i wait", "wait now",
}

var JustWaitReply = models.Localized{
	models.LangRU: "Да, просто жди 😊 Активация обычно происходит на следующий будний день. Как только активируют — сможешь начать зарабатывать! 💪",
	models.LangUK: "Так, просто чекай 😊 Активація зазвичай відбувається наступного робочого дня. Як тільки активують — зможеш почати заробляти! 💪",
	models.LangEN: "Yes, just wait 😊 Activation usually happens the next business day. Once activated — you can start earning! 💪",
}

var countryReply = models.Localized{
	models.LangRU: "У нас работают девочки со всех стран! %s подходит ✅ При регистрации можешь выбрать любую страну 😊",
	models.LangUK: "У нас працюють дівчата з усіх країн! %s підходить ✅ При реєстрації можеш вибрати будь-яку країну 😊",
	models.LangEN: "We have girls working from all countries! %s works perfectly ✅ During registration you can choose any country 😊",
}

// CountryReply renders the "any country works" answer for a matched country.
func CountryReply(country string, lang models.Language) string {
	return fmt.Sprintf(countryReply.In(lang), capitalize(country))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Countries are matched as whole words so "woman" does not hit "oman".
var Countries = []string{
	"азербайджан", "azerbaijan", "казахстан", "kazakhstan", "грузия", "грузія", "georgia",
	"беларусь", "білорусь", "belarus", "молдова", "moldova", "армения", "вірменія", "armenia",
	"узбекистан", "uzbekistan", "туркменистан", "turkmenistan", "таджикистан", "tajikistan",
	"кыргызстан", "киргизстан", "kyrgyzstan", "латвия", "латвія", "latvia", "литва", "lithuania",
	"эстония", "естонія", "estonia", "польша", "польща", "poland", "германия", "німеччина", "germany",
	"франция", "франція", "france", "италия", "італія", "italy", "испания", "іспанія", "spain",
	"турция", "туреччина", "turkey", "израиль", "ізраїль", "israel", "финляндия", "фінляндія", "finland",
	"швеция", "швеція", "sweden", "норвегия", "норвегія", "norway", "дания", "данія", "denmark",
	"швейцария", "швейцарія", "switzerland", "австрия", "австрія", "austria", "бельгия", "бельгія", "belgium",
	"нидерланды", "нідерланди", "netherlands", "греция", "греція", "greece", "чехия", "чехія", "czech",
	"венгрия", "угорщина", "hungary", "румыния", "румунія", "romania", "болгария", "болгарія", "bulgaria",
	"сербия", "сербія", "serbia", "хорватия", "хорватія", "croatia", "словакия", "словаччина", "slovakia",
	"словения", "словенія", "slovenia", "оаэ", "оае", "uae", "сша", "usa", "канада", "canada",
	"австралия", "австралія", "australia", "япония", "японія", "japan", "китай", "china",
	"индия", "індія", "india", "бразилия", "бразилія", "brazil", "мексика", "mexico",
	"аргентина", "argentina", "южная корея", "південна корея", "south korea", "иран", "іран", "iran",
	"ирак", "ірак", "iraq", "саудовская", "саудівська", "saudi", "кувейт", "kuwait", "катар", "qatar",
	"бахрейн", "bahrain", "оман", "oman", "украина", "україна", "ukraine", "россия", "росія", "russia",
}

// DetectCountry returns the first country named in normalized text.
func DetectCountry(text string) (string, bool) {
	padded := " " + strings.Join(Words(text), " ") + " "
	for _, c := range Countries {
		if strings.Contains(padded, " "+c+" ") {
			return c, true
		}
	}
	return "", false
}
