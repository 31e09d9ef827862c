package knowledge

import "recruitbot/internal/models"

// FollowUps are short "what now" utterances answered from the bot's last messages.
var FollowUps = []string{
	"що мені робити", "что мне делать", "що робити", "что делать",
	"що мені", "что мне", "що далі", "что дальше",
	"що тепер", "что теперь", "що зараз", "что сейчас",
	"what should i do", "what now", "what next", "what to do", "what i need to do",
	"і що", "и что", "а що", "а теперь", "а тепер",
	"okay, what", "ok, what", "so what", "okay what",
}

// Markers searched in recent bot messages.
var (
	PhotoRequestMarkers = []string{
		"send 2-3 photos", "send 2–3 photos", "пришли 2-3 фото", "пришли 2–3 фото",
		"надішли 2-3 фото", "надішли 2–3 фото", "waiting for photos", "жду фото", "чекаю фото",
		"how to start", "як почати", "как начать", "if the format suits",
	}
	PhotoOnlyForMarkers = []string{"тільки для", "только для", "only for"}
	InstructionMarkers  = []string{
		"інструкц", "инструкц", "instruction",
		"реєстр", "регистр", "registr",
		"надішли", "пришли", "send",
		"скрин", "screenshot",
		"активуют", "активують", "activate",
		"офіс", "офис", "office",
		"тестовий період", "тестовый период",
		"заробити", "заработать",
	}
	OfficeMarkers = []string{"скрин", "screenshot", "офіс", "офис", "office"}
)

var (
	SendPhotosReply = models.Localized{
		models.LangRU: "Пришли мне 2-3 своих фото (хорошего качества, чтобы было чётко видно лицо) 📸",
		models.LangUK: "Надішли мені 2-3 свої фото (хорошої якості, щоб було чітко видно обличчя) 📸",
		models.LangEN: "Send me 2-3 photos of yourself (good quality, face clearly visible) 📸",
	}
	PhotosForReviewReply = models.Localized{
		models.LangRU: "Нужно отправить мне 2-3 своих фото. После этого я отправлю их на рассмотрение офису 😊",
		models.LangUK: "Потрібно надіслати мені 2-3 свої фото. Після цього я відправлю їх на розгляд офісу 😊",
		models.LangEN: "You need to send me 2-3 photos of yourself. After that I will send them for office review 😊",
	}
	WaitOfficeReply = models.Localized{
		models.LangRU: "Просто жди активации от офиса. Обычно это происходит на следующий будний день. Как только активируют — сможешь начать работать! 😊",
		models.LangUK: "Просто чекай активації від офісу. Зазвичай це відбувається наступного робочого дня. Як тільки активують — зможеш почати працювати! 😊",
		models.LangEN: "Just wait for activation from the office. Usually it happens the next business day. Once activated — you can start working! 😊",
	}
	FollowStepsReply = models.Localized{
		models.LangRU: "Следуй инструкциям выше шаг за шагом. Если что-то непонятно на конкретном шаге — спрашивай! 😊",
		models.LangUK: "Дотримуйся інструкцій вище крок за кроком. Якщо щось незрозуміло на конкретному кроці — питай! 😊",
		models.LangEN: "Follow the instructions above step by step. If something is unclear at a specific step — ask! 😊",
	}
)
