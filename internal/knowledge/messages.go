package knowledge

import (
	"fmt"

	"recruitbot/internal/models"
)

// Тексты интерфейса. Welcome и rejection могут быть переопределены через settings.
var (
	Welcome = models.Localized{
		models.LangRU: "Привет 😊 Я менеджер агентства Valencia.\n\nМы набираем девушек для работы стрим-моделью в приложении Halo: общение, эфиры и видеозвонки, свободный график, от 50$ в день.\n\nЕсли формат интересен — пришли 2-3 фото, где хорошо видно лицо 📸\nЕсть вопросы — спрашивай!",
		models.LangUK: "Привіт 😊 Я менеджер агентства Valencia.\n\nМи набираємо дівчат для роботи стрім-моделлю в застосунку Halo: спілкування, ефіри та відеодзвінки, вільний графік, від 50$ на день.\n\nЯкщо формат цікавий — надішли 2-3 фото, де добре видно обличчя 📸\nЄ питання — питай!",
		models.LangEN: "Hi 😊 I'm a manager of the Valencia agency.\n\nWe are looking for girls to work as stream models in the Halo app: chatting, streams and video calls, free schedule, from 50$ per day.\n\nIf the format suits you — send 2-3 photos with your face clearly visible 📸\nAny questions — just ask!",
	}
	Rejection = models.Localized{
		models.LangRU: "Спасибо за интерес к нашему агентству! К сожалению, сейчас мы не можем предложить тебе сотрудничество. Желаем удачи 🙏",
		models.LangUK: "Дякуємо за інтерес до нашого агентства! На жаль, зараз ми не можемо запропонувати тобі співпрацю. Бажаємо удачі 🙏",
		models.LangEN: "Thank you for your interest in our agency! Unfortunately we cannot offer you cooperation right now. Good luck 🙏",
	}
	WelcomeBack = models.Localized{
		models.LangRU: "С возвращением! Чем могу помочь? 😊",
		models.LangUK: "З поверненням! Чим можу допомогти? 😊",
		models.LangEN: "Welcome back! How can I help? 😊",
	}
	WelcomeGroupMember = models.Localized{
		models.LangRU: "Привет! Вижу ты уже с нами в группе 😊\nЧем могу помочь?",
		models.LangUK: "Привіт! Бачу ти вже з нами в групі 😊\nЧим можу допомогти?",
		models.LangEN: "Hi! I see you are already with us in the group 😊\nHow can I help?",
	}
	LanguageSwitched = models.Localized{
		models.LangRU: "Хорошо, буду отвечать на русском 😊",
		models.LangUK: "Добре, відповідатиму українською 😊",
		models.LangEN: "Okay, I will reply in English 😊",
	}
	StorageFailure = models.Localized{
		models.LangRU: "Что-то пошло не так, попробуй ещё раз через минуту 🙏",
		models.LangUK: "Щось пішло не так, спробуй ще раз за хвилину 🙏",
		models.LangEN: "Something went wrong, please try again in a minute 🙏",
	}
	Continued = models.Localized{
		models.LangRU: "\n\n(продолжение в следующем сообщении...)",
		models.LangUK: "\n\n(продовження в наступному повідомленні...)",
		models.LangEN: "\n\n(continued in the next message...)",
	}
)

// Фото и анкета.
var (
	PhotosNeedMore = models.Localized{
		models.LangRU: "Отлично! Нужно ещё минимум %d фото 📸",
		models.LangUK: "Чудово! Потрібно ще мінімум %d фото 📸",
		models.LangEN: "Great! I need at least %d more photo(s) 📸",
	}
	PhotosTooMany = models.Localized{
		models.LangRU: "Максимум %d фото! У тебя уже загружено достаточно 👍",
		models.LangUK: "Максимум %d фото! У тебе вже завантажено достатньо 👍",
		models.LangEN: "Maximum %d photos! You have already uploaded enough 👍",
	}
	AlbumTooLarge = models.Localized{
		models.LangRU: "Можно загрузить максимум %d фото! Отправь не больше %d фото.",
		models.LangUK: "Можна завантажити максимум %d фото! Надішли не більше %d фото.",
		models.LangEN: "You can upload at most %d photos! Send no more than %d photos.",
	}
	PhotosOnly = models.Localized{
		models.LangRU: "Для рассмотрения нужны именно фото, не видео 📸 Пришли 2-3 фото, где хорошо видно лицо.",
		models.LangUK: "Для розгляду потрібні саме фото, не відео 📸 Надішли 2-3 фото, де добре видно обличчя.",
		models.LangEN: "For the review I need photos, not videos 📸 Send 2-3 photos with your face clearly visible.",
	}
	QuestionWorkHours = models.Localized{
		models.LangRU: "Отлично! Теперь несколько вопросов:\n\n1️⃣ Сколько времени в день ты готова уделять нашему приложению?\n(Ответь в свободной форме)",
		models.LangUK: "Чудово! Тепер кілька питань:\n\n1️⃣ Скільки часу на день ти готова приділяти нашому застосунку?\n(Відповідай у вільній формі)",
		models.LangEN: "Great! Now a few questions:\n\n1️⃣ How much time per day are you ready to spend in our app?\n(Answer in free form)",
	}
	QuestionExperience = models.Localized{
		models.LangRU: "2️⃣ Был ли у тебя опыт работы в похожих приложениях или платформах?\n(Если да — опиши кратко. Если нет — так и напиши)",
		models.LangUK: "2️⃣ Чи був у тебе досвід роботи в схожих застосунках або платформах?\n(Якщо так — опиши коротко. Якщо ні — так і напиши)",
		models.LangEN: "2️⃣ Have you worked in similar apps or platforms before?\n(If yes, describe briefly. If not, just say so)",
	}
	ApplicationSubmitted = models.Localized{
		models.LangRU: "Спасибо! Твоя заявка отправлена на рассмотрение 😊",
		models.LangUK: "Дякую! Твою заявку відправлено на розгляд 😊",
		models.LangEN: "Thank you! Your application has been sent for review 😊",
	}
)

// Регистрация после одобрения.
var (
	RegistrationDownload = models.Localized{
		models.LangRU: "🔰 Скачивание приложения\nЗаходишь на сайт и скачиваешь приложение For hosts (выделено розовым цветом).\n" + RegistrationLink,
		models.LangUK: "🔰 Завантаження застосунку\nЗаходиш на сайт і завантажуєш застосунок For hosts (виділено рожевим кольором).\n" + RegistrationLink,
		models.LangEN: "🔰 Downloading the app\nGo to the website and download the For hosts app (highlighted in pink).\n" + RegistrationLink,
	}
	RegistrationSteps = models.Localized{
		models.LangRU: "📰 Регистрация\n1. Вводишь почту и придумываешь пароль.\n2. Указываешь никнейм, возраст и языки.\n3. В поле агентства выбираешь " + AgencyName + ".\n4. Загружаешь фото и видео-приветствие. Пример: \"Hello, my name is Anya. I am 18 years old. I live in Germany. I want to join.\"\n5. Присылаешь мне скриншот профиля, где видно ID и агентство.\n\nОфис активирует аккаунт на следующий будний день ✅",
		models.LangUK: "📰 Реєстрація\n1. Вводиш пошту і придумуєш пароль.\n2. Вказуєш нікнейм, вік і мови.\n3. У полі агентства обираєш " + AgencyName + ".\n4. Завантажуєш фото і відео-привітання. Приклад: \"Hello, my name is Anya. I am 18 years old. I live in Germany. I want to join.\"\n5. Надсилаєш мені скріншот профілю, де видно ID і агентство.\n\nОфіс активує акаунт наступного робочого дня ✅",
		models.LangEN: "📰 Registration\n1. Enter your email and create a password.\n2. Set your nickname, age and languages.\n3. In the agency field choose " + AgencyName + ".\n4. Upload a photo and a video greeting. Example: \"Hello, my name is Anya. I am 18 years old. I live in Germany. I want to join.\"\n5. Send me a screenshot of your profile showing the ID and the agency.\n\nThe office activates the account on the next business day ✅",
	}
	ScreenshotAccepted = models.Localized{
		models.LangRU: "Отлично! Твоя заявка отправлена в офис. На следующий будний день твой аккаунт активируют ✅",
		models.LangUK: "Чудово! Твою заявку відправлено в офіс. Наступного робочого дня твій акаунт активують ✅",
		models.LangEN: "Great! Your request has been sent to the office. Your account will be activated on the next business day ✅",
	}
	ScreenshotNoID = models.Localized{
		models.LangRU: "Не могу распознать ID на скриншоте. Пожалуйста, пришли его вручную текстом (только цифры).",
		models.LangUK: "Не можу розпізнати ID на скріншоті. Будь ласка, надішли його вручну текстом (тільки цифри).",
		models.LangEN: "I can't recognize the ID on the screenshot. Please send it manually as text (digits only).",
	}
	ScreenshotFailed = models.Localized{
		models.LangRU: "Произошла ошибка при обработке скриншота. Попробуй ещё раз или напиши ID вручную.",
		models.LangUK: "Сталася помилка під час обробки скріншота. Спробуй ще раз або напиши ID вручну.",
		models.LangEN: "An error occurred while processing the screenshot. Try again or type the ID manually.",
	}
	ScreenshotPrompt = models.Localized{
		models.LangRU: "Пришли скриншот профиля, где видно ID, или напиши ID цифрами 🙂",
		models.LangUK: "Надішли скріншот профілю, де видно ID, або напиши ID цифрами 🙂",
		models.LangEN: "Send a screenshot of your profile showing the ID, or type the ID in digits 🙂",
	}
)

// Передача менеджеру.
var (
	EscalationAck = models.Localized{
		models.LangRU: "Передаю твой вопрос менеджеру, скоро получишь ответ! 😊",
		models.LangUK: "Передаю твоє питання менеджеру, скоро отримаєш відповідь! 😊",
		models.LangEN: "I'm passing your question to a manager, you'll get an answer soon! 😊",
	}
	FollowUpAck = models.Localized{
		models.LangRU: "Твой вопрос передан менеджеру, скоро тебе ответят! 😊",
		models.LangUK: "Твоє питання передано менеджеру, скоро тобі дадуть відповідь! 😊",
		models.LangEN: "Your question has been passed to a manager, you'll get a reply soon! 😊",
	}
)

// Отзывы.
var (
	ReviewsIntro = models.Localized{
		models.LangRU: "Конечно! Вот отзывы наших девочек 😊",
		models.LangUK: "Звісно! Ось відгуки наших дівчат 😊",
		models.LangEN: "Sure! Here are reviews from our girls 😊",
	}
	ReviewsOutro = models.Localized{
		models.LangRU: "Вот такие результаты у наших моделей! Готова присоединиться? 💪",
		models.LangUK: "Ось такі результати у наших моделей! Готова приєднатися? 💪",
		models.LangEN: "These are the results of our models! Ready to join? 💪",
	}
	ReviewsFallback = models.Localized{
		models.LangRU: "Конечно! У нас много довольных девочек, которые успешно работают 😊",
		models.LangUK: "Звісно! У нас багато задоволених дівчат, які успішно працюють 😊",
		models.LangEN: "Of course! We have many happy girls who work successfully 😊",
	}
)

// ReviewKeywords mark a request for testimonials.
var ReviewKeywords = []string{
	"отзыв", "відгук", "review", "testimonial",
	"реальн", "кто работал", "хто працював", "кто работает", "хто працює",
	"девочки зарабатывают", "дівчата заробляють",
	"можно ли доверять", "чи можна довіряти", "это правда", "це правда", "это реально", "це реально",
}

// IsReviewRequest reports whether the text asks for testimonials.
func IsReviewRequest(text string) bool {
	_, ok := ContainsAny(Normalize(text), ReviewKeywords)
	return ok
}

var ratioReport = models.Localized{
	models.LangRU: "Твой коэффициент: %.3f\n\nДизлайки: %d\nЛайки: %d\nВсего: %d\n\n",
	models.LangUK: "Твій коефіцієнт: %.3f\n\nДизлайки: %d\nЛайки: %d\nВсього: %d\n\n",
	models.LangEN: "Your ratio: %.3f\n\nDislikes: %d\nLikes: %d\nTotal: %d\n\n",
}

var (
	ratioGood = models.Localized{
		models.LangRU: "✅ Это хорошо! Коэффициент ниже 0.18",
		models.LangUK: "✅ Це добре! Коефіцієнт нижче 0.18",
		models.LangEN: "✅ This is good! Ratio is below 0.18",
	}
	ratioBad = models.Localized{
		models.LangRU: "⚠️ ВНИМАНИЕ! Коэффициент 0.18 или выше — это нарушение! Срочно удаляй дизлайки через центр заданий (200 очков за дизлайк)",
		models.LangUK: "⚠️ УВАГА! Коефіцієнт 0.18 або вище — це порушення! Терміново видаляй дизлайки через центр завдань (200 очок за дизлайк)",
		models.LangEN: "⚠️ WARNING! Ratio 0.18 or higher is a violation! Urgently delete dislikes through the task center (200 points per dislike)",
	}
)

// RatioReport renders the dislike ratio answer.
func RatioReport(lang models.Language, dislikes, likes int, ratio float64, ok bool) string {
	verdict := ratioBad.In(lang)
	if ok {
		verdict = ratioGood.In(lang)
	}
	return fmt.Sprintf(ratioReport.In(lang), ratio, dislikes, likes, dislikes+likes) + verdict
}

// Операторские тексты всегда на русском.
const (
	OperatorQuestionCard   = "❓ Вопрос от %s:\n\n%s"
	OperatorFollowUpCard   = "❓ Дополнительный вопрос от %s:\n\n%s"
	OperatorApplicationFmt = "👤 %s\n🔗 %s\n\n⏰ Время: %s\n💼 Опыт: %s"
	OperatorDecisionPrompt = "Принять решение по %s:"
	OperatorScreenshotFmt  = "📸 Скриншот\n🆔 ID: %s\n👤 %s"
	OperatorApprovedMark   = "\n\n✅ ОДОБРЕНО"
	OperatorRejectedMark   = "\n\n❌ ОТКЛОНЕНО"
)
