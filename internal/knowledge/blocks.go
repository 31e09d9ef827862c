package knowledge

import "recruitbot/internal/models"

// RegistrationLink is where the host app is downloaded from.
const RegistrationLink = "https://livegirl.me/#/mobilepage"

// AgencyName is the agency selected during registration.
const AgencyName = "Tosagency-Ukraine"

var trainingBlocks = map[string]models.Localized{
	BlockStartHunting: {
		models.LangRU: `Нажми значок сети и выбери "начать охоту" (start hunting). Эта функция называется хайтинг/hunting.`,
		models.LangUK: `Натисни значок мережі і обери "почати полювання" (start hunting). Ця функція називається хайтинг/hunting.`,
		models.LangEN: `Tap the network icon and select "start hunting". This feature is called hunting.`,
	},
	BlockHuntingInfo: {
		models.LangRU: `Охота (hunting) - это обязательная функция перед звонками:
- Дает +4 коина ($0.20) и повышает цену за звонок
- Звонок сбрасывается автоматически через 2 минуты
- Если клиент отключился раньше - охота не засчитывается, нужно проходить повторно
- Если не прошла охоту - минус 20% коинов со всех звонков
- Если получила дизлайк - минус 25% коинов
- Делать раз в сутки, до звонков`,
		models.LangUK: `Полювання (hunting) - це обов'язкова функція перед дзвінками:
- Дає +4 коїна ($0.20) і підвищує ціну за дзвінок
- Дзвінок скидається автоматично через 2 хвилини
- Якщо клієнт відключився раніше - полювання не зараховується, потрібно проходити повторно
- Якщо не пройшла полювання - мінус 20% коїнів з усіх дзвінків
- Якщо отримала дизлайк - мінус 25% коїнів
- Робити раз на добу, до дзвінків`,
		models.LangEN: `Hunting is mandatory before calls:
- Gives +4 coins ($0.20) and increases call price
- Call resets automatically after 2 minutes
- If client hangs up earlier - hunt doesn't count, need to repeat
- If you didn't complete the hunt - minus 20% coins from all calls
- If you got a dislike - minus 25% coins
- Do it once per day, before calls`,
	},
	BlockMultibeamJoin: {
		models.LangRU: `Чтобы присоединиться к мультибиму, нажми "Press unit" и жди очередь, пока тебя подключат в спот.`,
		models.LangUK: `Щоб приєднатися до мультибіму, натисни "Press unit" і чекай чергу, поки тебе підключать у спот.`,
		models.LangEN: `To join multibeam, press "Press unit" and wait in line until they connect you to a spot.`,
	},
	BlockMultibeamTypes: {
		models.LangRU: `Есть два типа Multi Beam:
1) Официальные - в самом верху в закреплённых. Иногда могут не добавить, особенно если арабский эфир
2) Неофициальные - немного ниже официальных, иногда появляются. Не всегда доступны, но можно зайти и заработать
Если войдёшь в топ 200 приложения - откроется доступ к открытию своего неофициального MultiBeam`,
		models.LangUK: `Є два типи Multi Beam:
1) Офіційні - на самому верху в закріплених. Іноді можуть не додати, особливо якщо арабський ефір
2) Неофіційні - трохи нижче офіційних, іноді з'являються. Не завжди доступні, але можна зайти і заробити
Якщо потрапиш у топ 200 застосунку - відкриється доступ до відкриття свого неофіційного MultiBeam`,
		models.LangEN: `There are two types of Multi Beam:
1) Official - at the very top in the pinned section. Sometimes they may not add you, especially for Arabic streams
2) Unofficial - a bit below the official ones, they appear from time to time. Not always available, but you can join and earn
If you get into the app's top 200 - you can open your own unofficial MultiBeam`,
	},
	BlockProfileSetup: {
		models.LangRU: `Настройка профиля:
- Установи теги - мужчины ищут девушек по тегам
- Добавь привлекательные фото - именно фото влияют на решение написать или позвонить
- Можно добавлять фото в купальнике, в образах где чувствуешь себя уверенно
- Профиль - это твоя витрина, сделай его привлекательным`,
		models.LangUK: `Налаштування профілю:
- Встанови теги - чоловіки шукають дівчат за тегами
- Додай привабливі фото - саме фото впливають на рішення написати або зателефонувати
- Можна додавати фото в купальнику, в образах де почуваєшся впевнено
- Профіль - це твоя вітрина, зроби його привабливим`,
		models.LangEN: `Profile setup:
- Set tags - men search for girls by tags
- Add attractive photos - photos influence the decision to write or call
- You can add photos in a swimsuit, in outfits where you feel confident
- Your profile is your showcase, make it attractive`,
	},
	BlockProfileEdit: {
		models.LangRU: `Редактирование профиля:
1. Нажми на свою иконку → стрелочку → редактировать
2. Можешь изменить: аватар, обложку, привлекательные фото
3. Аватар и обложка должны отличаться
4. ЗАПРЕЩЕНО постить фото в нижнем белье или купальнике на аватар/обложку
5. Такие фото только в "привлекательные фотографии" (платный раздел)
6. Можно изменить: никнейм, возраст, область, языки
7. В "Обо мне" напиши например: "I'm new here, be gentleman"`,
		models.LangUK: `Редагування профілю:
1. Натисни на свою іконку → стрілочку → редагувати
2. Можеш змінити: аватар, обкладинку, привабливі фото
3. Аватар і обкладинка мають відрізнятися
4. ЗАБОРОНЕНО ставити фото в нижній білизні чи купальнику на аватар/обкладинку
5. Такі фото тільки в "привабливі фотографії" (платний розділ)
6. Можна змінити: нікнейм, вік, область, мови
7. У "Про мене" напиши наприклад: "I'm new here, be gentleman"`,
		models.LangEN: `Editing your profile:
1. Tap your icon → the arrow → edit
2. You can change: avatar, cover, attractive photos
3. Avatar and cover must be different
4. It is FORBIDDEN to use underwear or swimsuit photos as avatar/cover
5. Such photos go only to "attractive photos" (paid section)
6. You can change: nickname, age, region, languages
7. In "About me" write for example: "I'm new here, be gentleman"`,
	},
	BlockPostsActivity: {
		models.LangRU: `Публикация постов = больше звонков:
- Делай от 20 постов в день
- Интервал - 1 пост каждые 10-15 минут
- Запрещено: AI-фото, фото с Pinterest, чужие фото
- Нарушения = бан от 3 дней или навсегда`,
		models.LangUK: `Публікація постів = більше дзвінків:
- Роби від 20 постів на день
- Інтервал - 1 пост кожні 10-15 хвилин
- Заборонено: AI-фото, фото з Pinterest, чужі фото
- Порушення = бан від 3 днів або назавжди`,
		models.LangEN: `Posting = more calls:
- Make at least 20 posts per day
- Interval - 1 post every 10-15 minutes
- Forbidden: AI photos, Pinterest photos, other people's photos
- Violations = ban from 3 days or forever`,
	},
	BlockHowToPost: {
		models.LangRU: `Как публиковать посты:
1. Нажми на кнопку публикации
2. Добавь подпись ОБЯЗАТЕЛЬНО на английском (например: "I'm new here" или "Call me")
3. Нажми плюс, добавь фото
4. Нажми опубликовать
Можешь заходить в ленту смотреть как далеко твоё фото - если далеко, публикуй новое`,
		models.LangUK: `Як публікувати пости:
1. Натисни кнопку публікації
2. Додай підпис ОБОВ'ЯЗКОВО англійською (наприклад: "I'm new here" або "Call me")
3. Натисни плюс, додай фото
4. Натисни опублікувати
Можеш заходити в стрічку дивитися, як далеко твоє фото - якщо далеко, публікуй нове`,
		models.LangEN: `How to publish posts:
1. Tap the publish button
2. Add a caption, ALWAYS in English (for example: "I'm new here" or "Call me")
3. Tap plus and add a photo
4. Tap publish
Check the feed to see how far down your photo is - if it's far, publish a new one`,
	},
	BlockStreamPosture: {
		models.LangRU: `Как правильно сидеть в эфире:
✅ МОЖНО: сидеть ровно, камера на уровне глаз (телефон прямо напротив лица), видно лицо, хороший свет
❌ НЕЛЬЗЯ: лежать, снимать снизу или сверху, сутулиться, тёмный кадр`,
		models.LangUK: `Як правильно сидіти в ефірі:
✅ МОЖНА: сидіти рівно, камера на рівні очей (телефон прямо навпроти обличчя), видно обличчя, хороше освітлення
❌ НЕ МОЖНА: лежати, знімати знизу або зверху, горбитися, темний кадр`,
		models.LangEN: `How to sit correctly during a stream:
✅ ALLOWED: sit straight, camera at eye level (phone directly in front of your face), face visible, good lighting
❌ NOT ALLOWED: lying down, filming from below or above, slouching, dark frame`,
	},
	BlockStreamStart: {
		models.LangRU: `Запуск прямого эфира:
1. Нажми start, чтобы запустить
2. Выбери обложку (НЕ в нижнем белье, иначе отключат)
3. Напиши название комнаты: "I'm new here"
4. Описание: "Call me"
5. Квота комнаты - сколько хочешь заработать монет
6. Выбери подарок для приватной зоны (рекомендую 99 монет сначала)
7. Можешь выбрать маски
8. Нажми start`,
		models.LangUK: `Запуск прямого ефіру:
1. Натисни start, щоб запустити
2. Обери обкладинку (НЕ у нижній білизні, інакше відключать)
3. Напиши назву кімнати: "I'm new here"
4. Опис: "Call me"
5. Квота кімнати - скільки хочеш заробити монет
6. Обери подарунок для приватної зони (рекомендую 99 монет спочатку)
7. Можеш обрати маски
8. Натисни start`,
		models.LangEN: `Starting a live stream:
1. Press start to launch
2. Choose a cover (NOT in underwear, or they'll disconnect you)
3. Write the room title: "I'm new here"
4. Description: "Call me"
5. Room quota - how many coins you want to earn
6. Choose a gift for the private zone (I recommend 99 coins at first)
7. You can choose masks
8. Press start`,
	},
	BlockStreamMessages: {
		models.LangRU: `Когда запускаешь эфир - ОБЯЗАТЕЛЬНО пиши мужчинам:
- Видишь зашёл мужчина с s-vip или уровнем
- Сразу нажми на его nickname
- Напиши: "Hi, call me"
- Большинство заходят, смотрят и уходят - важно написать первой`,
		models.LangUK: `Коли запускаєш ефір - ОБОВ'ЯЗКОВО пиши чоловікам:
- Бачиш, зайшов чоловік з s-vip або рівнем
- Одразу натисни на його nickname
- Напиши: "Hi, call me"
- Більшість заходять, дивляться і йдуть - важливо написати першою`,
		models.LangEN: `When you start a stream - ALWAYS message the men:
- You see a man with s-vip or a level join
- Tap his nickname right away
- Write: "Hi, call me"
- Most join, look and leave - it's important to write first`,
	},
	BlockStreamRules: {
		models.LangRU: `Правила прямых эфиров:
ЗАПРЕЩЕНО:
- Показывать интимные части тела крупным планом
- Тверкинг, тряска телом, эротичные движения
- Трогать интимные части тела
- Стонать или издавать эротические звуки
- Показывать секс-игрушки
- Использовать предметы фаллической формы (банан, огурец)
ДРЕСС-КОД:
- Запрещена одежда с открытыми сосками или большой частью груди
- Запрещена слишком откровенная/прозрачная одежда без прикрытия
- Нижнее бельё и стринги РАЗРЕШЕНЫ`,
		models.LangUK: `Правила прямих ефірів:
ЗАБОРОНЕНО:
- Показувати інтимні частини тіла великим планом
- Тверкінг, трясіння тілом, еротичні рухи
- Торкатися інтимних частин тіла
- Стогнати або видавати еротичні звуки
- Показувати секс-іграшки
- Використовувати предмети фалічної форми (банан, огірок)
ДРЕС-КОД:
- Заборонений одяг з відкритими сосками або великою частиною грудей
- Заборонений занадто відвертий/прозорий одяг без прикриття
- Нижня білизна і стрінги ДОЗВОЛЕНІ`,
		models.LangEN: `Live stream rules:
FORBIDDEN:
- Showing intimate body parts in close-up
- Twerking, body shaking, erotic movements
- Touching intimate body parts
- Moaning or making erotic sounds
- Showing sex toys
- Using phallic-shaped objects (banana, cucumber)
DRESS CODE:
- Clothes with exposed nipples or most of the chest are forbidden
- Overly revealing/transparent clothes without cover are forbidden
- Underwear and thongs ARE ALLOWED`,
	},
	BlockTasks: {
		models.LangRU: `Выполнение заданий:
- Нажми "центр задач"
- Есть ежедневные, еженедельные, ежемесячные задания
- За них получаешь золотые коины (доллары) или фиолетовые очки
- За очки можешь удалять дизлайки или продвигать трансляцию
В магазине очков:
- День без охоты - 300 очков
- Увеличение актива в комнате - 200 очков
- Минус один дизлайк - 200 очков`,
		models.LangUK: `Виконання завдань:
- Натисни "центр завдань"
- Є щоденні, щотижневі, щомісячні завдання
- За них отримуєш золоті коїни (долари) або фіолетові очки
- За очки можеш видаляти дизлайки або просувати трансляцію
У магазині очок:
- День без полювання - 300 очок
- Збільшення активу в кімнаті - 200 очок
- Мінус один дизлайк - 200 очок`,
		models.LangEN: `Completing tasks:
- Tap "task center"
- There are daily, weekly and monthly tasks
- They give you gold coins (dollars) or purple points
- Points can delete dislikes or promote your stream
In the points shop:
- A day without hunting - 300 points
- Room activity boost - 200 points
- Minus one dislike - 200 points`,
	},
	BlockDislikesInfo: {
		models.LangRU: `Два коэффициента дизлайков:
1️⃣ Коэффициент в профиле (видишь в профиле):
- Всегда должен быть НИЖЕ 0.18
- Если 0.18 или выше - нарушение, могут заблокировать
2️⃣ Коэффициент за 30 дней (не видно):
- Нужно считать самостоятельно
- Офис проверяет каждый день
- Тоже должен быть ниже 0.18`,
		models.LangUK: `Два коефіцієнти дизлайків:
1️⃣ Коефіцієнт у профілі (бачиш у профілі):
- Завжди має бути НИЖЧЕ 0.18
- Якщо 0.18 або вище - порушення, можуть заблокувати
2️⃣ Коефіцієнт за 30 днів (не видно):
- Потрібно рахувати самостійно
- Офіс перевіряє щодня
- Також має бути нижче 0.18`,
		models.LangEN: `Two dislike ratios:
1️⃣ Profile ratio (you can see it):
- Must always be BELOW 0.18
- 0.18 or higher is a violation, you may be blocked
2️⃣ 30-day ratio (not visible):
- You need to calculate it yourself
- The office checks it daily
- Must also be below 0.18`,
	},
	BlockDislikesDelete: {
		models.LangRU: `Как удалить дизлайк:
1. Зайди в "центр задач"
2. Выполняй задания, чтобы получить фиолетовые очки
3. Накопи 200 очков
4. Зайди в магазин очков
5. Купи "Минус один дизлайк" за 200 очков
Так можно удалять дизлайки и поддерживать коэффициент ниже 0.18 ✅`,
		models.LangUK: `Як видалити дизлайк:
1. Зайди в "центр завдань"
2. Виконуй завдання, щоб отримати фіолетові очки
3. Накопи 200 очок
4. Зайди в магазин очок
5. Купи "Мінус один дизлайк" за 200 очок
Так можна видаляти дизлайки і підтримувати коефіцієнт нижче 0.18 ✅`,
		models.LangEN: `How to delete a dislike:
1. Go to "task center"
2. Complete tasks to get purple points
3. Collect 200 points
4. Go to the points shop
5. Buy "Minus one dislike" for 200 points
This way you can delete dislikes and keep the ratio below 0.18 ✅`,
	},
	BlockAutoMessages: {
		models.LangRU: `Автосообщения:
- ОБЯЗАТЕЛЬНО делай автосообщения
- Через 10 дней несколько мужчин могут открыть платный контент
- Одно сообщение идёт ~600 мужчинам
- Откроют ~10, купят 1-2
- Если 10 автосообщений работают - это +$100
- Работают в долгую - настраивай и жди`,
		models.LangUK: `Автоповідомлення:
- ОБОВ'ЯЗКОВО роби автоповідомлення
- Через 10 днів кілька чоловіків можуть відкрити платний контент
- Одне повідомлення йде ~600 чоловікам
- Відкриють ~10, куплять 1-2
- Якщо 10 автоповідомлень працюють - це +$100
- Працюють на довгу дистанцію - налаштовуй і чекай`,
		models.LangEN: `Auto-messages:
- You MUST set up auto-messages
- After 10 days several men may unlock paid content
- One message goes to ~600 men
- ~10 will open it, 1-2 will buy
- If 10 auto-messages work - that's +$100
- They work long-term - set them up and wait`,
	},
	BlockRegistrationSteps: {
		models.LangRU: `Регистрация в Halo:
1. Скачай приложение For hosts (розовое) с ` + RegistrationLink + `
2. Открой → нажми "Регистрация"
3. Введи: почту, пароль
4. Укажи: никнейм, возраст, языки (арабский, английский, украинский, русский)
5. В разделе Агентство: ` + AgencyName + `
6. Загрузи фото и запиши видео-приветствие
Видео: "Hello, my name is [имя]. I am [возраст] years old. I live in [страна]. I want to join."
7. Пришли скрин с ID и агентством
8. Я отправлю заявку в офис
9. На следующий будний день активируют аккаунт`,
		models.LangUK: `Реєстрація в Halo:
1. Завантаж застосунок For hosts (рожевий) з ` + RegistrationLink + `
2. Відкрий → натисни "Реєстрація"
3. Введи: пошту, пароль
4. Вкажи: нікнейм, вік, мови (арабська, англійська, українська, російська)
5. У розділі Агентство: ` + AgencyName + `
6. Завантаж фото і запиши відео-привітання
Відео: "Hello, my name is [ім'я]. I am [вік] years old. I live in [країна]. I want to join."
7. Надішли скрин з ID та агентством
8. Я відправлю заявку в офіс
9. Наступного робочого дня активують акаунт`,
		models.LangEN: `Registering in Halo:
1. Download the For hosts app (pink) from ` + RegistrationLink + `
2. Open it → tap "Registration"
3. Enter: email, password
4. Fill in: nickname, age, languages (Arabic, English, Ukrainian, Russian)
5. In the Agency section: ` + AgencyName + `
6. Upload photos and record a video greeting
Video: "Hello, my name is [name]. I am [age] years old. I live in [country]. I want to join."
7. Send me a screenshot with your ID and agency
8. I'll send the application to the office
9. The account is activated on the next business day`,
	},
	BlockAfterRegistration: {
		models.LangRU: `После регистрации:
- Присоединяйся к двум группам
- В группе «Обучение» есть закреплённое сообщение с полной информацией
- Обязательно ознакомься с ним!
Если возникнут вопросы — пиши, я всегда на связи и помогу 😊`,
		models.LangUK: `Після реєстрації:
- Приєднуйся до двох груп
- У групі «Навчання» є закріплене повідомлення з повною інформацією
- Обов'язково ознайомся з ним!
Якщо виникнуть питання — пиши, я завжди на зв'язку і допоможу 😊`,
		models.LangEN: `After registration:
- Join the two groups
- The "Training" group has a pinned message with full information
- Be sure to read it!
If you have questions — write me, I'm always here to help 😊`,
	},
	BlockAgencyName: {
		models.LangRU: "В разделе Агентство выбирай: " + AgencyName + " 😊",
		models.LangUK: "У розділі Агентство обирай: " + AgencyName + " 😊",
		models.LangEN: "In the Agency section choose: " + AgencyName + " 😊",
	},
}
