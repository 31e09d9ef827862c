package knowledge

import "recruitbot/internal/models"

// Pitch is the long overview sent on "tell me more".
var Pitch = models.Localized{
	models.LangRU: `Приветик 😊

🌟 РАБОТА СТРИМ-МОДЕЛЬЮ В ПРИЛОЖЕНИИ HALO 🌟

💬 Заработок на общении, прямых эфирах и приватных видеозвонках с мужчинами
📞 1 минута общения = 1$
💳 Комиссия агентства — 20%
👉 Чистый доход: 0.8$ за минуту

💰 Примеры заработка в звонках:
— 5 минут общения = 5$ → 4$ чистыми
— 10 минут = 10$ → 8$ чистыми
— 30 минут = 30$ → 24$ чистыми
— 1 час звонков = 60$ → 48$ чистыми

💵 От 50$ в день при активной работе

🌍 Аудитория: США, Европа, Англия, ОАЭ, арабские страны
🌐 Встроенный переводчик — английский не обязателен
🕒 Свободный график — работаешь, когда удобно

🎤 В открытых эфирах — только культурное общение
💎 Важно выглядеть опрятно и презентабельно
❌ Никакой эротики и откровенной одежды — за нарушение бан

📤 Вывод средств:
— Самостоятельно, срок 1–3 дня
— Есть видео-инструкция, как вывести деньги на карту или крипту
— Если возникают сложности — помогаем с выводом

📸 Как начать:
Пришли 2–3 фото
— хорошее качество
— чётко видно лицо
(фото только для внутреннего одобрения)

⚠️ Важно:
🔹 Первые 7 дней — тестовый период
🔹 Нужно заработать 100$
🔹 У каждой девушки есть только одна возможность создать аккаунт. Если аккаунт блокируют — новый создать нельзя
🚀 Новеньких активно продвигают
❌ Тест не пройден — аккаунт блокируется

Если формат подходит — жду фото 👋`,
	models.LangUK: `Привітик 😊

🌟 РОБОТА СТРІМ-МОДЕЛЛЮ В ЗАСТОСУНКУ HALO 🌟

💬 Заробіток на спілкуванні, прямих ефірах та приватних відеодзвінках з чоловіками
📞 1 хвилина спілкування = 1$
💳 Комісія агентства — 20%
👉 Чистий дохід: 0.8$ за хвилину

💰 Приклади заробітку в дзвінках:
— 5 хвилин спілкування = 5$ → 4$ чистими
— 10 хвилин = 10$ → 8$ чистими
— 30 хвилин = 30$ → 24$ чистими
— 1 година дзвінків = 60$ → 48$ чистими

💵 Від 50$ на день при активній роботі

🌍 Аудиторія: США, Європа, Англія, ОАЕ, арабські країни
🌐 Вбудований перекладач — англійська не обов'язкова
🕒 Вільний графік — працюєш, коли зручно

🎤 У відкритих ефірах — тільки культурне спілкування
💎 Важливо виглядати охайно і презентабельно
❌ Ніякої еротики та відвертого одягу — за порушення бан

📤 Виведення коштів:
— Самостійно, термін 1–3 дні
— Є відео-інструкція, як вивести гроші на карту або крипту
— Якщо виникають складнощі — допомагаємо з виведенням

📸 Як почати:
Надішли 2–3 фото
— хороша якість
— чітко видно обличчя
(фото тільки для внутрішнього схвалення)

⚠️ Важливо:
🔹 Перші 7 днів — тестовий період
🔹 Потрібно заробити 100$
🔹 У кожної дівчини є тільки одна можливість створити акаунт. Якщо акаунт блокують — новий створити не можна
🚀 Новеньких активно просувають
❌ Тест не пройдено — акаунт блокується

Якщо формат підходить — чекаю фото 👋`,
	models.LangEN: `Hello 😊

🌟 WORK AS A STREAM MODEL IN THE HALO APP 🌟

💬 Earn from chatting, live streams and private video calls with men
📞 1 minute of communication = 1$
💳 Agency commission — 20%
👉 Net income: 0.8$ per minute

💰 Examples of earnings in calls:
— 5 minutes = 5$ → 4$ net
— 10 minutes = 10$ → 8$ net
— 30 minutes = 30$ → 24$ net
— 1 hour of calls = 60$ → 48$ net

💵 From 50$ per day with active work

🌍 Audience: USA, Europe, England, UAE, Arab countries
🌐 Built-in translator — English is not required
🕒 Free schedule — work when convenient

🎤 In open streams — only cultural communication
💎 It's important to look neat and presentable
❌ No erotica and no revealing clothing — violation means a ban

📤 Withdrawals:
— On your own, takes 1–3 days
— There is a video guide on withdrawing to a card or crypto
— If there are difficulties — we help

📸 How to start:
Send 2–3 photos
— good quality
— face clearly visible
(photos only for internal approval)

⚠️ Important:
🔹 First 7 days — trial period
🔹 You need to earn 100$
🔹 Each girl has only one chance to create an account. If it gets blocked — a new one cannot be created
🚀 Newcomers are actively promoted
❌ Trial not passed — the account is blocked

If the format suits you — waiting for photos 👋`,
}
