package knowledge

import "recruitbot/internal/models"

// DefaultFAQ seeds the faq table when it is empty.
func DefaultFAQ() []*models.KnowledgeEntry {
	raw := []struct {
		cat  models.Category
		q, a string
	}{
		{models.CategoryNew, "Сколько можно заработать?", "При активной работе от 50$ в день. 1 минута звонка = 1$, после комиссии агентства 20% тебе остаётся 0.8$ за минуту."},
		{models.CategoryNew, "Нужно ли знать английский?", "Нет, в приложении есть встроенный переводчик."},
		{models.CategoryNew, "Какой график работы?", "Свободный график, работаешь когда удобно."},
		{models.CategoryNew, "Зачем нужны фото?", "Фото нужны только для внутреннего одобрения анкеты офисом, никуда не публикуются."},
		{models.CategoryNew, "How much can I earn?", "With active work from 50$ per day. 1 minute of call = 1$, after the 20% agency commission you get 0.8$ per minute."},
		{models.CategoryRegistration, "Какое агентство указать?", "При регистрации выбери агентство " + AgencyName + "."},
		{models.CategoryRegistration, "Когда активируют аккаунт?", "После скриншота с ID офис активирует аккаунт на следующий будний день."},
		{models.CategoryRegistration, "Где скачать приложение?", "Скачай приложение For hosts на сайте " + RegistrationLink},
		{models.CategoryWorking, "Как вывести деньги?", "Вывод самостоятельно, срок 1-3 дня. Есть видео-инструкция по выводу на карту или крипту."},
		{models.CategoryWorking, "Что такое тестовый период?", "Первые 7 дней нужно заработать 100$. Если тест не пройден, аккаунт блокируется."},
		{models.CategoryWorking, "Можно ли создать второй аккаунт?", "Нет, у каждой девушки только одна возможность создать аккаунт."},
	}

	out := make([]*models.KnowledgeEntry, 0, len(raw))
	for _, r := range raw {
		e, err := models.NewKnowledgeEntry(r.q, r.a, r.cat)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}
