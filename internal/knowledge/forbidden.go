package knowledge

import "recruitbot/internal/models"

// DefaultForbiddenTopics seeds the forbidden_topics table on first start.
func DefaultForbiddenTopics() []*models.ForbiddenTopic {
	raw := []struct {
		name     string
		keywords []string
	}{
		{"politics", []string{"політика", "війна", "вибори", "президент", "уряд", "политика", "война", "выборы", "правительство", "politics", "war", "election", "president", "government"}},
		{"religion", []string{"релігія", "бог", "іслам", "християнство", "церква", "религия", "ислам", "христианство", "церковь", "religion", "god", "islam", "christianity", "church"}},
		{"psychology", []string{"депресія", "суїцид", "психолог", "травма", "розлад", "депрессия", "суицид", "расстройство", "depression", "suicide", "psychologist", "trauma", "disorder"}},
		{"guarantees", []string{"гарантія доходу", "100% заробіток", "точна сума", "гарантия дохода", "100% заработок", "точная сумма", "guaranteed income", "100% earnings", "exact amount"}},
	}

	out := make([]*models.ForbiddenTopic, 0, len(raw))
	for _, r := range raw {
		topic, err := models.NewForbiddenTopic(r.name, r.keywords)
		if err != nil {
			continue
		}
		out = append(out, topic)
	}
	return out
}

// Refusal is the only answer a forbidden topic ever gets.
var Refusal = models.Localized{
	models.LangRU: "Я консультирую только по вопросам работы в нашем приложении.\nЕсли есть вопросы по формату работы — с радостью отвечу 🙂",
	models.LangUK: "Я консультую тільки з питань роботи в нашому застосунку.\nЯкщо є питання щодо формату роботи — з радістю відповім 🙂",
	models.LangEN: "I only consult on questions about working in our application.\nIf you have questions about the work format — I'll be happy to answer 🙂",
}
