package nlp

// defaultSynonyms maps canonical domain terms to their synonyms and common
// variations. Phrases are allowed; they participate in group expansion but
// never match a single query lemma. Entries are authored in surface form
// and normalized through the lemmatizer when the Normalizer is built.
var defaultSynonyms = map[string][]string{
	// Pricing and enrollment
	"стоимость":   {"цена", "тариф", "плата", "расценка", "сколько стоит"},
	"записаться":  {"зарегистрироваться", "подписаться", "хочу учиться"},
	"начать":      {"стартовать", "приступить"},

	// Course structure
	"курс":    {"обучение", "программа", "тренинг"},
	"занятие": {"урок", "лекция", "пара", "встреча"},
	"группа":  {"команда", "коллектив", "мини-группа"},
	"метод":   {"подход", "техника", "стратегия", "выстраданного познания", "система"},
	"домашка": {"задание", "дз", "практика"},

	// People and support
	"преподаватель": {"учитель", "репетитор", "тренер", "лектор", "алексей", "avick23"},
	"консультация":  {"встреча", "совет", "помощь", "бесплатная встреча"},
	"поддержка":     {"помощь", "сопровождение", "причал", "сообщество"},
	"причал":        {"сообщество", "чат", "поддержка"},

	// Product and materials
	"бот":        {"чат-бот", "ассистент", "помощник", "прогресс", "прогрессбот", "прогресс бот"},
	"материалы":  {"уроки", "лекции", "ресурсы", "дорожная карта", "roadmap"},
	"экосистема": {"система", "прогресс", "прогресс+", "прогресс плюс"},
	"roadmap":    {"дорожная карта", "карта развития", "план"},
	"доступ":     {"получение", "возможность"},

	// Technology
	"python":           {"питон", "пайтон"},
	"программирование": {"кодинг", "разработка", "it"},

	// Conversation
	"вопрос": {"запрос", "проблема", "тема"},
	"ответ":  {"решение", "отклик"},

	// Qualities
	"сложный":  {"трудный", "замысловатый", "запутанный"},
	"легкий":   {"простой", "нетрудный"},
	"быстро":   {"скорость", "оперативно", "в срок"},
	"долго":    {"медленно", "затянуто"},
	"качество": {"уровень", "стандарт"},
}
