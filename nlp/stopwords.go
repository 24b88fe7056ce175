package nlp

// russianStopwords is the fixed stop-word set used by both the normalizer
// and the term-weight models. Kept as one flat literal; the vocabulary is
// small and fixed, so there is no point loading it from configuration.
var russianStopwords = map[string]struct{}{}

func init() {
	words := []string{
		"и", "в", "во", "не", "что", "он", "на", "я", "с", "со", "как", "а",
		"то", "все", "она", "так", "его", "но", "да", "ты", "к", "у", "же",
		"вы", "за", "бы", "по", "только", "ее", "мне", "было", "вот", "от",
		"меня", "еще", "нет", "о", "из", "ему", "теперь", "когда", "даже",
		"ну", "уже", "всего", "всё", "быть", "будет", "сказал", "этот",
		"это", "здесь", "тот", "там", "где", "который", "которая",
		"которые", "их", "этого", "этой", "этому", "этим", "эти", "этих",
		"ваш", "ваша", "ваше", "вашего", "вашей", "какой", "какая", "какое",
		"какие", "какого", "каком", "какими", "мы", "наш", "наша", "наше",
		"мой", "моя", "моё", "мои", "твой", "твоя", "твоё", "твои", "сам",
		"сама", "само", "сами", "та", "те", "чей", "чья", "чьё", "чьи",
		"кто", "куда", "откуда", "почему", "зачем", "либо", "нибудь",
		"также", "потому", "чтобы", "свой", "своя", "своё", "свои",
		"самый", "самая", "самое", "самые", "или", "эх", "ах", "ох", "без",
		"над", "под", "перед", "после", "между", "через", "ради", "для",
		"до", "около", "возле", "рядом", "мимо", "вокруг", "против",
		"надо", "нужно", "может", "можно", "должен", "должна", "должно",
		"должны", "хочу", "хочешь", "хочет", "хотим", "хотите", "хотят",
		"буду", "будешь", "будем", "будете", "будут", "хотя", "если",
		"пока", "чтоб", "зато", "итак", "тоже",
	}
	for _, w := range words {
		russianStopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the lowercase word belongs to the fixed
// stop-word set.
func IsStopword(word string) bool {
	_, ok := russianStopwords[word]
	return ok
}
