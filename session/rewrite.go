package session

import (
	"strings"
	"unicode/utf8"

	"faq-agent/config"
)

// continuationMarkers open follow-up questions that lean on the previous
// turn ("а со скидкой?", "а как записаться"). Markers match as prefixes
// on a word boundary, never as bare substrings.
var continuationMarkers = []string{
	"а",
	"и",
	"а есть",
	"а как",
	"а сколько",
	"а скидки",
	"а рассрочка",
	"а документ",
	"что насчет",
	"что насчёт",
}

// Rewriter decides whether a query should inherit context from the
// previous turn before scoring. Short follow-ups and marker-prefixed
// questions get the single most recent prior question prepended, so
// "а со скидкой?" after "сколько стоит обучение" scores as one
// cost-and-discount query.
type Rewriter struct {
	shortFloor int
}

func NewRewriter(cfg *config.Config) *Rewriter {
	return &Rewriter{shortFloor: cfg.ShortQuestionRunes}
}

// Rewrite returns the raw question unchanged unless it is short or
// marker-prefixed and a prior turn exists.
func (r *Rewriter) Rewrite(ctx *Context, question string) string {
	last, ok := ctx.LastQuestion()
	if !ok {
		return question
	}

	lower := strings.ToLower(strings.TrimSpace(question))
	if utf8.RuneCountInString(lower) < r.shortFloor || hasMarkerPrefix(lower) {
		return last + " " + question
	}
	return question
}

func hasMarkerPrefix(question string) bool {
	for _, marker := range continuationMarkers {
		if question == marker || strings.HasPrefix(question, marker+" ") {
			return true
		}
	}
	return false
}
