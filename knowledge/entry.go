package knowledge

import "strings"

// BookingMarker is the in-band token an answer body may embed to signal
// that the chat layer should append a booking action to the message.
const BookingMarker = "[add_button]"

// fallbackTopic labels entries authored without keywords.
const fallbackTopic = "Тема"

// Entry is one knowledge-base record: a pre-authored answer plus the
// keyword phrases supplied at authoring time. The JSON tags match the
// knowledge file produced by the authoring side.
type Entry struct {
	Answer   string   `json:"context"`
	Keywords []string `json:"keywords"`
}

// Topic returns the human-readable topic label: the first author keyword.
func (e Entry) Topic() string {
	if len(e.Keywords) == 0 {
		return fallbackTopic
	}
	return e.Keywords[0]
}

// CleanAnswer strips the booking marker from an answer body and reports
// whether it was present. URLs stay in the text; rendering them is the
// chat layer's business.
func CleanAnswer(answer string) (string, bool) {
	if !strings.Contains(answer, BookingMarker) {
		return strings.TrimSpace(answer), false
	}
	return strings.TrimSpace(strings.ReplaceAll(answer, BookingMarker, "")), true
}
