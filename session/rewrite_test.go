package session

import (
	"testing"
	"time"

	"faq-agent/config"
)

func newTestRewriter() *Rewriter {
	return NewRewriter(&config.Config{ShortQuestionRunes: 20})
}

func contextWithHistory(questions ...string) *Context {
	ctx := newContext(5, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	for _, q := range questions {
		ctx.RecordTurn(q)
	}
	return ctx
}

func TestRewrite(t *testing.T) {
	r := newTestRewriter()

	tests := []struct {
		name     string
		history  []string
		question string
		want     string
	}{
		{
			name:     "no_history_returns_unchanged",
			history:  nil,
			question: "а сколько стоит",
			want:     "а сколько стоит",
		},
		{
			name:     "short_followup_inherits_context",
			history:  []string{"сколько стоит обучение"},
			question: "а со скидкой?",
			want:     "сколько стоит обучение а со скидкой?",
		},
		{
			name:     "marker_prefix_inherits_context",
			history:  []string{"сколько стоит обучение"},
			question: "а как оплатить учебу в рассрочку",
			want:     "сколько стоит обучение а как оплатить учебу в рассрочку",
		},
		{
			name:     "bare_marker_inherits_context",
			history:  []string{"какое расписание занятий"},
			question: "а",
			want:     "какое расписание занятий а",
		},
		{
			name:     "long_standalone_question_unchanged",
			history:  []string{"сколько стоит обучение"},
			question: "какие документы получу после окончания",
			want:     "какие документы получу после окончания",
		},
		{
			name:     "marker_must_sit_on_word_boundary",
			history:  []string{"сколько стоит обучение"},
			question: "антивирус замедляет установку питона",
			want:     "антивирус замедляет установку питона",
		},
		{
			name:     "uses_most_recent_turn_only",
			history:  []string{"кто преподаватель", "какое расписание занятий"},
			question: "а цена?",
			want:     "какое расписание занятий а цена?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rewrite(contextWithHistory(tt.history...), tt.question)
			if got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestHasMarkerPrefix(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"а сколько", true},
		{"а", true},
		{"что насчет рассрочки", true},
		{"что насчёт рассрочки", true},
		{"апельсин дешевле", false},
		{"история группы", false},
	}
	for _, tt := range tests {
		if got := hasMarkerPrefix(tt.question); got != tt.want {
			t.Errorf("hasMarkerPrefix(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}
