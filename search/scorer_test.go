package search

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"faq-agent/config"
	"faq-agent/knowledge"
	"faq-agent/nlp"
)

func testConfig() *config.Config {
	return &config.Config{
		HighConfidence:       3.5,
		MidConfidence:        1.5,
		KeywordWeight:        0.6,
		StatisticalWeight:    0.4,
		StatisticalScale:     50,
		LemmaModelWeight:     0.7,
		RawModelWeight:       0.3,
		SimilarityFloor:      0.15,
		LemmaVocabularyLimit: 3000,
		RawVocabularyLimit:   2000,
		TopK:                 3,
		CandidateLimit:       5,
	}
}

func newTestScorer(t *testing.T, entries []knowledge.Entry) (*Scorer, *knowledge.Index) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	cfg := testConfig()
	norm, err := nlp.New(nlp.SnowballLemmatizer{}, 0, logger)
	if err != nil {
		t.Fatalf("nlp.New() error = %v", err)
	}
	idx := knowledge.Build(cfg, norm, entries, logger)
	return NewScorer(cfg, norm, logger), idx
}

func TestSearchDirectHit(t *testing.T) {
	entries := []knowledge.Entry{
		{Answer: "Запись по ссылке в профиле.", Keywords: []string{"записаться"}},
		{Answer: "Да, есть. Первый платеж в начале обучения.", Keywords: []string{"рассрочка", "оплата частями"}},
		{Answer: "Занятия идут по вечерам.", Keywords: []string{"расписание"}},
	}
	scorer, idx := newTestScorer(t, entries)

	answer, score, candidates := scorer.Search(idx, "оплата частями")
	if len(candidates) == 0 {
		t.Fatal("Search() returned no candidates")
	}
	if candidates[0].Index != 1 {
		t.Fatalf("best candidate index = %d, want 1 (%v)", candidates[0].Index, candidates)
	}
	if answer != entries[1].Answer {
		t.Errorf("Search() answer = %q, want %q", answer, entries[1].Answer)
	}
	// Two-lemma overlap plus the verbatim two-word phrase bonus alone
	// clears the direct-answer threshold regardless of the statistical
	// contribution: (2*2 + 3*2) * 0.6 = 6.0.
	if score < 6.0-1e-9 {
		t.Errorf("Search() score = %v, want >= 6.0", score)
	}
}

func TestSearchSharedKeywordTie(t *testing.T) {
	// Both entries carry the same single keyword; answer bodies share no
	// vocabulary with the query, so the statistical stage stays silent and
	// the fused score is exactly (2*1 + 3*1) * 0.6 = 3.0 for both.
	entries := []knowledge.Entry{
		{Answer: "Запись по ссылке в профиле.", Keywords: []string{"консультация"}},
		{Answer: "Напишите менеджеру в личные сообщения.", Keywords: []string{"консультация"}},
		{Answer: "Занятия идут по вечерам.", Keywords: []string{"расписание"}},
	}
	scorer, idx := newTestScorer(t, entries)

	_, score, candidates := scorer.Search(idx, "нужна консультация")
	if len(candidates) != 2 {
		t.Fatalf("Search() candidates = %v, want the two keyword-sharing entries", candidates)
	}
	if math.Abs(score-3.0) > 1e-9 {
		t.Errorf("Search() score = %v, want exactly 3.0", score)
	}
	if candidates[0].Index != 0 || candidates[1].Index != 1 {
		t.Errorf("tie not broken by entry order: %v", candidates)
	}
	if math.Abs(candidates[0].Score-candidates[1].Score) > 1e-9 {
		t.Errorf("tied entries scored differently: %v vs %v", candidates[0].Score, candidates[1].Score)
	}
}

func TestSearchEmptyInputs(t *testing.T) {
	entries := []knowledge.Entry{
		{Answer: "Ответ.", Keywords: []string{"ключ"}},
	}
	scorer, idx := newTestScorer(t, entries)

	tests := []struct {
		name  string
		idx   *knowledge.Index
		query string
	}{
		{"nil_index", nil, "вопрос"},
		{"empty_query", idx, ""},
		{"stopwords_only", idx, "а на и"},
		{"unrelated_query", idx, "совершенно посторонние слова"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, score, candidates := scorer.Search(tt.idx, tt.query)
			if answer != "" || score != 0 || candidates != nil {
				t.Errorf("Search(%q) = (%q, %v, %v), want empty result", tt.query, answer, score, candidates)
			}
		})
	}
}

func TestSearchTopKCap(t *testing.T) {
	entries := []knowledge.Entry{
		{Answer: "Первый.", Keywords: []string{"занятие"}},
		{Answer: "Второй.", Keywords: []string{"занятие"}},
		{Answer: "Третий.", Keywords: []string{"занятие"}},
		{Answer: "Четвертый.", Keywords: []string{"занятие"}},
		{Answer: "Пятый.", Keywords: []string{"занятие"}},
	}
	scorer, idx := newTestScorer(t, entries)

	_, _, candidates := scorer.Search(idx, "когда занятие")
	if len(candidates) != 3 {
		t.Errorf("Search() returned %d candidates, want TopK=3", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[i-1].Score {
			t.Errorf("candidates not sorted by score: %v", candidates)
		}
	}
}

func TestKeywordStageScoring(t *testing.T) {
	entries := []knowledge.Entry{
		{Answer: "Курс стоит 5000 рублей.", Keywords: []string{"стоимость"}},
		{Answer: "Запись через менеджера.", Keywords: []string{"записаться"}},
	}
	scorer, idx := newTestScorer(t, entries)

	t.Run("single_keyword_with_phrase_bonus", func(t *testing.T) {
		hits := scorer.keywordStage(idx, "какая стоимость")
		if len(hits) != 1 || hits[0].index != 0 {
			t.Fatalf("keywordStage() = %v, want single hit on entry 0", hits)
		}
		// 2*1 overlap + 3*1 one-word verbatim phrase.
		if math.Abs(hits[0].score-5.0) > 1e-9 {
			t.Errorf("score = %v, want 5.0", hits[0].score)
		}
	})

	t.Run("numeric_overlap_bonus", func(t *testing.T) {
		hits := scorer.keywordStage(idx, "что за 5000")
		if len(hits) != 1 || hits[0].index != 0 {
			t.Fatalf("keywordStage() = %v, want single hit on entry 0", hits)
		}
		if math.Abs(hits[0].score-2.0) > 1e-9 {
			t.Errorf("score = %v, want 2.0 from numeric overlap only", hits[0].score)
		}
	})

	t.Run("synonym_reaches_keyword", func(t *testing.T) {
		// "цена" expands into the same group as "стоимость".
		hits := scorer.keywordStage(idx, "какая цена")
		if len(hits) != 1 || hits[0].index != 0 {
			t.Fatalf("keywordStage() = %v, want single hit on entry 0", hits)
		}
	})

	t.Run("no_signal", func(t *testing.T) {
		if hits := scorer.keywordStage(idx, "кто ты"); hits != nil {
			t.Errorf("keywordStage() = %v, want nil", hits)
		}
	})
}

func TestStatisticalStageRanksParaphrase(t *testing.T) {
	entries := []knowledge.Entry{
		{Answer: "Курс по питону длится шесть месяцев и стоит пять тысяч рублей в месяц.", Keywords: []string{"стоимость"}},
		{Answer: "Поддержка отвечает в течение дня в общем чате.", Keywords: []string{"поддержка"}},
	}
	scorer, idx := newTestScorer(t, entries)

	hits := scorer.statisticalStage(idx, "сколько месяцев длится курс")
	if len(hits) == 0 {
		t.Fatal("statisticalStage() found nothing for a close paraphrase")
	}
	if hits[0].index != 0 {
		t.Errorf("statisticalStage() top hit = %v, want entry 0", hits)
	}
}
