package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"faq-agent/config"
	apperrors "faq-agent/errors"
	"faq-agent/knowledge"
	"faq-agent/nlp"
	"faq-agent/search"
	"faq-agent/session"
)

// Outcome is the terminal state of one turn through the response policy.
type Outcome int

const (
	// OutcomeDirect answers immediately with the best entry.
	OutcomeDirect Outcome = iota
	// OutcomeClarify presents candidate topics and waits for an explicit
	// selection; the chat layer adds its own "none of these" escape.
	OutcomeClarify
	// OutcomeUnknown found nothing; the turn was logged to the
	// unknown-questions sink.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDirect:
		return "direct"
	case OutcomeClarify:
		return "clarify"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "unevaluated"
	}
}

// Reply is what the engine hands the chat layer for one turn. For
// OutcomeDirect the answer body is cleaned of the booking marker, with
// Booking reporting its presence. Suggestion carries the corrected
// phrase when the fuzzy retry produced the candidates.
type Reply struct {
	Outcome    Outcome
	Answer     string
	EntryIndex int
	Score      float64
	Booking    bool
	Suggestion string
	Candidates []search.Candidate
}

// Engine wires the normalizer, hybrid scorer, fuzzy matcher, session
// store and event sink behind the single surface the chat transport
// talks to. The knowledge index is held behind an atomic pointer:
// Rebuild constructs a replacement off to the side and swaps the
// reference once, so a search in flight sees either the old index or the
// new one in full.
type Engine struct {
	cfg      *config.Config
	norm     *nlp.Normalizer
	scorer   *search.Scorer
	fuzzy    *search.FuzzyMatcher
	rewriter *session.Rewriter
	sessions session.Store
	sink     EventSink
	idx      atomic.Pointer[knowledge.Index]
	logger   *zap.Logger
}

// New assembles an engine. The fuzzy matcher is optional configuration:
// disabled, the fuzzy-retry state degrades directly to Unknown.
func New(cfg *config.Config, norm *nlp.Normalizer, sessions session.Store, sink EventSink, logger *zap.Logger) *Engine {
	e := &Engine{
		cfg:      cfg,
		norm:     norm,
		scorer:   search.NewScorer(cfg, norm, logger),
		rewriter: session.NewRewriter(cfg),
		sessions: sessions,
		sink:     sink,
		logger:   logger,
	}
	if cfg.FuzzyEnabled {
		e.fuzzy = search.NewFuzzyMatcher(cfg.FuzzySimilarityFloor)
	}
	return e
}

// Rebuild replaces the knowledge index with one built from entries. The
// build happens fully off to the side; the live index is swapped in a
// single reference store, never mutated in place.
func (e *Engine) Rebuild(entries []knowledge.Entry) {
	idx := knowledge.Build(e.cfg, e.norm, entries, e.logger)
	e.idx.Store(idx)
}

// AddEntry appends one entry to the current knowledge list and swaps in
// a rebuilt index. Existing entry indices keep their meaning because the
// list only grows at the tail.
func (e *Engine) AddEntry(answer string, keywords []string) {
	entries := e.idx.Load().Source()
	entries = append(entries, knowledge.Entry{Answer: answer, Keywords: keywords})
	e.Rebuild(entries)
	e.logger.Info("Knowledge entry added",
		zap.Int("entries", len(entries)),
		zap.Strings("keywords", keywords))
}

// Index returns the live knowledge index; may be nil before the first
// Rebuild.
func (e *Engine) Index() *knowledge.Index {
	return e.idx.Load()
}

// Ask runs one full turn: context rewrite, hybrid search, response
// policy, session bookkeeping. It never returns an error to the caller;
// the worst case is an Unknown reply after the unknown-question event
// has been emitted.
func (e *Engine) Ask(userID int64, question string) *Reply {
	idx := e.idx.Load()
	ctx := e.sessions.GetOrCreate(userID)

	// Rewrite against the previous turn before this one enters history.
	query := e.rewriter.Rewrite(ctx, question)
	ctx.RecordTurn(question)

	_, score, candidates := e.scorer.Search(idx, query)

	switch {
	case score > e.cfg.HighConfidence && len(candidates) > 0:
		return e.direct(ctx, candidates[0], question, "")

	case score > e.cfg.MidConfidence && len(candidates) > 0:
		return &Reply{
			Outcome:    OutcomeClarify,
			Score:      score,
			Candidates: candidates,
		}
	}

	// Low confidence: one fuzzy-correction retry against the keyword
	// pool, re-evaluating the same thresholds once. No further recursion.
	if e.fuzzy != nil && idx != nil {
		if phrase, sim, ok := e.fuzzy.BestMatch(question, idx.KeywordPool()); ok {
			e.logger.Debug("Fuzzy correction applied",
				zap.String("question", question),
				zap.String("phrase", phrase),
				zap.Float64("similarity", sim))
			_, retryScore, retryCandidates := e.scorer.Search(idx, phrase)
			switch {
			case retryScore > e.cfg.HighConfidence && len(retryCandidates) > 0:
				return e.direct(ctx, retryCandidates[0], question, phrase)
			case retryScore > e.cfg.MidConfidence && len(retryCandidates) > 0:
				return &Reply{
					Outcome:    OutcomeClarify,
					Score:      retryScore,
					Suggestion: phrase,
					Candidates: retryCandidates,
				}
			}
		}
	}

	e.emitUnknown(userID, question)
	return &Reply{Outcome: OutcomeUnknown, Score: score}
}

// Select resolves a disambiguation turn: the user picked one of the
// presented candidates, which bypasses scoring and returns that entry's
// answer directly. The index is bounds-checked because selections can
// arrive after a rebuild shrank the knowledge list.
func (e *Engine) Select(userID int64, entryIndex int) (*Reply, error) {
	idx := e.idx.Load()
	if idx == nil {
		return nil, apperrors.ErrIndexUnavailable
	}
	entry, ok := idx.At(entryIndex)
	if !ok {
		return nil, apperrors.ErrInvalidIndex
	}

	ctx := e.sessions.GetOrCreate(userID)
	question := entry.Topic()
	if last, ok := ctx.LastQuestion(); ok {
		question = last
	}
	ctx.Attribute(entryIndex, question)

	answer, booking := knowledge.CleanAnswer(entry.Answer)
	return &Reply{
		Outcome:    OutcomeDirect,
		Answer:     answer,
		EntryIndex: entryIndex,
		Booking:    booking,
	}, nil
}

// Search exposes the raw hybrid search surface without touching session
// state: best answer body, fused score, ranked candidates.
func (e *Engine) Search(query string) (string, float64, []search.Candidate) {
	return e.scorer.Search(e.idx.Load(), query)
}

// RewriteQuery returns the query string the scorer would see for this
// user's next turn, without recording anything.
func (e *Engine) RewriteQuery(userID int64, question string) string {
	return e.rewriter.Rewrite(e.sessions.GetOrCreate(userID), question)
}

// FeedbackQuestion reconstructs the question that produced the answer at
// entryIndex, falling back to the user's most recent question when no
// direct attribution exists.
func (e *Engine) FeedbackQuestion(userID int64, entryIndex int) string {
	ctx := e.sessions.GetOrCreate(userID)
	if q, ok := ctx.AttributedQuestion(entryIndex); ok {
		return q
	}
	if q, ok := ctx.LastQuestion(); ok {
		return q
	}
	return ""
}

// RecordFeedback emits a like/dislike event for a previously-shown
// answer. A stale index is reported as invalid, never dereferenced.
func (e *Engine) RecordFeedback(userID int64, entryIndex int, liked bool) error {
	idx := e.idx.Load()
	if idx == nil {
		return apperrors.ErrIndexUnavailable
	}
	entry, ok := idx.At(entryIndex)
	if !ok {
		return apperrors.ErrInvalidIndex
	}

	answer, _ := knowledge.CleanAnswer(entry.Answer)
	e.sink.Feedback(FeedbackEvent{
		ID:         uuid.New(),
		UserID:     userID,
		EntryIndex: entryIndex,
		Liked:      liked,
		Question:   e.FeedbackQuestion(userID, entryIndex),
		Answer:     answer,
		Timestamp:  time.Now(),
	})
	return nil
}

func (e *Engine) direct(ctx *session.Context, best search.Candidate, question, suggestion string) *Reply {
	ctx.Attribute(best.Index, question)
	answer, booking := knowledge.CleanAnswer(best.Answer)
	return &Reply{
		Outcome:    OutcomeDirect,
		Answer:     answer,
		EntryIndex: best.Index,
		Score:      best.Score,
		Booking:    booking,
		Suggestion: suggestion,
	}
}

func (e *Engine) emitUnknown(userID int64, question string) {
	e.sink.UnknownQuestion(UnknownQuestionEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  question,
		Timestamp: time.Now(),
	})
	e.logger.Debug("No answer found", zap.Int64("user_id", userID), zap.String("question", question))
}
