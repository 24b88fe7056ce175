package search

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"faq-agent/config"
	"faq-agent/knowledge"
	"faq-agent/nlp"
)

// Keyword-stage weights. Downstream thresholds are tuned against this
// exact formula, so these are fixed alongside it rather than configured.
const (
	keywordOverlapWeight = 2.0
	phraseWordWeight     = 3.0
	numericOverlapWeight = 2.0
)

// Candidate is one scored answer produced by a search call. Transient;
// never persisted. Index refers to the entry's position in the knowledge
// list and must be bounds-checked before any later dereference.
type Candidate struct {
	Index  int
	Topic  string
	Answer string
	Score  float64
}

type scoredHit struct {
	index int
	score float64
}

// Scorer combines keyword overlap, exact-phrase and numeric bonuses, and
// statistical similarity from both term-weight models into one fused
// ranking. Stateless; safe for concurrent use.
type Scorer struct {
	cfg    *config.Config
	norm   *nlp.Normalizer
	logger *zap.Logger
}

func NewScorer(cfg *config.Config, norm *nlp.Normalizer, logger *zap.Logger) *Scorer {
	return &Scorer{
		cfg:    cfg,
		norm:   norm,
		logger: logger,
	}
}

// Search scores question against every entry of idx and returns the best
// answer body, its fused score, and the ranked top-k candidates. An empty
// index or a query with no usable signal yields ("", 0, nil), never an
// error.
func (s *Scorer) Search(idx *knowledge.Index, question string) (string, float64, []Candidate) {
	if idx.Len() == 0 {
		return "", 0, nil
	}

	cleaned := s.norm.StripFillerPrefix(question)
	keywordHits := s.keywordStage(idx, cleaned)
	statHits := s.statisticalStage(idx, cleaned)

	// Filler stripping can eat a short question whole; widen back to the
	// original phrasing before giving up.
	if len(keywordHits) == 0 && len(statHits) == 0 {
		keywordHits = s.keywordStage(idx, question)
		statHits = s.statisticalStage(idx, question)
	}

	fused := make(map[int]float64)
	for _, hit := range keywordHits {
		fused[hit.index] += hit.score * s.cfg.KeywordWeight
	}
	for _, hit := range statHits {
		fused[hit.index] += hit.score * s.cfg.StatisticalScale * s.cfg.StatisticalWeight
	}
	if len(fused) == 0 {
		return "", 0, nil
	}

	ranked := make([]scoredHit, 0, len(fused))
	for i, score := range fused {
		ranked = append(ranked, scoredHit{index: i, score: score})
	}
	sortHits(ranked)

	topK := s.cfg.TopK
	if topK <= 0 || topK > len(ranked) {
		topK = len(ranked)
	}
	candidates := make([]Candidate, 0, topK)
	for _, hit := range ranked[:topK] {
		entry, ok := idx.At(hit.index)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Index:  hit.index,
			Topic:  entry.Topic(),
			Answer: entry.Answer,
			Score:  hit.score,
		})
	}
	if len(candidates) == 0 {
		return "", 0, nil
	}
	return candidates[0].Answer, candidates[0].Score, candidates
}

// keywordStage scores the lemma overlap between the expanded query
// keyword set and each entry's normalized keywords, plus a verbatim
// phrase bonus and a numeric-overlap bonus.
func (s *Scorer) keywordStage(idx *knowledge.Index, question string) []scoredHit {
	queryKeywords := s.norm.ExtractKeywords(question)
	if queryKeywords.Cardinality() == 0 {
		return nil
	}
	questionNorm := s.norm.PreprocessText(question)
	queryNumerics := s.norm.NumericTokens(question)

	var hits []scoredHit
	for i := 0; i < idx.Len(); i++ {
		entry, _ := idx.At(i)
		score := keywordOverlapWeight * float64(queryKeywords.Intersect(entry.NormalizedKeywords).Cardinality())

		// Exact multi-word phrase hits outrank incidental single-lemma
		// overlap.
		for _, phrase := range entry.Keywords {
			phraseNorm := strings.TrimSpace(s.norm.PreprocessText(phrase))
			if phraseNorm == "" {
				continue
			}
			if strings.Contains(questionNorm, phraseNorm) {
				score += phraseWordWeight * float64(len(strings.Fields(phraseNorm)))
			}
		}

		if queryNumerics.Cardinality() > 0 {
			score += numericOverlapWeight * float64(queryNumerics.Intersect(entry.Numerics).Cardinality())
		}

		if score > 0 {
			hits = append(hits, scoredHit{index: i, score: score})
		}
	}
	sortHits(hits)
	return capHits(hits, s.cfg.CandidateLimit)
}

// statisticalStage projects the query into both term-weight models and
// blends the cosine similarities. Any model that cannot score simply
// contributes nothing; the keyword signal alone must still be able to
// produce a result.
func (s *Scorer) statisticalStage(idx *knowledge.Index, question string) []scoredHit {
	lemmaSims := idx.LemmaSimilarities(s.norm.NormalizeSentence(question))
	rawSims := idx.RawSimilarities(strings.Join(s.norm.ContentTokens(question), " "))
	if len(lemmaSims) != idx.Len() {
		lemmaSims = nil
	}
	if len(rawSims) != idx.Len() {
		rawSims = nil
	}
	if lemmaSims == nil && rawSims == nil {
		if s.logger != nil {
			s.logger.Debug("Statistical models unavailable, keyword signal only")
		}
		return nil
	}

	var hits []scoredHit
	for i := 0; i < idx.Len(); i++ {
		var combined float64
		if lemmaSims != nil {
			combined += s.cfg.LemmaModelWeight * lemmaSims[i]
		}
		if rawSims != nil {
			combined += s.cfg.RawModelWeight * rawSims[i]
		}
		if combined > s.cfg.SimilarityFloor {
			hits = append(hits, scoredHit{index: i, score: combined})
		}
	}
	sortHits(hits)
	return capHits(hits, s.cfg.CandidateLimit)
}

// sortHits orders by score descending, entry index ascending on ties so
// results are deterministic for equal-weight entries.
func sortHits(hits []scoredHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score == hits[j].score {
			return hits[i].index < hits[j].index
		}
		return hits[i].score > hits[j].score
	})
}

func capHits(hits []scoredHit, limit int) []scoredHit {
	if limit > 0 && len(hits) > limit {
		return hits[:limit]
	}
	return hits
}
