package knowledge

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"faq-agent/config"
	"faq-agent/nlp"
)

// IndexedEntry is an Entry plus everything derived from it at build time.
type IndexedEntry struct {
	Entry

	// NormalizedKeywords holds the lemmas of the author keywords,
	// normalized word by word (not phrase-level).
	NormalizedKeywords mapset.Set[string]

	// Numerics holds the digit tokens of the answer body, for the
	// scorer's numeric-overlap bonus.
	Numerics mapset.Set[string]
}

// Index owns the knowledge entries and the derived term-weight models.
// It is immutable once built; a knowledge update builds a fresh Index off
// to the side and swaps a single reference, so a search in flight never
// sees a half-built index. Entry order is never changed or deduplicated:
// position in the source list is the entry's identity.
type Index struct {
	entries     []IndexedEntry
	source      []Entry
	lemmaModel  *TermWeightModel
	rawModel    *TermWeightModel
	keywordPool []string
}

// Build constructs a new Index over entries. Two independent models are
// fit over the answer corpus: one on lemmatized text with 1-3-grams for
// semantic overlap, one on raw surface text with 1-2-grams for exact
// phrasing. Every raw keyword phrase also lands in a flat pool for fuzzy
// lookup.
func Build(cfg *config.Config, norm *nlp.Normalizer, entries []Entry, logger *zap.Logger) *Index {
	idx := &Index{
		entries: make([]IndexedEntry, 0, len(entries)),
		source:  make([]Entry, len(entries)),
	}
	copy(idx.source, entries)

	lemmaDocs := make([]string, len(entries))
	rawDocs := make([]string, len(entries))
	seen := make(map[string]struct{})

	for i, entry := range entries {
		keywords := mapset.NewSet[string]()
		for _, phrase := range entry.Keywords {
			for _, word := range norm.ContentTokens(phrase) {
				keywords.Add(norm.Lemma(word))
			}
			if _, dup := seen[phrase]; !dup && strings.TrimSpace(phrase) != "" {
				seen[phrase] = struct{}{}
				idx.keywordPool = append(idx.keywordPool, phrase)
			}
		}
		idx.entries = append(idx.entries, IndexedEntry{
			Entry:              entry,
			NormalizedKeywords: keywords,
			Numerics:           norm.NumericTokens(entry.Answer),
		})
		lemmaDocs[i] = norm.NormalizeSentence(entry.Answer)
		rawDocs[i] = strings.Join(norm.ContentTokens(entry.Answer), " ")
	}

	idx.lemmaModel = fitTermWeightModel(lemmaDocs, 1, 3, cfg.LemmaVocabularyLimit)
	idx.rawModel = fitTermWeightModel(rawDocs, 1, 2, cfg.RawVocabularyLimit)

	if logger != nil {
		logger.Info("Knowledge index built",
			zap.Int("entries", len(idx.entries)),
			zap.Int("keyword_pool", len(idx.keywordPool)),
			zap.Int("lemma_vocabulary", len(idx.lemmaModel.vocab)),
			zap.Int("raw_vocabulary", len(idx.rawModel.vocab)))
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// ValidIndex reports whether i references an existing entry. Indices
// cross session boundaries and the knowledge list can be hot-reloaded,
// so this check guards every dereference.
func (idx *Index) ValidIndex(i int) bool {
	return idx != nil && i >= 0 && i < len(idx.entries)
}

// At returns the indexed entry at position i.
func (idx *Index) At(i int) (IndexedEntry, bool) {
	if !idx.ValidIndex(i) {
		return IndexedEntry{}, false
	}
	return idx.entries[i], true
}

// Source returns a copy of the entry list the index was built from.
func (idx *Index) Source() []Entry {
	if idx == nil {
		return nil
	}
	out := make([]Entry, len(idx.source))
	copy(out, idx.source)
	return out
}

// KeywordPool returns the flat pool of raw author keyword phrases.
func (idx *Index) KeywordPool() []string {
	if idx == nil {
		return nil
	}
	return idx.keywordPool
}

// LemmaSimilarities scores a lemmatized query against every entry.
func (idx *Index) LemmaSimilarities(query string) []float64 {
	if idx == nil {
		return nil
	}
	return idx.lemmaModel.Similarities(query)
}

// RawSimilarities scores a raw preprocessed query against every entry.
func (idx *Index) RawSimilarities(query string) []float64 {
	if idx == nil {
		return nil
	}
	return idx.rawModel.Similarities(query)
}
