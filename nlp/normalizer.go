package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const minTokenRunes = 3

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern   = regexp.MustCompile(`\S+@\S+`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	numericPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

	// Conversational lead-ins stripped before scoring. Ordered by
	// specificity: longer hedges first so "а если" wins over bare "а".
	fillerPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`^а что если\s+`),
		regexp.MustCompile(`^что будет если\s+`),
		regexp.MustCompile(`^а если\s+`),
		regexp.MustCompile(`^что если\s+`),
		regexp.MustCompile(`^можно ли\s+`),
		regexp.MustCompile(`^если я\s+`),
		regexp.MustCompile(`^а\s+`),
		regexp.MustCompile(`^ну\s+`),
		regexp.MustCompile(`^скажи\s+`),
		regexp.MustCompile(`^расскажи\s+`),
		regexp.MustCompile(`^объясни\s+`),
	}
)

// Normalizer turns free text into lemma sets and normalized sentences.
// It owns an explicit LRU word→lemma cache instead of ambient global
// state; the vocabulary is small, so the cache is effectively permanent.
type Normalizer struct {
	lemmatizer Lemmatizer
	cache      *lru.Cache
	synonyms   []mapset.Set[string]
	logger     *zap.Logger
}

// New builds a Normalizer around the given lemmatizer. The synonym table
// is normalized into lemma space up front so expansion at query time is a
// pure set operation.
func New(lemmatizer Lemmatizer, cacheSize int, logger *zap.Logger) (*Normalizer, error) {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	n := &Normalizer{
		lemmatizer: lemmatizer,
		cache:      cache,
		logger:     logger,
	}

	for base, syns := range defaultSynonyms {
		group := mapset.NewSet[string]()
		group.Add(n.lemmaPhrase(base))
		for _, s := range syns {
			group.Add(n.lemmaPhrase(s))
		}
		n.synonyms = append(n.synonyms, group)
	}
	if logger != nil {
		logger.Debug("Normalizer ready",
			zap.Int("synonym_groups", len(n.synonyms)),
			zap.Int("lemma_cache_size", cacheSize))
	}

	return n, nil
}

// lemmaPhrase lemmatizes a phrase word by word. Multi-word synonym
// entries stay multi-word; they never equal a single lemma but are still
// carried through group expansion, matching the authoring convention.
func (n *Normalizer) lemmaPhrase(phrase string) string {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = n.Lemma(w)
	}
	return strings.Join(words, " ")
}

// Lemma returns the normal form of a single word through the memoizing
// cache. Unknown tokens come back unchanged.
func (n *Normalizer) Lemma(word string) string {
	if word == "" {
		return ""
	}
	if cached, ok := n.cache.Get(word); ok {
		return cached.(string)
	}
	lemma := n.lemmatizer.Lemma(word)
	n.cache.Add(word, lemma)
	return lemma
}

// PreprocessText strips URLs and email-like tokens, lowercases, and
// replaces non-word characters with spaces.
func (n *Normalizer) PreprocessText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
	return text
}

// ContentTokens splits preprocessed text into surface tokens, dropping
// stop-words and tokens shorter than three runes. No lemmatization; this
// feeds the raw term-weight model.
func (n *Normalizer) ContentTokens(text string) []string {
	fields := strings.Fields(n.PreprocessText(text))
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if utf8.RuneCountInString(w) < minTokenRunes || IsStopword(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// NormalizeSentence lemmatizes the surviving tokens of text and joins
// them with spaces, preserving order.
func (n *Normalizer) NormalizeSentence(text string) string {
	tokens := n.ContentTokens(text)
	for i, w := range tokens {
		tokens[i] = n.Lemma(w)
	}
	return strings.Join(tokens, " ")
}

// Lemmas returns the lemma set of text without synonym expansion.
// Empty input yields an empty set, never an error.
func (n *Normalizer) Lemmas(text string) mapset.Set[string] {
	out := mapset.NewSet[string]()
	for _, w := range n.ContentTokens(text) {
		out.Add(n.Lemma(w))
	}
	return out
}

// ExtractKeywords returns the lemma set of text expanded through the
// synonym table: any lemma matching a group member pulls in the whole
// group. Expansion is idempotent and order-independent.
func (n *Normalizer) ExtractKeywords(text string) mapset.Set[string] {
	return n.ExpandSynonyms(n.Lemmas(text))
}

// ExpandSynonyms widens a lemma set through the synonym groups.
func (n *Normalizer) ExpandSynonyms(lemmas mapset.Set[string]) mapset.Set[string] {
	expanded := lemmas.Clone()
	lemmas.Each(func(lemma string) bool {
		for _, group := range n.synonyms {
			if group.Contains(lemma) {
				expanded = expanded.Union(group)
			}
		}
		return false
	})
	return expanded
}

// StripFillerPrefix removes leading conversational hedges ("а если",
// "скажи", ...) from a question. A cheap heuristic, not parsing.
func (n *Normalizer) StripFillerPrefix(question string) string {
	cleaned := strings.ToLower(question)
	for _, p := range fillerPrefixes {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}

// NumericTokens extracts the digit sequences of text. Used for the
// scorer's numeric-overlap bonus; comma and dot decimals count as one
// token.
func (n *Normalizer) NumericTokens(text string) mapset.Set[string] {
	out := mapset.NewSet[string]()
	for _, m := range numericPattern.FindAllString(text, -1) {
		out.Add(strings.ReplaceAll(m, ",", "."))
	}
	return out
}
