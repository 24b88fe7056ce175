package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// partialFactor discounts substring alignments against full-string
// matches, so "преп" inside "преподаватель" scores high but not perfect.
const partialFactor = 0.9

// FuzzyMatcher finds the closest author keyword phrase to a misspelled
// or truncated query using rune-level edit distance. It is an optional
// collaborator: a nil matcher simply disables the fuzzy-retry state.
type FuzzyMatcher struct {
	floor float64
}

// NewFuzzyMatcher returns a matcher that accepts candidates whose
// similarity clears floor (0..1, typically 0.70).
func NewFuzzyMatcher(floor float64) *FuzzyMatcher {
	return &FuzzyMatcher{floor: floor}
}

// BestMatch returns the pool phrase most similar to query, its
// similarity, and whether it clears the floor. An empty pool or query
// never matches.
func (m *FuzzyMatcher) BestMatch(query string, pool []string) (string, float64, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(pool) == 0 {
		return "", 0, false
	}

	var bestPhrase string
	var bestSim float64
	for _, phrase := range pool {
		sim := similarity(query, strings.ToLower(phrase))
		if sim > bestSim {
			bestSim = sim
			bestPhrase = phrase
		}
	}
	if bestSim < m.floor {
		return "", bestSim, false
	}
	return bestPhrase, bestSim, true
}

// similarity blends a full-string Levenshtein ratio with the best
// discounted partial alignment, token against token, so a truncated word
// still finds its completion.
func similarity(a, b string) float64 {
	best := ratio(a, b)

	partial := partialRatio(a, b)
	for _, ta := range strings.Fields(a) {
		for _, tb := range strings.Fields(b) {
			if p := partialRatio(ta, tb); p > partial {
				partial = p
			}
		}
	}
	if discounted := partial * partialFactor; discounted > best {
		best = discounted
	}
	return best
}

// ratio is the normalized Levenshtein similarity of two strings.
func ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// partialRatio slides the shorter string over the longer and returns the
// best window similarity, rune-aligned.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	short := string(ra)
	var best float64
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		dist := levenshtein.ComputeDistance(short, window)
		sim := 1 - float64(dist)/float64(len(ra))
		if sim > best {
			best = sim
			if best == 1 {
				break
			}
		}
	}
	return best
}
