package knowledge

import (
	"math"
	"sort"
	"strings"
)

// TermWeightModel is a TF-IDF style vectorizer with n-gram features and a
// bounded vocabulary. It is fit once over the whole answer corpus;
// queries are projected into its vector space at search time. Immutable
// after fitting, so safe for concurrent use.
type TermWeightModel struct {
	ngramMin int
	ngramMax int
	vocab    map[string]int
	idf      []float64
	docs     []map[int]float64 // L2-normalized tf-idf vectors, one per corpus document
}

// fitTermWeightModel builds a model from pre-normalized documents
// (space-joined tokens; cleaning and stop-word removal happen upstream).
// The vocabulary keeps the vocabLimit most frequent n-grams, ties broken
// alphabetically for determinism. IDF uses add-one smoothing so single
// occurrences never divide by zero.
func fitTermWeightModel(docs []string, ngramMin, ngramMax, vocabLimit int) *TermWeightModel {
	m := &TermWeightModel{
		ngramMin: ngramMin,
		ngramMax: ngramMax,
		vocab:    make(map[string]int),
	}

	termDocs := make([]map[string]int, len(docs))
	total := make(map[string]int)
	df := make(map[string]int)
	for i, doc := range docs {
		counts := ngramCounts(doc, ngramMin, ngramMax)
		termDocs[i] = counts
		for term, c := range counts {
			total[term] += c
			df[term]++
		}
	}
	if len(total) == 0 {
		return m
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] == total[terms[j]] {
			return terms[i] < terms[j]
		}
		return total[terms[i]] > total[terms[j]]
	})
	if vocabLimit > 0 && len(terms) > vocabLimit {
		terms = terms[:vocabLimit]
	}

	n := float64(len(docs))
	m.idf = make([]float64, len(terms))
	for i, term := range terms {
		m.vocab[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	m.docs = make([]map[int]float64, len(docs))
	for i, counts := range termDocs {
		m.docs[i] = m.vectorize(counts)
	}
	return m
}

// Empty reports whether the model has no vocabulary to project into.
func (m *TermWeightModel) Empty() bool {
	return m == nil || len(m.vocab) == 0
}

// Similarities projects query into the model's vector space and returns
// the cosine similarity against every corpus document, in corpus order.
// A query with no in-vocabulary terms scores zero everywhere.
func (m *TermWeightModel) Similarities(query string) []float64 {
	if m.Empty() {
		return nil
	}
	sims := make([]float64, len(m.docs))
	qvec := m.vectorize(ngramCounts(query, m.ngramMin, m.ngramMax))
	if len(qvec) == 0 {
		return sims
	}
	for i, dvec := range m.docs {
		sims[i] = dot(qvec, dvec)
	}
	return sims
}

// vectorize maps raw term counts onto the vocabulary, applies IDF, and
// L2-normalizes so cosine similarity reduces to a dot product.
func (m *TermWeightModel) vectorize(counts map[string]int) map[int]float64 {
	vec := make(map[int]float64)
	var norm float64
	for term, c := range counts {
		idx, ok := m.vocab[term]
		if !ok {
			continue
		}
		w := float64(c) * m.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}

// ngramCounts tokenizes a pre-normalized document and counts every
// n-gram with n in [min, max]. N-grams are space-joined token windows.
func ngramCounts(doc string, min, max int) map[string]int {
	tokens := strings.Fields(doc)
	counts := make(map[string]int)
	for n := min; n <= max; n++ {
		if n <= 0 || n > len(tokens) {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
