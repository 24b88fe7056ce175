package nlp

import (
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/russian"
)

// Lemmatizer reduces a single word to its normal form. Implementations
// must degrade gracefully: a word they cannot analyze comes back as-is.
type Lemmatizer interface {
	Lemma(word string) string
}

// SnowballLemmatizer normalizes Russian words with the snowball stemmer.
// Stemming is cruder than full morphological analysis but maps inflected
// forms of the same word onto one token, which is all the index needs.
type SnowballLemmatizer struct{}

func (SnowballLemmatizer) Lemma(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}
	env := snowballstem.NewEnv(word)
	russian.Stem(env)
	out := env.Current()
	if out == "" {
		return word
	}
	return out
}
