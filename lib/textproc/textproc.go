// Package textproc turns raw article text into the space-separated token
// strings the vectoriser consumes.
package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var digitRuns = regexp.MustCompile(`\p{N}+`)
var nonWordChars = regexp.MustCompile(`[^\p{L}\p{M}\s]`)

// MinTokenLength is the shortest token a normalized document can contain.
const MinTokenLength = 3

type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer Lemmatizer
}

// NewNormalizer creates a normalizer dropping `stopwords`. A nil lemmatizer
// leaves tokens untouched.
func NewNormalizer(stopwords []string, lemmatizer Lemmatizer) *Normalizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	if lemmatizer == nil {
		lemmatizer = identityLemmatizer{}
	}
	return &Normalizer{stopwords: set, lemmatizer: lemmatizer}
}

func (n *Normalizer) keep(token string) bool {
	if utf8.RuneCountInString(token) < MinTokenLength {
		return false
	}
	_, stop := n.stopwords[token]
	return !stop
}

// Normalize lowercases `text`, strips digits and punctuation, drops
// stopwords and short tokens and lemmatizes what remains.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = digitRuns.ReplaceAllString(text, "")
	text = nonWordChars.ReplaceAllString(text, "")

	var tokens []string
	for _, token := range strings.Fields(text) {
		if !n.keep(token) {
			continue
		}
		lemma := n.lemmatizer.Lemma(token)
		if utf8.RuneCountInString(lemma) < MinTokenLength {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return strings.Join(tokens, " ")
}

// NormalizeAny normalizes strings and returns "" for anything else,
// including nil.
func (n *Normalizer) NormalizeAny(value any) string {
	switch v := value.(type) {
	case string:
		return n.Normalize(v)
	case *string:
		if v == nil {
			return ""
		}
		return n.Normalize(*v)
	}
	return ""
}

func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}
