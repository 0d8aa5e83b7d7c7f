package textproc

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

const (
	LemmatizerDictionary = "dictionary"
	LemmatizerSnowball   = "snowball"
	LemmatizerNone       = "none"
)

type Lemmatizer interface {
	Lemma(word string) string
}

type dictionaryLemmatizer struct {
	lemmatizer *golem.Lemmatizer
}

func (d dictionaryLemmatizer) Lemma(word string) string {
	return d.lemmatizer.Lemma(word)
}

type snowballLemmatizer struct{}

func (snowballLemmatizer) Lemma(word string) string {
	return english.Stem(word, false)
}

type identityLemmatizer struct{}

func (identityLemmatizer) Lemma(word string) string {
	return word
}

// NewLemmatizer builds the lemmatizer named by `kind`, an empty kind means
// the English dictionary.
func NewLemmatizer(kind string) (Lemmatizer, error) {
	switch strings.ToLower(kind) {
	case LemmatizerDictionary, "":
		lemmatizer, err := golem.New(en.New())
		if err != nil {
			return nil, fmt.Errorf("load english dictionary: %w", err)
		}
		return dictionaryLemmatizer{lemmatizer: lemmatizer}, nil
	case LemmatizerSnowball:
		return snowballLemmatizer{}, nil
	case LemmatizerNone:
		return identityLemmatizer{}, nil
	}
	return nil, fmt.Errorf("unknown lemmatizer %q", kind)
}
