package keywords

import (
	"context"
	"strings"
	"testing"

	"brewmine/lib/textproc"

	"github.com/stretchr/testify/require"
)

type mapLemmatizer map[string]string

func (m mapLemmatizer) Lemma(word string) string {
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}

func exampleCorpus() []string {
	n := textproc.NewNormalizer(textproc.KeywordStopwords(), mapLemmatizer{"beans": "bean"})
	return n.NormalizeAll([]string{
		"fresh coffee beans fresh beans",
		"stale old coffee",
		"fresh roasted beans roasted",
	})
}

func termNames(terms []Term) []string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Term
	}
	return names
}

func TestPerDocumentExample(t *testing.T) {
	docs := exampleCorpus()
	result, err := PerDocument(context.Background(), docs, []string{"A", "B", "C"}, PerDocumentOptions{
		TopN:           2,
		MaxFeatures:    500,
		MinDocCount:    2,
		MaxDocFraction: 0.7,
	})
	require.NoError(t, err)
	require.Len(t, result, 3)

	first := result[0]
	require.Equal(t, 1, first.ArticleID)
	require.Equal(t, "A", first.Title)
	require.ElementsMatch(t, []string{"bean", "fresh"}, termNames(first.Terms))
	require.InDelta(t, first.Terms[0].Score, first.Terms[1].Score, 1e-12)

	require.Equal(t, []string{"coffee"}, termNames(result[1].Terms))
	require.InDelta(t, 1.0, result[1].Terms[0].Score, 1e-9)
	require.Equal(t, 3, result[2].ArticleID)

	for i, doc := range result {
		require.LessOrEqual(t, len(doc.Terms), 2)
		for _, term := range doc.Terms {
			require.Contains(t, docs[i], term.Term)
			require.Positive(t, term.Score)
		}
	}
}

func TestPerDocumentIdfKeepsFrequentTerms(t *testing.T) {
	docs := []string{
		"alpha alpha beta",
		"alpha beta",
		"alpha", "alpha", "alpha", "alpha", "alpha",
		"gamma", "gamma", "gamma",
	}
	result, err := PerDocument(context.Background(), docs, nil, PerDocumentOptions{
		TopN:           2,
		MaxFeatures:    500,
		MinDocCount:    2,
		MaxDocFraction: 0.7,
	})
	require.NoError(t, err)

	terms := result[0].Terms
	require.Len(t, terms, 2)
	require.Equal(t, "alpha", terms[0].Term)
	require.InDelta(t, 0.6299, terms[0].Score, 1e-4)
	require.Contains(t, []string{"beta", "alpha beta"}, terms[1].Term)
	require.InDelta(t, 0.5492, terms[1].Score, 1e-4)
}

func TestPerDocumentEmptyVocabulary(t *testing.T) {
	result, err := PerDocument(context.Background(), []string{"alpha beta", "gamma delta"}, nil, PerDocumentOptions{
		TopN:           5,
		MaxFeatures:    500,
		MinDocCount:    2,
		MaxDocFraction: 0.7,
	})
	require.NoError(t, err)
	require.Equal(t, []DocumentKeywords{
		{ArticleID: 1},
		{ArticleID: 2},
	}, result)
}

func TestCorpusWideExample(t *testing.T) {
	terms, err := CorpusWide(context.Background(), exampleCorpus(), CorpusOptions{
		TopN:           50,
		MaxFeatures:    600,
		MinDocCount:    1,
		MaxDocFraction: 0.9,
	})
	require.NoError(t, err)
	require.NotEmpty(t, terms)

	var words []string
	sawMax := false
	for i, term := range terms {
		require.GreaterOrEqual(t, term.Score, 0.0)
		require.LessOrEqual(t, term.Score, 1.0)
		if i > 0 {
			require.GreaterOrEqual(t, terms[i-1].Score, term.Score)
		}
		if term.Score == 1 {
			sawMax = true
		}
		if !term.IsPhrase() {
			words = append(words, term.Term)
		}
	}
	require.True(t, sawMax)
	require.Contains(t, words, "bean")
	require.Contains(t, words, "fresh")
}

func TestCorpusWideSplitsWordsAndPhrases(t *testing.T) {
	terms, err := CorpusWide(context.Background(), exampleCorpus(), CorpusOptions{
		TopN:           4,
		MaxFeatures:    600,
		MinDocCount:    1,
		MaxDocFraction: 0.9,
	})
	require.NoError(t, err)
	require.Len(t, terms, 4)

	phrases := 0
	for _, term := range terms {
		if strings.Contains(term.Term, " ") {
			phrases++
		}
	}
	require.Equal(t, 2, phrases)
	require.Equal(t, []string{"bean", "fresh"}, termNames(terms[:2]))
	require.Equal(t, 1.0, terms[0].Score)
	require.Equal(t, 1.0, terms[1].Score)
	require.ElementsMatch(t, []string{"old coffee", "stale old"}, termNames(terms[2:]))
}

func TestCorpusWideDegenerateScores(t *testing.T) {
	opts := CorpusOptions{TopN: 10, MaxFeatures: 600, MinDocCount: 1, MaxDocFraction: 0.9}
	terms, err := CorpusWide(context.Background(), []string{"alpha", "beta"}, opts)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	for _, term := range terms {
		require.InDelta(t, 1.0, term.Score, 1e-9)
	}

	terms, err = CorpusWide(context.Background(), []string{"alpha"}, opts)
	require.NoError(t, err)
	require.Empty(t, terms)
}

func TestNormalize(t *testing.T) {
	terms := []Term{{Term: "a", Score: 2}, {Term: "b", Score: 4}, {Term: "c", Score: 3}}
	normalize(terms)
	require.Equal(t, []Term{{Term: "a", Score: 0}, {Term: "b", Score: 1}, {Term: "c", Score: 0.5}}, terms)

	same := []Term{{Term: "a", Score: 0.3}, {Term: "b", Score: 0.3}}
	normalize(same)
	require.Equal(t, 0.3, same[0].Score)
}
