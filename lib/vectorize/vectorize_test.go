package vectorize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var docs = []string{
	"fresh coffee bean fresh bean",
	"stale old coffee",
	"fresh roasted bean roasted",
}

func TestFitDocumentFrequencyBounds(t *testing.T) {
	testCases := []struct {
		name     string
		opts     Options
		expected []string
	}{
		{
			name:     "unigrams in at most 70% of documents, at least 2",
			opts:     Options{NGramMin: 1, NGramMax: 2, MinDocCount: 2, MaxDocFraction: 0.7},
			expected: []string{"bean", "coffee", "fresh"},
		},
		{
			name: "bigrams only",
			opts: Options{NGramMin: 2, NGramMax: 2, MinDocCount: 1, MaxDocFraction: 0.9},
			expected: []string{
				"bean fresh", "bean roasted", "coffee bean", "fresh bean",
				"fresh coffee", "fresh roasted", "roasted bean", "stale old",
				"old coffee",
			},
		},
		{
			name:     "feature cap keeps most frequent",
			opts:     Options{NGramMin: 1, NGramMax: 1, MinDocCount: 1, MaxFeatures: 3},
			expected: []string{"bean", "coffee", "fresh"},
		},
		{
			name:     "bounds exclude everything",
			opts:     Options{NGramMin: 1, NGramMax: 1, MinDocCount: 3, MaxDocFraction: 0.9},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(tc.opts)
			v.Fit(docs)
			require.ElementsMatch(t, tc.expected, v.Vocabulary())
			require.IsIncreasing(t, v.Vocabulary())
		})
	}
}

func TestTransformCounts(t *testing.T) {
	v := New(Options{NGramMin: 1, NGramMax: 1, MinDocCount: 1})
	counts := v.FitTransform(docs)
	require.NotNil(t, counts)

	require.Equal(t, []string{"bean", "coffee", "fresh", "old", "roasted", "stale"}, v.Vocabulary())
	rows, cols := counts.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 3, cols)

	require.Equal(t, 2.0, counts.At(0, 0)) // bean in doc 1
	require.Equal(t, 2.0, counts.At(2, 0)) // fresh in doc 1
	require.Equal(t, 1.0, counts.At(1, 1)) // coffee in doc 2
	require.Equal(t, 2.0, counts.At(4, 2)) // roasted in doc 3
	require.Equal(t, 0.0, counts.At(5, 0))
}

func TestTransformIgnoresShortAndUnknownTokens(t *testing.T) {
	v := New(Options{NGramMin: 1, NGramMax: 1, MinDocCount: 1})
	v.Fit([]string{"a bb ccc"})
	require.Equal(t, []string{"bb", "ccc"}, v.Vocabulary())

	counts := v.Transform([]string{"zzz bb bb"})
	require.Equal(t, 2.0, counts.At(0, 0))
	require.Equal(t, 0.0, counts.At(1, 0))
}

func TestEmptyVocabulary(t *testing.T) {
	v := New(Options{NGramMin: 1, NGramMax: 1, MinDocCount: 2})
	require.Nil(t, v.FitTransform([]string{"unique words only"}))
	require.Empty(t, v.Vocabulary())

	v = New(Options{NGramMin: 1, NGramMax: 1})
	require.Nil(t, v.FitTransform(nil))
}

func TestTransformLayoutIsStable(t *testing.T) {
	v := New(Options{NGramMin: 1, NGramMax: 1, MinDocCount: 1})
	first := v.FitTransform(docs).RawMatrix()

	require.Equal(t, []int{0, 2, 4, 6, 7, 8, 9}, first.Indptr)
	require.Equal(t, []int{0, 2, 0, 1, 0, 2, 1, 2, 1}, first.Ind)
	require.Equal(t, []float64{2, 1, 1, 1, 2, 1, 1, 2, 1}, first.Data)

	for i := 0; i < 20; i++ {
		again := New(Options{NGramMin: 1, NGramMax: 1, MinDocCount: 1}).FitTransform(docs).RawMatrix()
		require.Equal(t, first.Indptr, again.Indptr)
		require.Equal(t, first.Ind, again.Ind)
		require.Equal(t, first.Data, again.Data)
	}
}
