package topics

import (
	"fmt"
	"math"
	"sort"

	"brewmine/lib/vectorize"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// fitted is one LDA model over one n-gram vocabulary.
type fitted struct {
	// topicTerms holds the ranked terms of every topic.
	topicTerms [][]Term
	// distributions holds a probability vector over topics per document.
	distributions [][]float64
}

func uniform(k int) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = 1 / float64(k)
	}
	return out
}

// toDistribution rescales `weights` to sum to one, falling back to uniform
// for vectors that are empty or not finite.
func toDistribution(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return uniform(len(weights))
		}
		sum += w
	}
	if sum <= 0 {
		return uniform(len(weights))
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

func fitModel(docs []string, ngram int, vocab VocabularyOptions, opts Options, topN int) (fitted, error) {
	k := opts.NTopics
	result := fitted{
		topicTerms:    make([][]Term, k),
		distributions: make([][]float64, len(docs)),
	}
	for j := range docs {
		result.distributions[j] = uniform(k)
	}

	v := vectorize.New(vectorize.Options{
		NGramMin:       ngram,
		NGramMax:       ngram,
		MaxFeatures:    vocab.MaxFeatures,
		MinDocCount:    vocab.MinDocCount,
		MaxDocFraction: vocab.MaxDocFraction,
	})
	counts := v.FitTransform(docs)
	if counts == nil {
		return result, nil
	}
	vocabulary := v.Vocabulary()

	lda := nlp.NewLatentDirichletAllocation(k)
	lda.Iterations = opts.MaxIter
	lda.Alpha = opts.DocTopicPrior
	lda.Eta = opts.TopicWordPrior
	if lda.Eta <= 0 {
		lda.Eta = 1 / float64(k)
	}
	lda.Rnd = rand.New(rand.NewSource(opts.Seed))
	if opts.Processes > 0 {
		lda.Processes = opts.Processes
	}
	if opts.TransformationPasses > 0 {
		lda.TransformationPasses = opts.TransformationPasses
	}

	lda.Fit(counts)
	docsOverTopics, err := lda.Transform(counts)
	if err != nil {
		return fitted{}, fmt.Errorf("transform lda: %w", err)
	}
	topicsOverTerms := lda.Components()

	column := make([]float64, len(vocabulary))
	weights := make([]float64, k)
	for j := range docs {
		mat.Col(column, j, counts)
		total := 0.0
		for _, c := range column {
			total += c
		}
		if total == 0 {
			continue
		}
		for t := 0; t < k; t++ {
			weights[t] = docsOverTopics.At(t, j)
		}
		result.distributions[j] = toDistribution(weights)
	}

	for t := 0; t < k; t++ {
		terms := make([]Term, len(vocabulary))
		for i, term := range vocabulary {
			terms[i] = Term{Term: term, Weight: topicsOverTerms.At(t, i)}
		}
		sort.SliceStable(terms, func(a, b int) bool {
			return terms[a].Weight > terms[b].Weight
		})
		if topN < len(terms) {
			terms = terms[:topN]
		}
		result.topicTerms[t] = terms
	}

	return result, nil
}
