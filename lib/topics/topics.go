// Package topics fits two LDA models, one over single words and one over
// adjacent word pairs, and combines their per-document topic distributions.
package topics

import (
	"context"
	"errors"

	"brewmine/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("brewmine/topics")

var ErrNoTopics = errors.New("topic count must be positive")

type VocabularyOptions struct {
	MaxFeatures    int
	MinDocCount    int
	MaxDocFraction float64
}

type Options struct {
	NTopics  int
	NWords   int
	NPhrases int
	MaxIter  int
	// DocTopicPrior is the symmetric Dirichlet prior on document topics.
	DocTopicPrior float64
	// TopicWordPrior defaults to 1/NTopics when zero.
	TopicWordPrior       float64
	Seed                 uint64
	Processes            int
	TransformationPasses int
	Words                VocabularyOptions
	Phrases              VocabularyOptions
}

type Term struct {
	Term   string
	Weight float64
}

type Topic struct {
	// ID is 1-based.
	ID      int
	Words   []Term
	Phrases []Term
}

type DocumentTopics struct {
	// ArticleID is the 1-based position of the document in the corpus.
	ArticleID int
	Title     string
	// Distribution is the average of both models' topic distributions.
	Distribution []float64
	// DominantTopic is the 1-based id of the most probable topic.
	DominantTopic int
	Probability   float64
}

type TopicCount struct {
	Topic   int
	Count   int
	Percent float64
}

type Model struct {
	Topics    []Topic
	Documents []DocumentTopics
}

// argmax returns the first index holding the largest value.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// Fit models `wordDocs` (lemmatized) with the word model and `phraseDocs`
// with the phrase model. Both slices describe the same documents in the same
// order.
func Fit(ctx context.Context, wordDocs, phraseDocs, titles []string, opts Options) (Model, error) {
	_, span := tracer.Start(ctx, "Fit")
	defer span.End()

	if opts.NTopics <= 0 {
		return Model{}, ErrNoTopics
	}
	if len(wordDocs) != len(phraseDocs) {
		return Model{}, errors.New("word and phrase corpora differ in length")
	}
	span.SetAttributes(
		attribute.Int("documents", len(wordDocs)),
		attribute.Int("topics", opts.NTopics),
	)

	words, err := fitModel(wordDocs, 1, opts.Words, opts, opts.NWords)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fit word model")
		return Model{}, err
	}
	phrases, err := fitModel(phraseDocs, 2, opts.Phrases, opts, opts.NPhrases)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fit phrase model")
		return Model{}, err
	}

	model := Model{
		Topics:    make([]Topic, opts.NTopics),
		Documents: make([]DocumentTopics, len(wordDocs)),
	}
	for t := range model.Topics {
		model.Topics[t] = Topic{
			ID:      t + 1,
			Words:   words.topicTerms[t],
			Phrases: phrases.topicTerms[t],
		}
	}
	for j := range model.Documents {
		combined := make([]float64, opts.NTopics)
		for t := range combined {
			combined[t] = (words.distributions[j][t] + phrases.distributions[j][t]) / 2
		}
		dominant := argmax(combined)

		doc := DocumentTopics{
			ArticleID:     j + 1,
			Distribution:  combined,
			DominantTopic: dominant + 1,
			Probability:   combined[dominant],
		}
		if j < len(titles) {
			doc.Title = titles[j]
		}
		model.Documents[j] = doc
	}

	return model, nil
}

// Histogram counts how many documents each topic dominates. Topics that
// dominate nothing are omitted, the rest are ordered by id.
func (m Model) Histogram() []TopicCount {
	counts := make([]int, len(m.Topics))
	for _, doc := range m.Documents {
		if doc.DominantTopic >= 1 && doc.DominantTopic <= len(counts) {
			counts[doc.DominantTopic-1]++
		}
	}

	var result []TopicCount
	for t, c := range counts {
		if c == 0 {
			continue
		}
		result = append(result, TopicCount{
			Topic:   t + 1,
			Count:   c,
			Percent: 100 * float64(c) / float64(len(m.Documents)),
		})
	}
	return result
}
