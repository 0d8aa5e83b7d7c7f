// Package keywords ranks the terms of a normalized corpus by TF-IDF, either
// within each document or across the whole corpus.
package keywords

import (
	"context"
	"sort"
	"strings"

	"brewmine/lib/telemetry"
	"brewmine/lib/vectorize"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("brewmine/keywords")

type Term struct {
	Term  string
	Score float64
}

// IsPhrase reports whether the term spans more than one word.
func (t Term) IsPhrase() bool {
	return strings.Contains(t.Term, " ")
}

type DocumentKeywords struct {
	// ArticleID is the 1-based position of the document in the corpus.
	ArticleID int
	Title     string
	Terms     []Term
}

type PerDocumentOptions struct {
	TopN           int
	MaxFeatures    int
	MinDocCount    int
	MaxDocFraction float64
}

type CorpusOptions struct {
	TopN           int
	MaxFeatures    int
	MinDocCount    int
	MaxDocFraction float64
	// SkipNormalize keeps the raw summed scores.
	SkipNormalize bool
}

// rank sorts terms by descending score, equal scores keep their order.
func rank(terms []Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Score > terms[j].Score
	})
}

func head(terms []Term, n int) []Term {
	if n < len(terms) {
		return terms[:n]
	}
	return terms
}

// PerDocument fits one vocabulary over all of `docs` and returns the TopN
// highest weighted terms of each document. `titles` may be shorter than docs.
func PerDocument(ctx context.Context, docs, titles []string, opts PerDocumentOptions) ([]DocumentKeywords, error) {
	_, span := tracer.Start(ctx, "PerDocument")
	defer span.End()

	result := make([]DocumentKeywords, len(docs))
	for i := range docs {
		result[i].ArticleID = i + 1
		if i < len(titles) {
			result[i].Title = titles[i]
		}
	}

	v := vectorize.New(vectorize.Options{
		NGramMin:       1,
		NGramMax:       2,
		MaxFeatures:    opts.MaxFeatures,
		MinDocCount:    opts.MinDocCount,
		MaxDocFraction: opts.MaxDocFraction,
	})
	counts := v.FitTransform(docs)
	vocabulary := v.Vocabulary()
	span.SetAttributes(attribute.Int("vocabulary", len(vocabulary)))
	if counts == nil {
		return result, nil
	}

	weights, err := weigh(counts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to weigh terms")
		return nil, err
	}

	for j := range docs {
		var terms []Term
		for i, term := range vocabulary {
			score := weights.At(i, j)
			if score <= 0 {
				continue
			}
			terms = append(terms, Term{Term: term, Score: score})
		}
		rank(terms)
		result[j].Terms = head(terms, opts.TopN)
	}
	return result, nil
}

// CorpusWide scores every vocabulary term by its summed weight across all
// documents and returns the top TopN/2 single words and TopN/2 phrases,
// merged by score.
func CorpusWide(ctx context.Context, docs []string, opts CorpusOptions) ([]Term, error) {
	_, span := tracer.Start(ctx, "CorpusWide")
	defer span.End()

	v := vectorize.New(vectorize.Options{
		NGramMin:       1,
		NGramMax:       2,
		MaxFeatures:    opts.MaxFeatures,
		MinDocCount:    opts.MinDocCount,
		MaxDocFraction: opts.MaxDocFraction,
	})
	counts := v.FitTransform(docs)
	vocabulary := v.Vocabulary()
	span.SetAttributes(attribute.Int("vocabulary", len(vocabulary)))
	if counts == nil {
		return nil, nil
	}

	weights, err := weigh(counts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to weigh terms")
		return nil, err
	}

	scores := make([]Term, len(vocabulary))
	_, cols := weights.Dims()
	for i, term := range vocabulary {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += weights.At(i, j)
		}
		scores[i] = Term{Term: term, Score: sum}
	}
	if !opts.SkipNormalize {
		normalize(scores)
	}

	var words, phrases []Term
	for _, t := range scores {
		if t.IsPhrase() {
			phrases = append(phrases, t)
		} else {
			words = append(words, t)
		}
	}
	rank(words)
	rank(phrases)

	half := opts.TopN / 2
	merged := append(head(words, half), head(phrases, half)...)
	rank(merged)
	return merged, nil
}

// normalize rescales scores to [0, 1]. Scores are left alone when they are
// all equal.
func normalize(terms []Term) {
	if len(terms) == 0 {
		return
	}
	lo, hi := terms[0].Score, terms[0].Score
	for _, t := range terms[1:] {
		lo = min(lo, t.Score)
		hi = max(hi, t.Score)
	}
	if hi <= lo {
		return
	}
	for i := range terms {
		terms[i].Score = (terms[i].Score - lo) / (hi - lo)
	}
}
