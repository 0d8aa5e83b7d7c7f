// Package vectorize builds term-document count matrices from normalized text.
package vectorize

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/james-bowman/sparse"
)

// MinTokenLength is the shortest token the vectoriser counts.
const MinTokenLength = 2

type Options struct {
	// NGramMin and NGramMax bound the n-gram sizes counted, both inclusive.
	NGramMin int
	NGramMax int
	// MaxFeatures caps the vocabulary, 0 means unlimited.
	MaxFeatures int
	// MinDocCount is the minimum number of documents a term must occur in.
	MinDocCount int
	// MaxDocFraction is the maximum fraction of documents a term may occur in.
	MaxDocFraction float64
}

// Vectoriser counts n-grams over a fixed vocabulary learnt by Fit.
type Vectoriser struct {
	opts       Options
	vocabulary []string
	index      map[string]int
}

func New(opts Options) *Vectoriser {
	if opts.NGramMin <= 0 {
		opts.NGramMin = 1
	}
	if opts.NGramMax < opts.NGramMin {
		opts.NGramMax = opts.NGramMin
	}
	if opts.MaxDocFraction <= 0 {
		opts.MaxDocFraction = 1
	}
	return &Vectoriser{opts: opts}
}

func (v *Vectoriser) terms(doc string) []string {
	var tokens []string
	for _, t := range strings.Fields(doc) {
		if utf8.RuneCountInString(t) >= MinTokenLength {
			tokens = append(tokens, t)
		}
	}

	var terms []string
	for n := v.opts.NGramMin; n <= v.opts.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit learns the vocabulary of `docs`. Terms outside the document frequency
// bounds are dropped, then the MaxFeatures most frequent terms are kept with
// ties going to the lexicographically smaller term. The vocabulary may end up
// empty.
func (v *Vectoriser) Fit(docs []string) {
	docCount := make(map[string]int)
	termCount := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			termCount[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docCount[term]++
		}
	}

	maxDocs := v.opts.MaxDocFraction * float64(len(docs))
	minDocs := v.opts.MinDocCount
	if minDocs < 1 {
		minDocs = 1
	}

	var kept []string
	for term, df := range docCount {
		if df < minDocs || float64(df) > maxDocs+1e-9 {
			continue
		}
		kept = append(kept, term)
	}
	sort.Strings(kept)

	if v.opts.MaxFeatures > 0 && len(kept) > v.opts.MaxFeatures {
		sort.SliceStable(kept, func(i, j int) bool {
			return termCount[kept[i]] > termCount[kept[j]]
		})
		kept = kept[:v.opts.MaxFeatures]
		sort.Strings(kept)
	}

	v.vocabulary = kept
	v.index = make(map[string]int, len(kept))
	for i, term := range kept {
		v.index[term] = i
	}
}

// Vocabulary returns the learnt terms in row order.
func (v *Vectoriser) Vocabulary() []string {
	return v.vocabulary
}

type entry struct {
	doc   int
	count float64
}

// Transform counts the vocabulary terms of every document into a
// terms x documents matrix. Nonzero entries are laid out by ascending term,
// then ascending document, so equal input always yields an identical matrix.
// It returns nil when the vocabulary or `docs` is empty.
func (v *Vectoriser) Transform(docs []string) *sparse.CSR {
	if len(v.vocabulary) == 0 || len(docs) == 0 {
		return nil
	}

	rows := make([][]entry, len(v.vocabulary))
	nnz := 0
	for j, doc := range docs {
		counts := make(map[int]int)
		for _, term := range v.terms(doc) {
			i, ok := v.index[term]
			if !ok {
				continue
			}
			counts[i]++
		}
		for i, c := range counts {
			rows[i] = append(rows[i], entry{doc: j, count: float64(c)})
			nnz++
		}
	}

	ia := make([]int, len(rows)+1)
	ja := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	for i, row := range rows {
		for _, e := range row {
			ja = append(ja, e.doc)
			data = append(data, e.count)
		}
		ia[i+1] = len(ja)
	}
	return sparse.NewCSR(len(v.vocabulary), len(docs), ia, ja, data)
}

func (v *Vectoriser) FitTransform(docs []string) *sparse.CSR {
	v.Fit(docs)
	return v.Transform(docs)
}
