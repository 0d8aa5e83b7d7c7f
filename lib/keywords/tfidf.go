package keywords

import (
	"fmt"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// weigh scales every count by idf+1, where idf is ln((1+n)/(1+df)), and then
// scales every document column to unit length. Empty columns stay zero.
func weigh(counts *sparse.CSR) (*mat.Dense, error) {
	weighted, err := nlp.NewTfidfTransformer().FitTransform(counts)
	if err != nil {
		return nil, fmt.Errorf("tfidf: %w", err)
	}

	// the transformer yields tf*idf, adding tf gives tf*(idf+1)
	weights := mat.DenseCopyOf(weighted)
	weights.Add(weights, counts)
	rows, cols := weights.Dims()
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(column, j, weights)
		norm := floats.Norm(column, 2)
		if norm == 0 {
			continue
		}
		floats.Scale(1/norm, column)
		weights.SetCol(j, column)
	}
	return weights, nil
}
