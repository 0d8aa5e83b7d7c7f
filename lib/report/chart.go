package report

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sort"

	"brewmine/lib/keywords"

	"go.opentelemetry.io/otel/attribute"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoKeywords = errors.New("no keywords to chart")

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// ChartKeywords takes the first `topN` terms and orders them by ascending
// score, the order bars are drawn from the bottom up.
func ChartKeywords(terms []keywords.Term, topN int) []keywords.Term {
	if topN > 0 && topN < len(terms) {
		terms = terms[:topN]
	}
	out := make([]keywords.Term, len(terms))
	copy(out, terms)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// SaveKeywordChart renders a horizontal bar chart of the top `topN` terms to
// `path`, the image format follows the file extension.
func SaveKeywordChart(ctx context.Context, path string, terms []keywords.Term, topN int) error {
	_, span := tracer.Start(ctx, "SaveKeywordChart")
	defer span.End()

	terms = ChartKeywords(terms, topN)
	if len(terms) == 0 {
		return ErrNoKeywords
	}
	span.SetAttributes(attribute.Int("bars", len(terms)))

	p := plot.New()
	p.Title.Text = "Top Keywords in Coffee Articles (TF-IDF Score)"
	p.X.Label.Text = "TF-IDF Score"
	p.Y.Label.Text = "Keywords"

	values := make(plotter.Values, len(terms))
	names := make([]string, len(terms))
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(terms)),
		Labels: make([]string, len(terms)),
	}
	maxScore := 0.0
	for i, t := range terms {
		values[i] = t.Score
		names[i] = t.Term
		labels.XYs[i] = plotter.XY{X: t.Score + 0.01, Y: float64(i)}
		labels.Labels[i] = fmt.Sprintf("%.3f", t.Score)
		maxScore = max(maxScore, t.Score)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = skyBlue
	bars.LineStyle.Width = 0
	p.Add(bars)

	text, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(text)

	p.NominalY(names...)
	p.X.Min = 0
	p.X.Max = maxScore*1.15 + 0.05

	err = p.Save(12*vg.Inch, 8*vg.Inch, path)
	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
