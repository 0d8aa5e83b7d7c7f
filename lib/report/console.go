package report

import (
	"fmt"
	"io"
	"strings"

	"brewmine/lib/cliutil"
	"brewmine/lib/keywords"
	"brewmine/lib/topics"

	"github.com/jedib0t/go-pretty/v6/table"
)

func PrintKeywords(out io.Writer, terms []keywords.Term) {
	t := cliutil.NewTable(out)
	t.SetTitle("Top Keywords")
	t.AppendHeader(table.Row{"#", "Keyword", "TF-IDF Score"})
	for i, term := range terms {
		t.AppendRow(table.Row{i + 1, term.Term, fmt.Sprintf("%.3f", term.Score)})
	}
	t.Render()
}

func PrintTopics(out io.Writer, model topics.Model) {
	t := cliutil.NewTable(out)
	t.SetTitle("Topics")
	t.AppendHeader(table.Row{"Topic", "Words", "Phrases", "Articles"})

	counts := make(map[int]topics.TopicCount)
	for _, c := range model.Histogram() {
		counts[c.Topic] = c
	}
	for _, topic := range model.Topics {
		words := joinTerms(topic.Words)
		phrases := joinTerms(topic.Phrases)
		c := counts[topic.ID]
		t.AppendRow(table.Row{
			topic.ID,
			words,
			phrases,
			fmt.Sprintf("%d (%.1f%%)", c.Count, c.Percent),
		})
	}
	t.Render()
}

func joinTerms(terms []topics.Term) string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Term
	}
	return strings.Join(names, ", ")
}
