package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brewmine/lib/keywords"
	"brewmine/lib/topics"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s string) [][]string {
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWritePerDocumentKeywords(t *testing.T) {
	buff := bytes.NewBuffer(nil)
	err := WritePerDocumentKeywords(buff, []keywords.DocumentKeywords{
		{
			ArticleID: 1,
			Title:     "Ethiopia, Guji",
			Terms: []keywords.Term{
				{Term: "fresh", Score: 0.70710678},
				{Term: "bean", Score: 0.5},
			},
		},
		{ArticleID: 2, Title: "Empty"},
	})
	require.NoError(t, err)

	diff := cmp.Diff([][]string{
		{"article_id", "title", "top_keywords", "tfidf_scores"},
		{"1", "Ethiopia, Guji", "fresh,\nbean", "0.707,\n0.500"},
		{"2", "Empty", "", ""},
	}, readAll(t, buff.String()))
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestCorpusKeywordsRoundTrip(t *testing.T) {
	terms := []keywords.Term{
		{Term: "roasted", Score: 1},
		{Term: "fresh bean", Score: 0.25},
	}
	buff := bytes.NewBuffer(nil)
	require.NoError(t, WriteCorpusKeywords(buff, terms))
	require.True(t, strings.HasPrefix(buff.String(), "keyword,tfidf_score\n"))

	read, err := ReadCorpusKeywords(buff)
	require.NoError(t, err)
	require.Equal(t, terms, read)
}

func TestReadCorpusKeywordsHeaderFallback(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []keywords.Term
		err      error
	}{
		{
			name:     "reordered header",
			input:    "tfidf_score,keyword\n0.5,acidity\n",
			expected: []keywords.Term{{Term: "acidity", Score: 0.5}},
		},
		{
			name:     "unexpected header",
			input:    "term,value,extra\nacidity,0.5,x\nbody,0.25,y\n",
			expected: []keywords.Term{{Term: "acidity", Score: 0.5}, {Term: "body", Score: 0.25}},
		},
		{
			name:  "single column",
			input: "keyword\nacidity\n",
			err:   ErrTooFewColumns,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			terms, err := ReadCorpusKeywords(strings.NewReader(tc.input))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, terms)
		})
	}

	_, err := ReadCorpusKeywords(strings.NewReader("keyword,tfidf_score\nacidity,high\n"))
	require.Error(t, err)
}

func exampleModel() topics.Model {
	model := topics.Model{
		Topics: []topics.Topic{
			{
				ID:      1,
				Words:   []topics.Term{{Term: "espresso", Weight: 3.14159}},
				Phrases: []topics.Term{{Term: "dark roast", Weight: 1.5}},
			},
			{ID: 2, Words: []topics.Term{{Term: "floral", Weight: 2}}},
			{ID: 3},
		},
		Documents: []topics.DocumentTopics{
			{ArticleID: 1, Title: "A", Distribution: []float64{0.5, 0.25, 0.25}, DominantTopic: 1, Probability: 0.5},
			{ArticleID: 2, Title: "B", Distribution: []float64{0.2, 0.6, 0.2}, DominantTopic: 2, Probability: 0.6},
			{ArticleID: 3, Title: "C", Distribution: []float64{0.7, 0.2, 0.1}, DominantTopic: 1, Probability: 0.7},
		},
	}
	return model
}

func TestWriteTopicTables(t *testing.T) {
	model := exampleModel()

	buff := bytes.NewBuffer(nil)
	require.NoError(t, WriteTopicTerms(buff, model))
	require.Equal(t, [][]string{
		{"topic_id", "term", "weight", "type"},
		{"1", "espresso", "3.14159", "word"},
		{"1", "dark roast", "1.5", "phrase"},
		{"2", "floral", "2", "word"},
	}, readAll(t, buff.String()))

	buff.Reset()
	require.NoError(t, WriteDocumentTopics(buff, model))
	records := readAll(t, buff.String())
	require.Equal(t, []string{
		"article_id", "title", "dominant_topic", "dominant_topic_prob",
		"topic_1_prob", "topic_2_prob", "topic_3_prob",
	}, records[0])
	require.Equal(t, []string{"2", "B", "2", "0.6", "0.2", "0.6", "0.2"}, records[2])
}

func TestTopicSummary(t *testing.T) {
	expected := `
=== Topics Discovery by LDA ===
Topic #1:
  Words:
    - espresso (3.1416)
  Phrases:
    - dark roast (1.5000)
Topic #2:
  Words:
    - floral (2.0000)
  Phrases:
Topic #3:
  Words:
  Phrases:
`
	require.Equal(t, expected, TopicSummary(exampleModel()))
}

func TestDistributionSummary(t *testing.T) {
	expected := "=== Articles Distribution ===\n\n" +
		"Topic #1: 2 articles (66.7%)\n" +
		"Topic #2: 1 articles (33.3%)\n"
	require.Equal(t, expected, DistributionSummary(exampleModel()))
}

func TestPrintTables(t *testing.T) {
	buff := bytes.NewBuffer(nil)
	PrintKeywords(buff, []keywords.Term{{Term: "acidity", Score: 0.98765}})
	require.Contains(t, buff.String(), "acidity")
	require.Contains(t, buff.String(), "0.988")

	buff.Reset()
	PrintTopics(buff, exampleModel())
	require.Contains(t, buff.String(), "dark roast")
	require.Contains(t, buff.String(), "2 (66.7%)")
}

func TestChartKeywords(t *testing.T) {
	terms := []keywords.Term{
		{Term: "a", Score: 1},
		{Term: "b", Score: 0.8},
		{Term: "c", Score: 0.9},
		{Term: "d", Score: 0.1},
	}
	require.Equal(t, []keywords.Term{
		{Term: "b", Score: 0.8},
		{Term: "c", Score: 0.9},
		{Term: "a", Score: 1},
	}, ChartKeywords(terms, 3))
	require.Equal(t, "a", terms[0].Term)
}

func TestSaveKeywordChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords_barchart.png")
	err := SaveKeywordChart(context.Background(), path, []keywords.Term{
		{Term: "roasted", Score: 1},
		{Term: "fresh bean", Score: 0.4},
	}, 20)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	magic := make([]byte, 8)
	_, err = io.ReadFull(f, magic)
	require.NoError(t, err)
	require.Equal(t, "\x89PNG\r\n\x1a\n", string(magic))

	err = SaveKeywordChart(context.Background(), path, nil, 20)
	require.ErrorIs(t, err, ErrNoKeywords)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics", "topics_discovery.txt")
	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}
