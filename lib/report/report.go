// Package report writes analysis results as CSV, plain text, console tables
// and charts.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"brewmine/lib/telemetry"
)

var tracer = telemetry.Tracer("brewmine/report")

// file names relative to the output directory
const (
	PerArticleKeywordsFile = "keywords/keywords_per_article.csv"
	CorpusKeywordsFile     = "keywords/keywords_corpus.csv"
	KeywordChartFile       = "keywords/keywords_barchart.png"
	TopicTermsFile         = "topics/topic_terms.csv"
	TopicSummaryFile       = "topics/topics_discovery.txt"
	DocumentTopicsFile     = "topics/article_topic_distribution.csv"
	TopicDistributionFile  = "topics/topic_distribution.txt"
)

// WriteFile creates `path` and its parent directories and hands a buffered
// writer to `write`.
func WriteFile(path string, write func(w io.Writer) error) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buffered := bufio.NewWriter(f)
	err = write(buffered)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	err = buffered.Flush()
	if err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
