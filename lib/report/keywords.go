package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"brewmine/lib/keywords"
)

var ErrTooFewColumns = errors.New("keyword table needs at least two columns")

var corpusKeywordsHeader = []string{"keyword", "tfidf_score"}

func WritePerDocumentKeywords(w io.Writer, docs []keywords.DocumentKeywords) error {
	writer := csv.NewWriter(w)
	err := writer.Write([]string{"article_id", "title", "top_keywords", "tfidf_scores"})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		terms := make([]string, len(doc.Terms))
		scores := make([]string, len(doc.Terms))
		for i, t := range doc.Terms {
			terms[i] = t.Term
			scores[i] = fmt.Sprintf("%.3f", t.Score)
		}
		err = writer.Write([]string{
			strconv.Itoa(doc.ArticleID),
			doc.Title,
			strings.Join(terms, ",\n"),
			strings.Join(scores, ",\n"),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteCorpusKeywords(w io.Writer, terms []keywords.Term) error {
	writer := csv.NewWriter(w)
	err := writer.Write(corpusKeywordsHeader)
	if err != nil {
		return err
	}
	for _, t := range terms {
		err = writer.Write([]string{t.Term, formatFloat(t.Score)})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCorpusKeywords reads a keyword table. Without the expected header the
// first two columns are taken as keyword and score.
func ReadCorpusKeywords(r io.Reader) ([]keywords.Term, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: got %v", ErrTooFewColumns, header)
	}

	termIdx, scoreIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case corpusKeywordsHeader[0]:
			termIdx = i
		case corpusKeywordsHeader[1]:
			scoreIdx = i
		}
	}
	if termIdx < 0 || scoreIdx < 0 {
		slog.Warn("keyword table is missing expected columns, using the first two", "columns", header)
		termIdx, scoreIdx = 0, 1
	}

	var terms []keywords.Term
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if termIdx >= len(record) || scoreIdx >= len(record) {
			return nil, fmt.Errorf("line %d: %w", line, ErrTooFewColumns)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(record[scoreIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score: %w", line, err)
		}
		terms = append(terms, keywords.Term{Term: record[termIdx], Score: score})
	}
	return terms, nil
}
