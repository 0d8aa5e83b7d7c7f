// Package corpus holds the scraped article model and its flat CSV form.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"brewmine/lib/textutil"
)

var ErrNoContentColumn = errors.New("no content-like column found")

var contentMatchers = []string{"content", "text"}

type Article struct {
	Title      string
	URL        string
	Date       string
	Category   string
	Content    string
	SourcePage int
	Method     string
}

var Header = []string{"title", "url", "date", "category", "content", "source_page", "method"}

func (a Article) record() []string {
	return []string{
		a.Title,
		a.URL,
		a.Date,
		a.Category,
		a.Content,
		fmt.Sprint(a.SourcePage),
		a.Method,
	}
}

// Document is the part of an input row the text-mining stages look at.
type Document struct {
	Title   string
	Content string
}

func WriteArticles(w io.Writer, articles []Article) error {
	writer := csv.NewWriter(w)
	err := writer.Write(Header)
	if err != nil {
		return err
	}
	for _, a := range articles {
		err = writer.Write(a.record())
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveArticles writes `articles` to `path`, creating parent directories.
func SaveArticles(path string, articles []Article) error {
	dir := filepath.Dir(path)
	if dir != "" {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = WriteArticles(f, articles)
	if err != nil {
		return fmt.Errorf("write articles to %s: %w", path, err)
	}
	return f.Close()
}

// ReadDocuments reads a delimited table with a header row. The content column
// is `contentColumn` when present, otherwise the first column whose name
// contains "content" or "text". Short rows yield empty cells.
func ReadDocuments(r io.Reader, contentColumn string) ([]Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: input is empty", ErrNoContentColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	contentIdx := textutil.FindName(header, contentColumn, contentMatchers)
	if contentIdx < 0 {
		return nil, fmt.Errorf("%w: columns %v", ErrNoContentColumn, header)
	}
	if textutil.NormalizeName(header[contentIdx]) != textutil.NormalizeName(contentColumn) {
		slog.Warn(
			"content column not found, using fallback",
			"expected", contentColumn,
			"using", header[contentIdx],
		)
	}
	titleIdx := textutil.FindName(header, "title", nil)

	cell := func(record []string, idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var documents []Document
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(documents)+1, err)
		}
		documents = append(documents, Document{
			Title:   cell(record, titleIdx),
			Content: cell(record, contentIdx),
		})
	}

	return documents, nil
}

func LoadDocuments(path, contentColumn string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	documents, err := ReadDocuments(f, contentColumn)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("loaded documents", "path", path, "count", len(documents))
	return documents, nil
}

// Titles returns the titles of `articles` in order.
func Titles(articles []Article) []string {
	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = a.Title
	}
	return titles
}
