package coffeereview

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"brewmine/lib/corpus"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://www.coffeereview.com/category/articles/"

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	Method() string
	ContentMode() ContentMode
	Fetch(ctx context.Context, link string) ([]byte, error)
	Close() error
}

type Options struct {
	BaseUrl      string
	Pages        int
	PageDelay    time.Duration
	ArticleDelay time.Duration
}

type Result struct {
	Method   string
	Articles []corpus.Article
	Failures int
}

// SuccessRate is the percentage of attempted items that became articles.
func (r Result) SuccessRate() float64 {
	attempted := len(r.Articles) + r.Failures
	if attempted == 0 {
		return 0
	}
	return 100 * float64(len(r.Articles)) / float64(attempted)
}

// PageUrl returns the listing url of page `page` (1-indexed).
func PageUrl(baseUrl string, page int) string {
	if !strings.HasSuffix(baseUrl, "/") {
		baseUrl += "/"
	}
	if page <= 1 {
		return baseUrl
	}
	return fmt.Sprintf("%spage/%d/", baseUrl, page)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scrape walks the listing pages in order and fetches every listed article.
// Per-item failures are logged and counted, only context cancellation stops
// the run early, in which case the partial result is returned with the error.
func Scrape(ctx context.Context, fetcher Fetcher, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	method := fetcher.Method()
	span.SetAttributes(attribute.String("method", method), attribute.Int("pages", opts.Pages))

	result := Result{Method: method}
	for page := 1; page <= opts.Pages; page++ {
		pageLink := PageUrl(opts.BaseUrl, page)
		slog.InfoContext(ctx, "scraping listing page", "method", method, "page", page, "url", pageLink)

		err := scrapePage(ctx, fetcher, opts, page, pageLink, &result)
		if err == nil {
			err = sleep(ctx, opts.PageDelay)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scrape interrupted")
			return result, err
		}
	}

	span.SetAttributes(
		attribute.Int("articles", len(result.Articles)),
		attribute.Int("failures", result.Failures),
	)
	slog.InfoContext(
		ctx, "scrape finished",
		"method", method,
		"articles", len(result.Articles),
		"failures", result.Failures,
		"success_rate", result.SuccessRate(),
	)
	return result, nil
}

func scrapePage(ctx context.Context, fetcher Fetcher, opts Options, page int, pageLink string, result *Result) error {
	pageUrl, err := url.Parse(pageLink)
	if err != nil {
		return fmt.Errorf("invalid listing url %q: %w", pageLink, err)
	}

	body, err := fetcher.Fetch(ctx, pageLink)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.ErrorContext(ctx, "failed to fetch listing page", "page", page, "err", err)
		result.Failures++
		return nil
	}

	items, skipped, err := ParseListing(ctx, pageUrl, body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse listing page", "page", page, "err", err)
		result.Failures++
		return nil
	}
	if skipped > 0 {
		slog.ErrorContext(ctx, "listing items without title link", "page", page, "count", skipped)
		result.Failures += skipped
	}
	slog.DebugContext(ctx, "found listing items", "page", page, "count", len(items))

	for _, item := range items {
		article, err := scrapeArticle(ctx, fetcher, item)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.ErrorContext(ctx, "failed to scrape article", "url", item.URL, "err", err)
			result.Failures++
		} else {
			article.SourcePage = page
			result.Articles = append(result.Articles, article)
			slog.InfoContext(ctx, "scraped article", "title", article.Title, "method", article.Method)
		}

		err = sleep(ctx, opts.ArticleDelay)
		if err != nil {
			return err
		}
	}
	return nil
}

func scrapeArticle(ctx context.Context, fetcher Fetcher, item ListingItem) (corpus.Article, error) {
	ctx, span := tracer.Start(ctx, "scrapeArticle")
	defer span.End()
	span.SetAttributes(attribute.String("url", item.URL))

	body, err := fetcher.Fetch(ctx, item.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch article")
		return corpus.Article{}, err
	}
	page, err := ParseArticle(body, item.Title, fetcher.ContentMode())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse article")
		return corpus.Article{}, err
	}

	return corpus.Article{
		Title:    page.Title,
		URL:      item.URL,
		Date:     page.Date,
		Category: page.Category,
		Content:  page.Content,
		Method:   fetcher.Method(),
	}, nil
}
