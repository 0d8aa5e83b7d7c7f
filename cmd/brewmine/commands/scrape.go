package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"brewmine/lib/cliutil"
	"brewmine/lib/corpus"
	"brewmine/lib/restyutil"
	"brewmine/lib/scrapers/coffeereview"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	methodHttp    = "http"
	methodBrowser = "browser"
)

var scrapeMethod *string
var scrapePages *int
var scrapeOut *string

func init() {
	scrapeMethod = scrapeCmd.Flags().String("method", methodHttp, "The scrape method, either http or browser.")
	scrapePages = scrapeCmd.Flags().Int("pages", 0, "The number of listing pages to scrape, defaults to scrape.pages.")
	scrapeOut = scrapeCmd.Flags().String("out", "", "The article CSV to write, defaults to analysis.input.")
	rootCmd.AddCommand(scrapeCmd)
}

func scrapeOptions() coffeereview.Options {
	return coffeereview.Options{
		BaseUrl:      cfg.Scrape.BaseUrl,
		Pages:        cfg.Scrape.Pages,
		PageDelay:    time.Duration(cfg.Scrape.PageDelayMs) * time.Millisecond,
		ArticleDelay: time.Duration(cfg.Scrape.ArticleDelayMs) * time.Millisecond,
	}
}

func newFetcher(ctx context.Context, method string) (coffeereview.Fetcher, error) {
	timeout := time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second

	switch method {
	case methodHttp:
		opts := coffeereview.HttpOptions{
			UserAgent:    cfg.Scrape.UserAgent,
			Timeout:      timeout,
			IgnoreRobots: cfg.Scrape.IgnoreRobots,
		}
		if cfg.Scrape.DumpDir != "" && *debug {
			out, err := restyutil.NewFilesystemOutput(cfg.Scrape.DumpDir)
			if err != nil {
				return nil, fmt.Errorf("prepare dump dir: %w", err)
			}
			opts.Output = out
		}
		return coffeereview.NewHttpFetcher(opts)
	case methodBrowser:
		return coffeereview.NewBrowserFetcher(ctx, coffeereview.BrowserOptions{
			UserAgent:  cfg.Scrape.UserAgent,
			Timeout:    timeout,
			RenderWait: time.Duration(cfg.Scrape.RenderWaitMs) * time.Millisecond,
		})
	}
	return nil, fmt.Errorf("unknown scrape method %q", method)
}

// scrapeWith opens a fetcher for `method`, runs a full scrape and closes it.
func scrapeWith(ctx context.Context, method string) (coffeereview.Result, error) {
	fetcher, err := newFetcher(ctx, method)
	if err != nil {
		return coffeereview.Result{}, err
	}
	defer func() {
		err := fetcher.Close()
		if err != nil {
			slog.WarnContext(ctx, "failed to close fetcher", "method", method, "err", err)
		}
	}()
	return coffeereview.Scrape(ctx, fetcher, scrapeOptions())
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--method http|browser] [--pages <n>] [--out <path/to/articles.csv>]",
	Short: "Scrapes review articles and writes them to a CSV file.",
	Run: func(cmd *cobra.Command, args []string) {
		if *scrapePages > 0 {
			cfg.Scrape.Pages = *scrapePages
		}
		out := cfg.Analysis.Input
		if *scrapeOut != "" {
			out = *scrapeOut
		}

		result, err := scrapeWith(cmd.Context(), *scrapeMethod)
		if err != nil {
			if len(result.Articles) == 0 {
				cliutil.Fatal("failed to scrape", err)
			}
			slog.Warn("scrape interrupted, saving partial result", "err", err)
		}

		err = corpus.SaveArticles(out, result.Articles)
		if err != nil {
			cliutil.Fatal("failed to save articles", err)
		}
		slog.Info("saved articles", "path", out, "count", len(result.Articles))

		t := cliutil.NewTable(nil)
		t.AppendHeader(table.Row{"Method", "Articles", "Failures", "Success Rate(%)"})
		t.AppendRow(table.Row{
			result.Method,
			len(result.Articles),
			result.Failures,
			fmt.Sprintf("%.2f", result.SuccessRate()),
		})
		t.Render()
	},
}
