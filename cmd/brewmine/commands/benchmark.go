package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"brewmine/lib/benchmark"
	"brewmine/lib/cliutil"
	"brewmine/lib/corpus"
	"brewmine/lib/report"
	"brewmine/lib/resmon"
	"brewmine/lib/scrapers/coffeereview"

	"github.com/spf13/cobra"
)

var benchmarkPages *int
var benchmarkOut *string

func init() {
	benchmarkPages = benchmarkCmd.Flags().Int("pages", 2, "The number of listing pages each method scrapes.")
	benchmarkOut = benchmarkCmd.Flags().String("out", "", "The directory to write results to, defaults to <output.dir>/benchmark.")
	rootCmd.AddCommand(benchmarkCmd)
}

func benchmarkTask(method string) benchmark.Task {
	return benchmark.Task{
		Name: method,
		Run: func(ctx context.Context) (coffeereview.Result, error) {
			return scrapeWith(ctx, method)
		},
	}
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark [--pages <n>] [--out <dir>]",
	Short: "Compares the browser and http scrapers by speed, resource usage and success rate.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if *benchmarkPages > 0 {
			cfg.Scrape.Pages = *benchmarkPages
		}
		dir := filepath.Join(cfg.Output.Dir, "benchmark")
		if *benchmarkOut != "" {
			dir = *benchmarkOut
		}

		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		sampler := resmon.SystemSampler{Interval: time.Second}
		resmon.Watch(watchCtx, sampler, 30*time.Second)

		result, err := benchmark.Compare(ctx, sampler, []benchmark.Task{
			benchmarkTask(methodBrowser),
			benchmarkTask(methodHttp),
		})
		if err != nil {
			cliutil.Fatal("benchmark failed", err)
		}

		for _, run := range result.Runs {
			path := filepath.Join(dir, fmt.Sprintf("Article(%s).csv", run.Name))
			err = corpus.SaveArticles(path, run.Result.Articles)
			if err != nil {
				cliutil.Fatal("failed to save articles", err)
			}
		}

		path := filepath.Join(dir, "benchmark_report.csv")
		err = report.WriteFile(path, func(w io.Writer) error {
			return result.WriteCSV(w)
		})
		if err != nil {
			cliutil.Fatal("failed to write benchmark report", err)
		}
		slog.Info("wrote benchmark report", "path", path)

		result.Print(os.Stdout)
	},
}
