package commands

import (
	"errors"
	"log/slog"

	"brewmine/lib/cliutil"
	"brewmine/lib/report"

	"github.com/spf13/cobra"
)

var analyzeFlags analysisFlags

func init() {
	analyzeFlags = registerAnalysisFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--input <articles.csv>] [--out <dir>]",
	Short: "Runs keyword extraction, the keyword chart and topic modeling in sequence.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		analyzeFlags.apply()

		titles, contents, err := loadDocuments()
		if err != nil {
			cliutil.Fatal("failed to load articles", err)
		}

		terms, err := runKeywords(ctx, titles, contents)
		if err != nil {
			cliutil.Fatal("failed to extract keywords", err)
		}
		err = runChart(ctx, terms)
		if errors.Is(err, report.ErrNoKeywords) {
			slog.WarnContext(ctx, "no corpus keywords, skipping chart")
		} else if err != nil {
			cliutil.Fatal("failed to render chart", err)
		}
		err = runTopics(ctx, titles, contents)
		if err != nil {
			cliutil.Fatal("failed to model topics", err)
		}
	},
}
