package commands

import (
	"os"

	"brewmine/lib/cliutil"
	"brewmine/lib/report"

	"github.com/spf13/cobra"
)

var chartInput *string
var chartOut *string

func init() {
	chartInput = chartCmd.Flags().String("input", "", "The corpus keyword CSV, defaults to the one written by the keywords command.")
	chartOut = chartCmd.Flags().String("out", "", "The directory to write results to, defaults to output.dir.")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart [--input <keywords_corpus.csv>] [--out <dir>]",
	Short: "Renders the top corpus keywords as a bar chart.",
	Run: func(cmd *cobra.Command, args []string) {
		if *chartOut != "" {
			cfg.Output.Dir = *chartOut
		}
		input := outputPath(report.CorpusKeywordsFile)
		if *chartInput != "" {
			input = *chartInput
		}

		f, err := os.Open(input)
		if err != nil {
			cliutil.Fatal("failed to open keyword table", err)
		}
		defer f.Close()
		terms, err := report.ReadCorpusKeywords(f)
		if err != nil {
			cliutil.Fatal("failed to read keyword table", err)
		}

		err = runChart(cmd.Context(), terms)
		if err != nil {
			cliutil.Fatal("failed to render chart", err)
		}
	},
}
