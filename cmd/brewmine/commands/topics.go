package commands

import (
	"brewmine/lib/cliutil"

	"github.com/spf13/cobra"
)

var topicsFlags analysisFlags
var topicsCount *int

func init() {
	topicsFlags = registerAnalysisFlags(topicsCmd)
	topicsCount = topicsCmd.Flags().Int("topics", 0, "The number of topics, defaults to topics.n_topics.")
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics [--input <articles.csv>] [--out <dir>] [--topics <n>]",
	Short: "Discovers topics with LDA over words and phrases.",
	Run: func(cmd *cobra.Command, args []string) {
		topicsFlags.apply()
		if *topicsCount > 0 {
			cfg.Topics.NTopics = *topicsCount
		}

		titles, contents, err := loadDocuments()
		if err != nil {
			cliutil.Fatal("failed to load articles", err)
		}
		err = runTopics(cmd.Context(), titles, contents)
		if err != nil {
			cliutil.Fatal("failed to model topics", err)
		}
	},
}
