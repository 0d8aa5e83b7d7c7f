package commands

import (
	"brewmine/lib/cliutil"

	"github.com/spf13/cobra"
)

var keywordsFlags analysisFlags

func init() {
	keywordsFlags = registerAnalysisFlags(keywordsCmd)
	rootCmd.AddCommand(keywordsCmd)
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords [--input <articles.csv>] [--out <dir>]",
	Short: "Extracts TF-IDF keywords per article and across the corpus.",
	Run: func(cmd *cobra.Command, args []string) {
		keywordsFlags.apply()

		titles, contents, err := loadDocuments()
		if err != nil {
			cliutil.Fatal("failed to load articles", err)
		}
		_, err = runKeywords(cmd.Context(), titles, contents)
		if err != nil {
			cliutil.Fatal("failed to extract keywords", err)
		}
	},
}
