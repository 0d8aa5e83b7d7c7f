package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"brewmine/lib/config"
	"brewmine/lib/corpus"
	"brewmine/lib/keywords"
	"brewmine/lib/report"
	"brewmine/lib/textproc"
	"brewmine/lib/topics"

	"github.com/spf13/cobra"
)

type analysisFlags struct {
	input *string
	out   *string
}

func registerAnalysisFlags(cmd *cobra.Command) analysisFlags {
	return analysisFlags{
		input: cmd.Flags().String("input", "", "The article CSV to analyze, defaults to analysis.input."),
		out:   cmd.Flags().String("out", "", "The directory to write results to, defaults to output.dir."),
	}
}

func (f analysisFlags) apply() {
	if *f.input != "" {
		cfg.Analysis.Input = *f.input
	}
	if *f.out != "" {
		cfg.Output.Dir = *f.out
	}
}

func outputPath(name string) string {
	return filepath.Join(cfg.Output.Dir, name)
}

func loadDocuments() (titles, contents []string, err error) {
	documents, err := corpus.LoadDocuments(cfg.Analysis.Input, cfg.Analysis.ContentColumn)
	if err != nil {
		return nil, nil, err
	}
	titles = make([]string, len(documents))
	contents = make([]string, len(documents))
	for i, doc := range documents {
		titles[i] = doc.Title
		contents[i] = doc.Content
	}
	return titles, contents, nil
}

func stopwords(base []string) []string {
	return append(base, cfg.Analysis.ExtraStopwords...)
}

func runKeywords(ctx context.Context, titles, contents []string) ([]keywords.Term, error) {
	lemmatizer, err := textproc.NewLemmatizer(cfg.Analysis.Lemmatizer)
	if err != nil {
		return nil, err
	}
	normalizer := textproc.NewNormalizer(stopwords(textproc.KeywordStopwords()), lemmatizer)
	docs := normalizer.NormalizeAll(contents)

	perArticle := cfg.Keywords.PerArticle
	perDocument, err := keywords.PerDocument(ctx, docs, titles, keywords.PerDocumentOptions{
		TopN:           perArticle.TopN,
		MaxFeatures:    perArticle.MaxFeatures,
		MinDocCount:    perArticle.MinDocCount,
		MaxDocFraction: perArticle.MaxDocFraction,
	})
	if err != nil {
		return nil, fmt.Errorf("per article keywords: %w", err)
	}
	err = report.WriteFile(outputPath(report.PerArticleKeywordsFile), func(w io.Writer) error {
		return report.WritePerDocumentKeywords(w, perDocument)
	})
	if err != nil {
		return nil, err
	}

	corpusCfg := cfg.Keywords.Corpus
	terms, err := keywords.CorpusWide(ctx, docs, keywords.CorpusOptions{
		TopN:           corpusCfg.TopN,
		MaxFeatures:    corpusCfg.MaxFeatures,
		MinDocCount:    corpusCfg.MinDocCount,
		MaxDocFraction: corpusCfg.MaxDocFraction,
		SkipNormalize:  corpusCfg.SkipNormalize,
	})
	if err != nil {
		return nil, fmt.Errorf("corpus keywords: %w", err)
	}
	err = report.WriteFile(outputPath(report.CorpusKeywordsFile), func(w io.Writer) error {
		return report.WriteCorpusKeywords(w, terms)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(
		ctx, "extracted keywords",
		"articles", len(docs),
		"corpus_keywords", len(terms),
		"dir", cfg.Output.Dir,
	)
	return terms, nil
}

func runChart(ctx context.Context, terms []keywords.Term) error {
	path := outputPath(report.KeywordChartFile)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	err = report.SaveKeywordChart(ctx, path, terms, cfg.Keywords.ChartTopN)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "saved keyword chart", "path", path)

	top := terms
	if len(top) > cfg.Keywords.ChartTopN {
		top = top[:cfg.Keywords.ChartTopN]
	}
	report.PrintKeywords(os.Stdout, top)
	return nil
}

func topicOptions(c config.TopicsConfig) topics.Options {
	vocabulary := func(v config.VectoriserConfig) topics.VocabularyOptions {
		return topics.VocabularyOptions{
			MaxFeatures:    v.MaxFeatures,
			MinDocCount:    v.MinDocCount,
			MaxDocFraction: v.MaxDocFraction,
		}
	}
	return topics.Options{
		NTopics:              c.NTopics,
		NWords:               c.NWords,
		NPhrases:             c.NPhrases,
		MaxIter:              c.MaxIter,
		DocTopicPrior:        c.DocTopicPrior,
		TopicWordPrior:       c.TopicWordPrior,
		Seed:                 c.Seed,
		Processes:            c.Processes,
		TransformationPasses: c.TransformationPasses,
		Words:                vocabulary(c.Words),
		Phrases:              vocabulary(c.Phrases),
	}
}

func runTopics(ctx context.Context, titles, contents []string) error {
	lemmatizer, err := textproc.NewLemmatizer(cfg.Analysis.Lemmatizer)
	if err != nil {
		return err
	}
	words := textproc.NewNormalizer(stopwords(textproc.TopicStopwords()), lemmatizer)
	phrases := textproc.NewNormalizer(stopwords(textproc.TopicStopwords()), nil)

	model, err := topics.Fit(
		ctx,
		words.NormalizeAll(contents),
		phrases.NormalizeAll(contents),
		titles,
		topicOptions(cfg.Topics),
	)
	if err != nil {
		return fmt.Errorf("fit topics: %w", err)
	}

	writes := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{report.TopicTermsFile, func(w io.Writer) error { return report.WriteTopicTerms(w, model) }},
		{report.DocumentTopicsFile, func(w io.Writer) error { return report.WriteDocumentTopics(w, model) }},
		{report.TopicSummaryFile, func(w io.Writer) error {
			_, err := io.WriteString(w, report.TopicSummary(model))
			return err
		}},
		{report.TopicDistributionFile, func(w io.Writer) error {
			_, err := io.WriteString(w, report.DistributionSummary(model))
			return err
		}},
	}
	for _, f := range writes {
		err = report.WriteFile(outputPath(f.name), f.write)
		if err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "modeled topics", "articles", len(contents), "topics", len(model.Topics))
	report.PrintTopics(os.Stdout, model)
	fmt.Println()
	fmt.Print(report.DistributionSummary(model))
	return nil
}
