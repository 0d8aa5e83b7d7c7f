// Package config holds the brewmine configuration surface.
//
// Every tunable constant of the scraping and text-mining stages lives here so that
// a run can be reproduced from its config file alone.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"brewmine/lib/configutil"

	"dario.cat/mergo"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "brewmine.json5"

// Configuration validation errors.
var (
	ErrInvalidPages          = errors.New("scrape.pages must be at least 1")
	ErrInvalidTimeout        = errors.New("scrape.timeout_seconds must be at least 1")
	ErrInvalidDelay          = errors.New("scrape delays must be non-negative")
	ErrMissingBaseUrl        = errors.New("scrape.base_url is required")
	ErrInvalidLemmatizer     = errors.New("analysis.lemmatizer must be one of: dictionary, snowball, none")
	ErrInvalidTopN           = errors.New("keyword top_n values must be at least 1")
	ErrInvalidVocabulary     = errors.New("vectoriser max_features and min_doc_count must be at least 1")
	ErrInvalidDocFraction    = errors.New("vectoriser max_doc_fraction must be in (0, 1]")
	ErrInvalidTopics         = errors.New("topics.n_topics must be at least 1")
	ErrInvalidTopicTerms     = errors.New("topics.n_words and topics.n_phrases must be at least 1")
	ErrInvalidIterations     = errors.New("topics.max_iter must be at least 1")
	ErrInvalidDocTopicPrior  = errors.New("topics.doc_topic_prior must be positive")
	ErrInvalidTopicWordPrior = errors.New("topics.topic_word_prior must be non-negative")
	ErrMissingOutputDir      = errors.New("output.dir is required")
)

type Config struct {
	Scrape   ScrapeConfig   `json:"scrape"`
	Analysis AnalysisConfig `json:"analysis"`
	Keywords KeywordsConfig `json:"keywords"`
	Topics   TopicsConfig   `json:"topics"`
	Output   OutputConfig   `json:"output"`
}

type ScrapeConfig struct {
	BaseUrl        string `json:"base_url"`
	Pages          int    `json:"pages"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	PageDelayMs    int    `json:"page_delay_ms"`
	ArticleDelayMs int    `json:"article_delay_ms"`
	// time given to the browser to render a page before its DOM is read
	RenderWaitMs int  `json:"render_wait_ms"`
	IgnoreRobots bool `json:"ignore_robots"`
	// when set, every HTTP exchange is written here while --debug is on
	DumpDir string `json:"dump_dir"`
}

type AnalysisConfig struct {
	Input          string   `json:"input"`
	ContentColumn  string   `json:"content_column"`
	Lemmatizer     string   `json:"lemmatizer"`
	ExtraStopwords []string `json:"extra_stopwords"`
}

// VectoriserConfig bounds the vocabulary of one vectoriser.
type VectoriserConfig struct {
	MaxFeatures    int     `json:"max_features"`
	MinDocCount    int     `json:"min_doc_count"`
	MaxDocFraction float64 `json:"max_doc_fraction"`
}

type PerArticleConfig struct {
	TopN int `json:"top_n"`
	VectoriserConfig
}

type CorpusKeywordsConfig struct {
	TopN          int  `json:"top_n"`
	SkipNormalize bool `json:"skip_normalize"`
	VectoriserConfig
}

type KeywordsConfig struct {
	PerArticle PerArticleConfig     `json:"per_article"`
	Corpus     CorpusKeywordsConfig `json:"corpus"`
	ChartTopN  int                  `json:"chart_top_n"`
}

type TopicsConfig struct {
	NTopics              int     `json:"n_topics"`
	NWords               int     `json:"n_words"`
	NPhrases             int     `json:"n_phrases"`
	MaxIter              int     `json:"max_iter"`
	DocTopicPrior        float64 `json:"doc_topic_prior"`
	TopicWordPrior       float64 `json:"topic_word_prior"`
	Seed                 uint64  `json:"seed"`
	Processes            int     `json:"processes"`
	TransformationPasses int     `json:"transformation_passes"`

	Words   VectoriserConfig `json:"words"`
	Phrases VectoriserConfig `json:"phrases"`
}

type OutputConfig struct {
	Dir string `json:"dir"`
}

const (
	LemmatizerDictionary = "dictionary"
	LemmatizerSnowball   = "snowball"
	LemmatizerNone       = "none"
)

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Scrape: ScrapeConfig{
			BaseUrl:        "https://www.coffeereview.com/category/articles/",
			Pages:          6,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			TimeoutSeconds: 10,
			PageDelayMs:    3000,
			ArticleDelayMs: 2000,
			RenderWaitMs:   3000,
		},
		Analysis: AnalysisConfig{
			Input:         "Articles_Coffee.csv",
			ContentColumn: "content",
			Lemmatizer:    LemmatizerDictionary,
		},
		Keywords: KeywordsConfig{
			PerArticle: PerArticleConfig{
				TopN: 5,
				VectoriserConfig: VectoriserConfig{
					MaxFeatures:    500,
					MinDocCount:    2,
					MaxDocFraction: 0.7,
				},
			},
			Corpus: CorpusKeywordsConfig{
				TopN: 50,
				VectoriserConfig: VectoriserConfig{
					MaxFeatures:    600,
					MinDocCount:    1,
					MaxDocFraction: 0.9,
				},
			},
			ChartTopN: 20,
		},
		Topics: TopicsConfig{
			NTopics:              5,
			NWords:               6,
			NPhrases:             10,
			MaxIter:              10,
			DocTopicPrior:        0.5,
			Processes:            1,
			TransformationPasses: 100,
			Words: VectoriserConfig{
				MaxFeatures:    600,
				MinDocCount:    3,
				MaxDocFraction: 0.9,
			},
			Phrases: VectoriserConfig{
				MaxFeatures:    300,
				MinDocCount:    1,
				MaxDocFraction: 0.9,
			},
		},
		Output: OutputConfig{
			Dir: "results",
		},
	}
}

// Load reads `path` (and its .local override), fills every unset field from
// Default() and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	err = mergo.Merge(&cfg, Default())
	if err != nil {
		return Config{}, fmt.Errorf("apply defaults: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (v VectoriserConfig) validate() error {
	if v.MaxFeatures < 1 || v.MinDocCount < 1 {
		return ErrInvalidVocabulary
	}
	if v.MaxDocFraction <= 0 || v.MaxDocFraction > 1 {
		return ErrInvalidDocFraction
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Scrape.BaseUrl == "" {
		return ErrMissingBaseUrl
	}
	if c.Scrape.Pages < 1 {
		return ErrInvalidPages
	}
	if c.Scrape.TimeoutSeconds < 1 {
		return ErrInvalidTimeout
	}
	if c.Scrape.PageDelayMs < 0 || c.Scrape.ArticleDelayMs < 0 || c.Scrape.RenderWaitMs < 0 {
		return ErrInvalidDelay
	}

	switch strings.ToLower(c.Analysis.Lemmatizer) {
	case LemmatizerDictionary, LemmatizerSnowball, LemmatizerNone:
	default:
		return ErrInvalidLemmatizer
	}

	if c.Keywords.PerArticle.TopN < 1 || c.Keywords.Corpus.TopN < 1 || c.Keywords.ChartTopN < 1 {
		return ErrInvalidTopN
	}
	for _, v := range []VectoriserConfig{
		c.Keywords.PerArticle.VectoriserConfig,
		c.Keywords.Corpus.VectoriserConfig,
		c.Topics.Words,
		c.Topics.Phrases,
	} {
		if err := v.validate(); err != nil {
			return err
		}
	}

	if c.Topics.NTopics < 1 {
		return ErrInvalidTopics
	}
	if c.Topics.NWords < 1 || c.Topics.NPhrases < 1 {
		return ErrInvalidTopicTerms
	}
	if c.Topics.MaxIter < 1 {
		return ErrInvalidIterations
	}
	if c.Topics.DocTopicPrior <= 0 {
		return ErrInvalidDocTopicPrior
	}
	if c.Topics.TopicWordPrior < 0 {
		return ErrInvalidTopicWordPrior
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}
	return nil
}
