package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"brewmine/lib/topics"
)

func WriteTopicTerms(w io.Writer, model topics.Model) error {
	writer := csv.NewWriter(w)
	err := writer.Write([]string{"topic_id", "term", "weight", "type"})
	if err != nil {
		return err
	}
	for _, topic := range model.Topics {
		id := strconv.Itoa(topic.ID)
		for _, term := range topic.Words {
			err = writer.Write([]string{id, term.Term, formatFloat(term.Weight), "word"})
			if err != nil {
				return err
			}
		}
		for _, term := range topic.Phrases {
			err = writer.Write([]string{id, term.Term, formatFloat(term.Weight), "phrase"})
			if err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteDocumentTopics(w io.Writer, model topics.Model) error {
	writer := csv.NewWriter(w)
	header := []string{"article_id", "title", "dominant_topic", "dominant_topic_prob"}
	for _, topic := range model.Topics {
		header = append(header, fmt.Sprintf("topic_%d_prob", topic.ID))
	}
	err := writer.Write(header)
	if err != nil {
		return err
	}

	for _, doc := range model.Documents {
		record := []string{
			strconv.Itoa(doc.ArticleID),
			doc.Title,
			strconv.Itoa(doc.DominantTopic),
			formatFloat(doc.Probability),
		}
		for _, p := range doc.Distribution {
			record = append(record, formatFloat(p))
		}
		err = writer.Write(record)
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// TopicSummary renders the ranked words and phrases of every topic.
func TopicSummary(model topics.Model) string {
	var out strings.Builder
	out.WriteString("\n=== Topics Discovery by LDA ===\n")
	for _, topic := range model.Topics {
		fmt.Fprintf(&out, "Topic #%d:\n", topic.ID)
		out.WriteString("  Words:\n")
		for _, term := range topic.Words {
			fmt.Fprintf(&out, "    - %s (%.4f)\n", term.Term, term.Weight)
		}
		out.WriteString("  Phrases:\n")
		for _, term := range topic.Phrases {
			fmt.Fprintf(&out, "    - %s (%.4f)\n", term.Term, term.Weight)
		}
	}
	return out.String()
}

// DistributionSummary renders how many documents each topic dominates.
func DistributionSummary(model topics.Model) string {
	var out strings.Builder
	out.WriteString("=== Articles Distribution ===\n\n")
	for _, c := range model.Histogram() {
		fmt.Fprintf(&out, "Topic #%d: %d articles (%.1f%%)\n", c.Topic, c.Count, c.Percent)
	}
	return out.String()
}
