package textproc

var baseStopwords = []string{
	"the", "and", "to", "of", "a", "in", "that", "is", "it", "for", "with", "on", "by",
	"this", "as", "be", "at", "are", "was", "from", "has", "have", "had", "been", "but",
	"not", "what", "all", "were", "when", "we", "they", "their", "you", "your", "his",
	"her", "says", "said", "say", "one", "two", "three", "many", "much", "can", "will",
	"just", "would", "could", "should", "now", "then", "than", "our", "here", "there", "why",
	"these", "those", "year", "per", "about", "who", "report", "variety", "notes", "like", "she", "he",
}

// KeywordStopwords is the list used before keyword extraction.
func KeywordStopwords() []string {
	return append(TopicStopwords(), "other", "month", "daddy")
}

// TopicStopwords is the list used before topic modeling.
func TopicStopwords() []string {
	out := make([]string, len(baseStopwords))
	copy(out, baseStopwords)
	return out
}
