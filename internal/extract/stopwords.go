package extract

// stopWords are common English function and content words that never make
// useful glossary candidates. Keys are lowercase.
var stopWords = toSet(
	"about", "above", "after", "again", "against", "also", "because", "been",
	"before", "being", "below", "between", "both", "could", "does", "doing",
	"down", "during", "each", "even", "every", "from", "further", "have",
	"having", "here", "hers", "herself", "himself", "into", "itself", "just",
	"like", "made", "make", "many", "more", "most", "much", "must", "myself",
	"never", "only", "other", "ours", "ourselves", "over", "same", "should",
	"some", "such", "than", "that", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "under",
	"until", "upon", "very", "were", "what", "when", "where", "which",
	"while", "whom", "whose", "will", "with", "within", "without", "would",
	"your", "yours", "yourself", "yourselves", "shall", "might", "following",
	"true", "false", "statement", "correct",
	"answer", "question", "people", "year", "years", "time", "well", "used",
	"known", "called", "part", "first", "last", "good", "another", "still",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether lower is in the stop-word set.
// lower must already be lowercase.
func IsStopWord(lower string) bool {
	_, ok := stopWords[lower]
	return ok
}
