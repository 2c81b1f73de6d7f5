package matcher

import "github.com/heartmarshall/citizenship-glossary/internal/domain"

// DefaultFallbackLimit caps the number of fallback matches.
const DefaultFallbackLimit = 100

// fallbackTerms is the built-in table used when no glossary is available.
var fallbackTerms = []domain.Entry{
	{Word: "citizenship", Definition: "The legal status of being a member of a country, with its rights and responsibilities."},
	{Word: "democracy", Definition: "A system of government in which people choose their representatives by voting."},
	{Word: "parliament", Definition: "The group of elected representatives that makes and changes the laws of the country."},
	{Word: "constitution", Definition: "The set of basic rules by which a country is governed."},
	{Word: "referendum", Definition: "A vote by the people to approve or reject a change to the Constitution."},
	{Word: "rule of law", Definition: "The principle that all people must obey the law, including those in power."},
	{Word: "election", Definition: "The process of choosing representatives by voting."},
}

// FallbackEntries returns a copy of the built-in fallback table.
func FallbackEntries() []domain.Entry {
	out := make([]domain.Entry, len(fallbackTerms))
	copy(out, fallbackTerms)
	return out
}

// MatchFallback runs the same matching rules as Match against the built-in
// fallback table, returning at most limit matches. A limit <= 0 means
// DefaultFallbackLimit.
func MatchFallback(text, lang string, limit int) []domain.Match {
	if limit <= 0 {
		limit = DefaultFallbackLimit
	}
	return matchEntries(text, fallbackTerms, lang, limit)
}
