package glossary

import "github.com/heartmarshall/citizenship-glossary/internal/domain"

// MergeStats describes what a merge did with the incoming terms.
type MergeStats struct {
	Appended  int // new words added at the end
	Upgraded  int // legacy words replaced in place by a full entry
	Discarded int // words that already had a full entry
	Dropped   int // records without a word
}

// Added is the number of glossary positions that changed.
func (s MergeStats) Added() int {
	return s.Appended + s.Upgraded
}

// Merge folds incoming records into existing and returns the new glossary.
// existing is not modified.
//
// Words are compared case-insensitively. An unknown word is appended. A word
// held as a LegacyWord is replaced in place by the incoming entry. A word that
// already has an Entry keeps it and the incoming record is discarded.
// Records without a word are dropped. Merging the same records twice changes
// nothing the second time.
func Merge(existing domain.Glossary, incoming []domain.RawTerm) (domain.Glossary, MergeStats) {
	var stats MergeStats
	out := existing.Clone()

	index := make(map[string]int, len(out))
	for i, t := range out {
		key := domain.TermKey(t)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	for _, raw := range incoming {
		entry, ok := raw.Entry()
		if !ok {
			stats.Dropped++
			continue
		}
		key := domain.NormalizeText(entry.Word)

		i, found := index[key]
		if !found {
			index[key] = len(out)
			out = append(out, entry)
			stats.Appended++
			continue
		}

		switch out[i].(type) {
		case domain.LegacyWord:
			out[i] = entry
			stats.Upgraded++
		case domain.Entry:
			stats.Discarded++
		}
	}

	return out, stats
}
