package glossary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func TestMerge_AppendsUnknownWords(t *testing.T) {
	t.Parallel()

	existing := domain.Glossary{domain.Entry{Word: "Vote", Definition: "To choose."}}
	got, stats := Merge(existing, []domain.RawTerm{
		{Word: "Referendum", Definition: "A vote on a law.", Translations: map[string]string{"fr": "Référendum"}},
	})

	require.Len(t, got, 2)
	assert.Equal(t, 1, stats.Appended)
	assert.Equal(t, 1, stats.Added())
	assert.Equal(t, "Referendum", got[1].Headword())
	assert.Len(t, existing, 1, "existing glossary must not change")
}

func TestMerge_UpgradesLegacyInPlace(t *testing.T) {
	t.Parallel()

	existing := domain.Glossary{
		domain.LegacyWord("constitution"),
		domain.LegacyWord("Senate"),
	}
	got, stats := Merge(existing, []domain.RawTerm{
		{Word: "Constitution", Definition: "The founding law."},
	})

	require.Len(t, got, 2)
	assert.Equal(t, 1, stats.Upgraded)
	assert.Equal(t, 1, stats.Added())
	e, ok := got[0].(domain.Entry)
	require.True(t, ok, "legacy word should be replaced by an entry")
	assert.Equal(t, "Constitution", e.Word)
	assert.Equal(t, domain.LegacyWord("Senate"), got[1])
	assert.Equal(t, domain.LegacyWord("constitution"), existing[0])
}

func TestMerge_FirstStructuredEntryWins(t *testing.T) {
	t.Parallel()

	existing := domain.Glossary{domain.Entry{Word: "Vote", Definition: "original"}}
	got, stats := Merge(existing, []domain.RawTerm{
		{Word: "VOTE", Definition: "replacement"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, 1, stats.Discarded)
	assert.Equal(t, 0, stats.Added())
	assert.Equal(t, "original", got[0].(domain.Entry).Definition)
}

func TestMerge_DropsRecordsWithoutWord(t *testing.T) {
	t.Parallel()

	got, stats := Merge(nil, []domain.RawTerm{
		{Definition: "orphan"},
		{Word: "   ", Definition: "blank"},
		{Word: "Anzac", Definition: "A soldier."},
	})

	require.Len(t, got, 1)
	assert.Equal(t, 2, stats.Dropped)
	assert.Equal(t, 1, stats.Appended)
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	existing := domain.Glossary{domain.LegacyWord("Crown"), domain.Entry{Word: "Vote"}}
	terms := []domain.RawTerm{
		{Word: "crown", Definition: "The monarch."},
		{Word: "Governor-General", Definition: "The King's representative."},
		{Word: "vote", Definition: "ignored"},
	}

	once, first := Merge(existing, terms)
	twice, second := Merge(once, terms)

	assert.Equal(t, 2, first.Added())
	assert.Equal(t, 0, second.Added())
	assert.Equal(t, once, twice)
}

func TestMerge_NoCaseInsensitiveDuplicates(t *testing.T) {
	t.Parallel()

	var g domain.Glossary
	inputs := [][]domain.RawTerm{
		{{Word: "Democracy"}, {Word: "democracy"}, {Word: "DEMOCRACY "}},
		{{Word: "Rule of Law"}, {Word: "rule of law"}},
		{{Word: "democracy"}, {Word: "Parliament"}},
	}
	for i, terms := range inputs {
		g, _ = Merge(g, terms)

		seen := make(map[string]bool)
		for _, term := range g {
			key := domain.TermKey(term)
			assert.False(t, seen[key], fmt.Sprintf("round %d: duplicate %q", i, key))
			seen[key] = true
		}
	}
	assert.Len(t, g, 3)
}
