package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func terms(matches []domain.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Term
	}
	return out
}

func TestMatch_ReferendumWithTranslation(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{
		Word:         "Referendum",
		Definition:   "A vote by the people on a proposed law.",
		Translations: map[string]string{"fr": "Référendum"},
	}}

	got := Match("They held a referendum last year", g, "fr")

	require.Len(t, got, 1)
	assert.Equal(t, "Referendum", got[0].Term)
	assert.Equal(t, "A vote by the people on a proposed law.", got[0].Explanation)
	require.NotNil(t, got[0].Translation)
	assert.Equal(t, "Référendum", *got[0].Translation)
}

func TestMatch_MissingTranslationIsNil(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{Word: "Referendum", Definition: "x", Translations: map[string]string{"fr": "Référendum"}}}

	got := Match("a referendum", g, "zh-CN")

	require.Len(t, got, 1)
	assert.Nil(t, got[0].Translation)
}

func TestMatch_SingularAndPluralEmittedOnce(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{Word: "community", Definition: "A group of people."}}

	got := Match("Each community helps other communities, and the community grows.", g, "")

	assert.Equal(t, []string{"community"}, terms(got))
}

func TestMatch_PluralEntryMatchesSingularText(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{Word: "Communities", Definition: "Groups."}}

	got := Match("a local community", g, "")

	assert.Equal(t, []string{"Communities"}, terms(got))
}

func TestMatch_SingularEntryMatchesPluralText(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{Word: "Church", Definition: "A place of worship."}}

	got := Match("Many churches were built.", g, "")

	assert.Equal(t, []string{"Church"}, terms(got))
}

func TestMatch_MultiWordSubstring(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{
		domain.Entry{Word: "Rule of Law", Definition: "Everyone obeys the law."},
		domain.Entry{Word: "High Court", Definition: "The highest court."},
	}

	got := Match("Australia values the rule of law.", g, "")

	assert.Equal(t, []string{"Rule of Law"}, terms(got))
}

func TestMatch_LegacyWordGetsDefaults(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.LegacyWord("Parliament")}

	got := Match("Both parliaments sat today", g, "fr")

	require.Len(t, got, 1)
	assert.Equal(t, "Parliament", got[0].Term)
	assert.Equal(t, domain.DefaultDefinition, got[0].Explanation)
	assert.Nil(t, got[0].Translation)
}

func TestMatch_FollowsGlossaryOrder(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{
		domain.Entry{Word: "vote", Definition: "v"},
		domain.Entry{Word: "election", Definition: "e"},
		domain.Entry{Word: "senate", Definition: "s"},
	}

	got := Match("After the election we vote for the Senate.", g, "")

	assert.Equal(t, []string{"vote", "election", "senate"}, terms(got))
}

func TestMatch_IgnoresShortTokensAndPunctuation(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{
		domain.Entry{Word: "UN", Definition: "United Nations"},
		domain.Entry{Word: "Anzac", Definition: "A soldier."},
	}

	got := Match(`UN members honour "ANZAC!" day`, g, "")

	assert.Equal(t, []string{"Anzac"}, terms(got))
}

func TestMatch_NoMatches(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{domain.Entry{Word: "Referendum"}}

	got := Match("Nothing relevant here", g, "")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatch_VariantEntriesShareOneResult(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{
		domain.Entry{Word: "community", Definition: "one"},
		domain.Entry{Word: "communities", Definition: "many"},
	}

	got := Match("communities", g, "")

	assert.Equal(t, []string{"community"}, terms(got))
}

func TestMatch_InflectedVariantPairsShareOneResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		first string
		other string
		text  string
	}{
		{name: "clause", first: "clause", other: "clauses", text: "the clauses of the clause"},
		{name: "bus", first: "bus", other: "buses", text: "Two buses were late."},
		{name: "license", first: "license", other: "licenses", text: "Drivers need licenses."},
		{name: "premise", first: "premise", other: "premises", text: "The premises were inspected."},
		{name: "plural listed first", first: "communities", other: "community", text: "community groups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := domain.Glossary{
				domain.Entry{Word: tt.first, Definition: "first"},
				domain.Entry{Word: tt.other, Definition: "other"},
			}

			got := Match(tt.text, g, "")

			assert.Equal(t, []string{tt.first}, terms(got))
		})
	}
}

func TestMatch_DistinctEntriesSharingATokenBothMatch(t *testing.T) {
	t.Parallel()

	g := domain.Glossary{
		domain.Entry{Word: "vote", Definition: "To choose in an election."},
		domain.Entry{Word: "voter", Definition: "A person who votes."},
		domain.Entry{Word: "rule", Definition: "A principle."},
		domain.Entry{Word: "rule of law", Definition: "Everyone obeys the law."},
	}

	got := Match("Every voter must vote under the rule of law.", g, "")

	assert.Equal(t, []string{"vote", "voter", "rule", "rule of law"}, terms(got))
}

func TestMatchFallback(t *testing.T) {
	t.Parallel()

	got := MatchFallback("Australia is a democracy. Elections choose the Parliament.", "fr", 0)

	assert.Equal(t, []string{"democracy", "parliament", "election"}, terms(got))
	for _, m := range got {
		assert.Nil(t, m.Translation)
		assert.NotEmpty(t, m.Explanation)
	}
}

func TestMatchFallback_Limit(t *testing.T) {
	t.Parallel()

	got := MatchFallback("citizenship democracy parliament constitution", "", 2)

	assert.Equal(t, []string{"citizenship", "democracy"}, terms(got))
}

func TestFallbackEntries_ReturnsCopy(t *testing.T) {
	t.Parallel()

	entries := FallbackEntries()
	require.NotEmpty(t, entries)
	entries[0].Word = "changed"

	assert.NotEqual(t, "changed", FallbackEntries()[0].Word)
}
