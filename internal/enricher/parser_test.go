package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func TestParse_CleanArray(t *testing.T) {
	t.Parallel()

	got, err := Parse(`[{"word":"Referendum","definition":"A vote on a proposal.","translations":{"fr":"Référendum"}}]`)

	require.NoError(t, err)
	require.Len(t, got.Terms, 1)
	assert.Equal(t, "Referendum", got.Terms[0].Word)
	assert.Equal(t, "Référendum", got.Terms[0].Translations["fr"])
	assert.False(t, got.Lenient)
}

func TestParse_BothTiersRecoverArrayInsideCommentary(t *testing.T) {
	t.Parallel()

	reply := "Sure! Here are the terms:\n" +
		`[{"word":"Constitution","definition":"The founding law."},{"word":"Senate","definition":"The upper house."}]` +
		"\nLet me know if you need more."

	strict, ok := parseStrict(reply)
	require.True(t, ok)
	lenient, ok := parseLenient(reply)
	require.True(t, ok)

	assert.Equal(t, decodeTerms(strict, false).Terms, decodeTerms(lenient, true).Terms)

	got, err := Parse(reply)
	require.NoError(t, err)
	require.Len(t, got.Terms, 2)
	assert.Equal(t, "Senate", got.Terms[1].Word)
}

func TestParse_MarkdownFence(t *testing.T) {
	t.Parallel()

	reply := "```json\n[{\"word\":\"Ballot\"}]\n```"

	got, err := Parse(reply)

	require.NoError(t, err)
	require.Len(t, got.Terms, 1)
	assert.Equal(t, "Ballot", got.Terms[0].Word)
}

func TestParse_LenientSkipsNonObjectElements(t *testing.T) {
	t.Parallel()

	got, err := Parse(`Terms: [ "referendum", {"word": "vote"}, 42 ]`)

	require.NoError(t, err)
	assert.True(t, got.Lenient)
	assert.Equal(t, 2, got.Skipped)
	require.Len(t, got.Terms, 1)
	assert.Equal(t, "vote", got.Terms[0].Word)
}

func TestParse_EmptyArray(t *testing.T) {
	t.Parallel()

	got, err := Parse("No terms qualify: []")

	require.NoError(t, err)
	assert.Empty(t, got.Terms)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"no brackets", "I could not find any terms."},
		{"broken json", `[{"word": "vote",}]`},
		{"two arrays", `[{"word":"a"}] and also [{"word":"b"}]`},
		{"reversed brackets", "] nothing ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.reply)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1]", stripFences("```\n[1]\n```"))
	assert.Equal(t, "[1]", stripFences("  [1]  "))
}
