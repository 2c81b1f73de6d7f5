package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func TestBuildCandidatePrompt(t *testing.T) {
	t.Parallel()

	got := buildCandidatePrompt([]string{"referendum", "Senate"}, []string{"fr", "zh-CN"})

	assert.Contains(t, got, "LANGUAGE CODES: fr, zh-CN")
	assert.Contains(t, got, "- referendum\n- Senate\n")
	assert.Contains(t, got, `"translations"`)
	assert.Contains(t, got, "Return [] when no term qualifies.")
}

func TestBuildQuestionPrompt(t *testing.T) {
	t.Parallel()

	got := buildQuestionPrompt([]domain.Question{
		{ID: "1", Text: " What is a referendum? ", Options: []string{"A vote", "A tax"}},
		{ID: "2", Text: "Who is the head of state?"},
	}, nil)

	assert.Contains(t, got, "1. What is a referendum?\n   - A vote\n   - A tax\n")
	assert.Contains(t, got, "2. Who is the head of state?\n")
	assert.Contains(t, got, "LANGUAGE CODES: none")
}
