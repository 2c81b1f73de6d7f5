package jsonfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadLanguages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "languages.json")
	writeFile(t, path, `["fr", {"code": "zh-CN", "name": "Chinese (Simplified)"}, " ", {"name": "no code"}]`)

	got, err := LoadLanguages(path)

	require.NoError(t, err)
	assert.Equal(t, []domain.Language{
		{Code: "fr"},
		{Code: "zh-CN", Name: "Chinese (Simplified)"},
	}, got)
}

func TestLoadLanguages_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadLanguages(filepath.Join(t.TempDir(), "languages.json"))

	assert.ErrorIs(t, err, domain.ErrMissingResource)
}

func TestLoadQuestions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := filepath.Join(dir, "bare.json")
	writeFile(t, bare, `[{"id": 1, "question": "What is a referendum?", "options": ["A vote", "A law"]}, {"id": "q2", "question": "Who is the head of state?"}]`)
	wrapped := filepath.Join(dir, "wrapped.json")
	writeFile(t, wrapped, `{"questions": [{"id": 7, "question": "What does the Senate do?"}]}`)

	got, err := LoadQuestions(bare)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ItemID("1"), got[0].ID)
	assert.Equal(t, []string{"A vote", "A law"}, got[0].Options)
	assert.Equal(t, domain.ItemID("q2"), got[1].ID)

	got, err = LoadQuestions(wrapped)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "What does the Senate do?", got[0].Text)
}

func TestLoadQuestions_BlankIDsGetTextKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "questions.json")
	writeFile(t, path, `[{"question": "What is a referendum?"}, {"id": "", "question": "Who is the head of state?"}, {"id": " 9 ", "question": "x"}]`)

	got, err := LoadQuestions(path)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, strings.HasPrefix(string(got[0].ID), "q:"))
	assert.True(t, strings.HasPrefix(string(got[1].ID), "q:"))
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, domain.ItemID("9"), got[2].ID)

	again, err := LoadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, got[0].ID, again[0].ID)
}

func TestLoadQuestions_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadQuestions(filepath.Join(t.TempDir(), "questions.json"))

	assert.ErrorIs(t, err, domain.ErrMissingResource)
}

func TestLoadDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "second")
	writeFile(t, filepath.Join(dir, "a", "guide.MD"), "first")
	writeFile(t, filepath.Join(dir, "image.png"), "skip")

	got, err := LoadDocuments(dir, []string{".txt", ".md"})

	require.NoError(t, err)
	assert.Equal(t, []domain.Document{
		{Path: "a/guide.MD", Text: "first"},
		{Path: "b.txt", Text: "second"},
	}, got)
}

func TestLoadDocuments_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := LoadDocuments(filepath.Join(t.TempDir(), "nope"), []string{".txt"})

	assert.ErrorIs(t, err, domain.ErrMissingResource)
}
