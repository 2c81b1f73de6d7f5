package domain

import (
	"strings"

	"github.com/google/uuid"
)

// RawTerm is one record parsed out of an enrichment reply. It is not yet
// validated: Word may be empty.
type RawTerm struct {
	Word         string            `json:"word"`
	Definition   string            `json:"definition"`
	Translations map[string]string `json:"translations"`
}

// Entry converts the record to a glossary entry, trimming the word.
// ok is false when the record has no word.
func (r RawTerm) Entry() (Entry, bool) {
	word := strings.TrimSpace(r.Word)
	if word == "" {
		return Entry{}, false
	}
	return Entry{
		Word:         word,
		Definition:   strings.TrimSpace(r.Definition),
		Translations: r.Translations,
	}, true
}

// Match is one glossary term detected in a piece of text.
type Match struct {
	Term        string  `json:"term"`
	Explanation string  `json:"explanation"`
	Translation *string `json:"translation"`
}

// Question is one item of the upstream quiz question bank.
type Question struct {
	ID      ItemID   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options,omitempty"`
}

var questionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("citizenship-glossary/question"))

// Key returns the ledger id of q: its trimmed ID, or for questions without
// one a name-based UUID of the normalized text prefixed with "q:". The
// derived key is stable across runs as long as the text is unchanged.
func (q Question) Key() string {
	if id := strings.TrimSpace(string(q.ID)); id != "" {
		return id
	}
	return "q:" + uuid.NewSHA1(questionNamespace, []byte(NormalizeText(q.Text))).String()
}

// Language is an entry of the supported-language registry.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageCodes returns the codes of langs in order.
func LanguageCodes(langs []Language) []string {
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		if l.Code != "" {
			codes = append(codes, l.Code)
		}
	}
	return codes
}

// Document is a source text read by the documents pipeline.
// Path is relative to the source directory and stable across runs.
type Document struct {
	Path string
	Text string
}
