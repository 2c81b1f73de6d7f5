package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultDefinition is shown for terms that carry no definition of their own,
// such as legacy bare-word entries.
const DefaultDefinition = "A key term used in the Australian citizenship test."

// Term is one glossary item. It is either a LegacyWord or an Entry;
// callers switch on the concrete type.
type Term interface {
	// Headword returns the canonical display form of the term.
	Headword() string
	isTerm()
}

// LegacyWord is a bare word stored by older pipeline runs, without a
// definition or translations.
type LegacyWord string

func (w LegacyWord) Headword() string { return string(w) }
func (LegacyWord) isTerm()            {}

// Entry is a fully enriched glossary term.
// Translations is keyed by language code (e.g. "zh-CN").
type Entry struct {
	Word         string            `json:"word"`
	Definition   string            `json:"definition"`
	Translations map[string]string `json:"translations,omitempty"`
}

func (e Entry) Headword() string { return e.Word }
func (Entry) isTerm()            {}

// Translation returns the translation for lang, or nil when absent.
func (e Entry) Translation(lang string) *string {
	tr, ok := e.Translations[lang]
	if !ok || tr == "" {
		return nil
	}
	return &tr
}

// TermKey returns the case-insensitive lookup key of a term.
func TermKey(t Term) string {
	return NormalizeText(t.Headword())
}

// NormalizeTerm converts any term to an Entry. Legacy words get the default
// definition and no translations; entries with a blank definition get the
// default definition as well.
func NormalizeTerm(t Term) Entry {
	switch v := t.(type) {
	case Entry:
		if v.Definition == "" {
			v.Definition = DefaultDefinition
		}
		return v
	case LegacyWord:
		return Entry{Word: string(v), Definition: DefaultDefinition}
	default:
		return Entry{Word: t.Headword(), Definition: DefaultDefinition}
	}
}

// Glossary is the ordered collection of terms. No two terms share a
// case-insensitive headword.
type Glossary []Term

// Words returns the set of normalized headwords.
func (g Glossary) Words() map[string]bool {
	words := make(map[string]bool, len(g))
	for _, t := range g {
		words[TermKey(t)] = true
	}
	return words
}

// Entries returns every term normalized to an Entry, in glossary order.
func (g Glossary) Entries() []Entry {
	entries := make([]Entry, len(g))
	for i, t := range g {
		entries[i] = NormalizeTerm(t)
	}
	return entries
}

// Clone returns a shallow copy of the glossary slice.
func (g Glossary) Clone() Glossary {
	out := make(Glossary, len(g))
	copy(out, g)
	return out
}

// MarshalJSON encodes the glossary as a mixed array of strings and objects.
func (g Glossary) MarshalJSON() ([]byte, error) {
	items := make([]any, len(g))
	for i, t := range g {
		switch v := t.(type) {
		case LegacyWord:
			items[i] = string(v)
		case Entry:
			items[i] = v
		default:
			return nil, fmt.Errorf("glossary: unsupported term type %T at %d", t, i)
		}
	}
	return json.Marshal(items)
}

// UnmarshalJSON decodes a mixed array of bare strings and entry objects.
// Items with a blank word are dropped.
func (g *Glossary) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("glossary: %w", err)
	}

	out := make(Glossary, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '"':
			var w string
			if err := json.Unmarshal(item, &w); err != nil {
				return fmt.Errorf("glossary: item %d: %w", i, err)
			}
			if strings.TrimSpace(w) == "" {
				continue
			}
			out = append(out, LegacyWord(w))
		case '{':
			var e Entry
			if err := json.Unmarshal(item, &e); err != nil {
				return fmt.Errorf("glossary: item %d: %w", i, err)
			}
			if strings.TrimSpace(e.Word) == "" {
				continue
			}
			out = append(out, e)
		default:
			return fmt.Errorf("glossary: item %d: expected string or object", i)
		}
	}

	*g = out
	return nil
}
