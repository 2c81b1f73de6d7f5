package matcher

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
	"github.com/heartmarshall/citizenship-glossary/internal/inflect"
)

// minTokenLength is the shortest text token considered for matching.
const minTokenLength = 3

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Match returns the glossary terms that occur in text, in glossary order.
// A term matches when its word, its singular, or the plural of its singular
// is one of the text's token forms, or, for multi-word terms, when the term
// appears in the text as a substring (case-insensitive).
//
// A term is never emitted twice, and a term is skipped when it is an
// inflection of an already emitted term that shares one of its forms.
// Legacy words get the default definition; a missing translation for lang
// yields a nil Translation.
func Match(text string, g domain.Glossary, lang string) []domain.Match {
	return matchEntries(text, g.Entries(), lang, 0)
}

func matchEntries(text string, entries []domain.Entry, lang string, limit int) []domain.Match {
	forms := textForms(text)
	lowerText := strings.ToLower(text)

	matches := make([]domain.Match, 0)
	var emitted []termForms

	for _, e := range entries {
		if limit > 0 && len(matches) >= limit {
			break
		}

		word := domain.NormalizeText(e.Word)
		if word == "" {
			continue
		}
		_, singular, plural := inflect.Forms(word)
		tf := termForms{word: word, singular: singular, plural: plural}
		if variantOfAny(tf, emitted) {
			continue
		}

		if !termMatches(word, singular, plural, forms, lowerText) {
			continue
		}
		emitted = append(emitted, tf)

		explanation := e.Definition
		if explanation == "" {
			explanation = domain.DefaultDefinition
		}
		matches = append(matches, domain.Match{
			Term:        e.Word,
			Explanation: explanation,
			Translation: e.Translation(lang),
		})
	}
	return matches
}

// termForms are the lowercase word of an entry with its derived forms.
type termForms struct {
	word, singular, plural string
}

func (f termForms) has(form string) bool {
	return form == f.word || form == f.singular || form == f.plural
}

// variantOfAny reports whether tf shares a form with an emitted term and one
// word is an inflection of the other. Unrelated terms whose derived forms
// happen to collide are not suppressed.
func variantOfAny(tf termForms, emitted []termForms) bool {
	for _, e := range emitted {
		if !e.has(tf.word) && !e.has(tf.singular) && !e.has(tf.plural) {
			continue
		}
		if inflectionOf(tf.word, e.word) || inflectionOf(e.word, tf.word) {
			return true
		}
	}
	return false
}

func inflectionOf(a, b string) bool {
	return a == b || a == inflect.Plural(b) || a == inflect.Singular(b)
}

func termMatches(word, singular, plural string, forms map[string]struct{}, lowerText string) bool {
	if _, ok := forms[word]; ok {
		return true
	}
	if singular != word {
		if _, ok := forms[singular]; ok {
			return true
		}
	}
	if plural != word {
		if _, ok := forms[plural]; ok {
			return true
		}
	}
	return strings.Contains(word, " ") && strings.Contains(lowerText, word)
}

// textForms returns every token of text together with its singular and
// plural forms. Tokens shorter than minTokenLength are ignored.
func textForms(text string) map[string]struct{} {
	forms := make(map[string]struct{})
	for _, field := range strings.Fields(text) {
		token := strings.ToLower(nonWord.ReplaceAllString(field, ""))
		if len(token) < minTokenLength {
			continue
		}
		forms[token] = struct{}{}
		forms[inflect.Singular(token)] = struct{}{}
		forms[inflect.Plural(token)] = struct{}{}
	}
	return forms
}
