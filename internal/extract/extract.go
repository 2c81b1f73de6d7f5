// Package extract turns free text into glossary candidate terms.
package extract

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
)

// MinLength is the shortest token accepted as a candidate.
const MinLength = 4

var candidatePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z-]*$`)

// Candidates returns the candidate terms of text in order of first
// occurrence. known holds lowercase words that are already in the glossary;
// it is not modified.
//
// Tokens are kept when they are alphabetic (hyphens allowed), at least
// MinLength long, not stop words and not known. Surface-form duplicates are
// removed, then variants are collapsed: a token whose lowercase form is a
// prefix or suffix of an accepted form, or has one as a prefix or suffix, is
// dropped. The collapse is approximate and may merge unrelated words that
// share a prefix.
func Candidates(text string, known map[string]bool) []string {
	var out []string
	accepted := make(map[string]struct{})
	seen := make(map[string]struct{})

	for token := range Tokens(text) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}

		lower := strings.ToLower(token)
		if !keep(lower, known) || isVariant(lower, accepted) {
			continue
		}
		accepted[lower] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Tokens splits text on whitespace and trims surrounding punctuation from
// every token. Empty tokens are skipped.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, field := range strings.Fields(text) {
			token := strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r)
			})
			if token == "" {
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
}

func keep(lower string, known map[string]bool) bool {
	if len(lower) < MinLength || !candidatePattern.MatchString(lower) {
		return false
	}
	if IsStopWord(lower) {
		return false
	}
	return !known[lower]
}

func isVariant(lower string, accepted map[string]struct{}) bool {
	for form := range accepted {
		if strings.HasPrefix(form, lower) || strings.HasSuffix(form, lower) ||
			strings.HasPrefix(lower, form) || strings.HasSuffix(lower, form) {
			return true
		}
	}
	return false
}
