// Package inflect provides a small English singular/plural heuristic used for
// keyword matching. It is not a morphological analyzer: irregular nouns such
// as "child"/"children" are not handled.
package inflect

import "strings"

// Singular returns a best-effort singular form of word. Rules are tried in
// order and the first match wins; word is returned unchanged when none apply.
func Singular(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case hasAnySuffix(word, "sses", "ses", "xes", "ches", "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "es"):
		return word[:len(word)-1]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// Plural returns a best-effort plural form of word.
func Plural(word string) string {
	if word == "" {
		return word
	}
	switch {
	case strings.HasSuffix(word, "y") && !precededByVowel(word):
		return word[:len(word)-1] + "ies"
	case hasAnySuffix(word, "s", "x", "ch", "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// Forms returns word, its singular, and the plural of that singular.
func Forms(word string) (w, singular, plural string) {
	singular = Singular(word)
	return word, singular, Plural(singular)
}

func hasAnySuffix(word string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}

// precededByVowel reports whether the letter before the trailing "y" is one
// of a, e, o, u. "i" is not treated as a vowel here.
func precededByVowel(word string) bool {
	if len(word) < 2 {
		return false
	}
	switch word[len(word)-2] {
	case 'a', 'e', 'o', 'u', 'A', 'E', 'O', 'U':
		return true
	}
	return false
}
