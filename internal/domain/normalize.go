package domain

import "strings"

// NormalizeText is the case-insensitive key of a glossary word or question
// text: lowercased, with whitespace runs collapsed to single spaces.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
