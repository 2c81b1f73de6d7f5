// Package textchunk splits text into bounded, contiguous segments.
package textchunk

import "iter"

// Split yields contiguous, non-overlapping pieces of text of at most max
// characters (runes). The pieces concatenate back to text exactly. Words may
// be cut in the middle. When max <= 0 the whole text is yielded as one piece.
// Empty text yields nothing.
func Split(text string, max int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		if max <= 0 {
			yield(text)
			return
		}

		start, count := 0, 0
		for i := range text {
			if count == max {
				if !yield(text[start:i]) {
					return
				}
				start, count = i, 0
			}
			count++
		}
		yield(text[start:])
	}
}
