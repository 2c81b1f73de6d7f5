package textchunk

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tmc/langchaingo/textsplitter"
)

// Strategy names a chunking strategy.
type Strategy string

const (
	// StrategyFixed cuts text into exact fixed-size character windows.
	StrategyFixed Strategy = "fixed"
	// StrategyRecursive prefers paragraph, line and sentence boundaries.
	// Whitespace at chunk edges may be dropped, so chunks do not always
	// concatenate back to the input.
	StrategyRecursive Strategy = "recursive"
)

// Splitter produces the chunks of one document.
type Splitter func(text string) (iter.Seq[string], error)

// NewSplitter returns the splitter for strategy with chunks of at most max
// characters.
func NewSplitter(strategy Strategy, max int) (Splitter, error) {
	switch strategy {
	case StrategyFixed, "":
		return func(text string) (iter.Seq[string], error) {
			return Split(text, max), nil
		}, nil
	case StrategyRecursive:
		if max <= 0 {
			return nil, fmt.Errorf("textchunk: recursive strategy needs a positive chunk size")
		}
		splitter := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(max),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ".", "!", "?", " ", ""}),
			textsplitter.WithKeepSeparator(true),
		)
		return func(text string) (iter.Seq[string], error) {
			if text == "" {
				return slices.Values([]string(nil)), nil
			}
			chunks, err := splitter.SplitText(text)
			if err != nil {
				return nil, fmt.Errorf("textchunk: split: %w", err)
			}
			return slices.Values(chunks), nil
		}, nil
	default:
		return nil, fmt.Errorf("textchunk: unknown strategy %q", strategy)
	}
}
