package enricher

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// strictArray matches the widest "[ { ... } ]" span in a reply.
var strictArray = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)

// Parsed is the term list recovered from one enrichment reply.
type Parsed struct {
	Terms   []domain.RawTerm
	Skipped int // array elements that were not term objects
	Lenient bool
}

// Parse extracts term records from a free-form enrichment reply.
//
// The strict pass decodes the first array-of-objects span. When that is
// missing or does not decode, the lenient pass decodes everything between
// the first '[' and the last ']'. Elements are decoded one by one so a
// single bad record does not lose the batch. When neither pass yields an
// array the error wraps domain.ErrMalformedResponse.
func Parse(reply string) (Parsed, error) {
	text := stripFences(reply)

	if items, ok := parseStrict(text); ok {
		return decodeTerms(items, false), nil
	}
	if items, ok := parseLenient(text); ok {
		return decodeTerms(items, true), nil
	}
	return Parsed{}, fmt.Errorf("enricher.Parse: %w: %s", domain.ErrMalformedResponse, truncate(reply, 200))
}

func parseStrict(text string) ([]json.RawMessage, bool) {
	span := strictArray.FindString(text)
	if span == "" {
		return nil, false
	}
	return decodeArray(span)
}

func parseLenient(text string) ([]json.RawMessage, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, false
	}
	return decodeArray(text[start : end+1])
}

func decodeArray(span string) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeTerms(items []json.RawMessage, lenient bool) Parsed {
	p := Parsed{Terms: make([]domain.RawTerm, 0, len(items)), Lenient: lenient}
	for _, item := range items {
		var t domain.RawTerm
		if err := json.Unmarshal(item, &t); err != nil {
			p.Skipped++
			continue
		}
		p.Terms = append(p.Terms, t)
	}
	return p
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	cleaned := strings.TrimSpace(s)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	lines := strings.Split(cleaned, "\n")
	start, end := 0, len(lines)
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if start == 0 {
				start = i + 1
			} else {
				end = i
				break
			}
		}
	}
	if start > 0 && end > start {
		cleaned = strings.Join(lines[start:end], "\n")
	}
	return strings.TrimSpace(cleaned)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
