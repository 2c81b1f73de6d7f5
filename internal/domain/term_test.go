package domain

import (
	"strings"
	"testing"
)

func TestQuestion_Key(t *testing.T) {
	t.Parallel()

	withID := Question{ID: " 12 ", Text: "What is a referendum?"}
	if got := withID.Key(); got != "12" {
		t.Fatalf("Key() = %q, want %q", got, "12")
	}

	a := Question{Text: "What is a referendum?"}
	b := Question{Text: "  what is a   REFERENDUM? "}
	c := Question{Text: "Who is the head of state?"}

	if !strings.HasPrefix(a.Key(), "q:") {
		t.Fatalf("Key() = %q, want q: prefix", a.Key())
	}
	if a.Key() != b.Key() {
		t.Errorf("normalized texts should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("different texts share key %q", a.Key())
	}
}
