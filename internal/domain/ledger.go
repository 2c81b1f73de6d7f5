package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Ledger records which upstream items (questions, document chunks) have
// already been run through the extraction pipeline.
type Ledger struct {
	ProcessedIDs []string  `json:"processedIds"`
	LastUpdated  time.Time `json:"lastUpdated"`

	index map[string]struct{}
}

// Has reports whether id was already processed.
func (l *Ledger) Has(id string) bool {
	l.ensureIndex()
	_, ok := l.index[id]
	return ok
}

// Add marks ids as processed and bumps LastUpdated. Already known ids are
// ignored. Returns the number of ids newly recorded.
func (l *Ledger) Add(now time.Time, ids ...string) int {
	l.ensureIndex()
	added := 0
	for _, id := range ids {
		if _, ok := l.index[id]; ok {
			continue
		}
		l.index[id] = struct{}{}
		l.ProcessedIDs = append(l.ProcessedIDs, id)
		added++
	}
	l.LastUpdated = now.UTC()
	return added
}

// Reset forgets every processed id.
func (l *Ledger) Reset(now time.Time) {
	l.ProcessedIDs = nil
	l.index = make(map[string]struct{})
	l.LastUpdated = now.UTC()
}

// Len returns the number of processed ids.
func (l *Ledger) Len() int {
	return len(l.ProcessedIDs)
}

func (l *Ledger) ensureIndex() {
	if l.index != nil {
		return
	}
	l.index = make(map[string]struct{}, len(l.ProcessedIDs))
	for _, id := range l.ProcessedIDs {
		l.index[id] = struct{}{}
	}
}

// UnmarshalJSON accepts processed ids written as strings or numbers.
// Blank and repeated ids are dropped.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProcessedIDs []ItemID `json:"processedIds"`
		LastUpdated  string   `json:"lastUpdated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	l.ProcessedIDs = make([]string, 0, len(raw.ProcessedIDs))
	l.index = make(map[string]struct{}, len(raw.ProcessedIDs))
	for _, id := range raw.ProcessedIDs {
		key := string(id)
		if key == "" {
			continue
		}
		if _, seen := l.index[key]; seen {
			continue
		}
		l.index[key] = struct{}{}
		l.ProcessedIDs = append(l.ProcessedIDs, key)
	}
	l.LastUpdated = time.Time{}
	if raw.LastUpdated != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw.LastUpdated)
		if err != nil {
			return fmt.Errorf("ledger: lastUpdated: %w", err)
		}
		l.LastUpdated = ts
	}
	return nil
}

// ItemID is an upstream item identifier. Question banks use both numeric and
// string ids, so both decode to the same string form.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ItemID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ItemID(n.String())
	return nil
}
