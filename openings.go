// Package openings reads a log of beehive opening events and answers
// whether timestamps fall inside a period during which a hive was opened
// for inspection, plus a recovery window afterward during which sensor
// readings are considered unreliable. Downstream analysis uses it to drop
// contaminated measurement windows.
//
// The log is parsed once into an immutable Table; every query is a pure
// read against it. A Table is safe for concurrent readers.
package openings

import (
	"sort"
	"time"
)

// Opening is one hive opening after hive-list expansion. A log line that
// names several hives (a token like "h12") expands into one Opening per
// digit, all sharing the same window and comment.
type Opening struct {
	Start   time.Time
	End     time.Time
	Hive    int
	Comment string // empty when the line carried no comment
}

// Table is the in-memory openings table. It is built once by a Loader and
// never mutated afterward.
type Table struct {
	records []Opening
}

// NewTable builds a Table directly from records. Most callers should use a
// Loader instead; this exists for tests and for embedders that already
// have records in hand.
func NewTable(records []Opening) *Table {
	cp := make([]Opening, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the table contents, in no particular order.
func (t *Table) Records() []Opening {
	cp := make([]Opening, len(t.records))
	copy(cp, t.records)
	return cp
}

// Hives returns the distinct hive numbers present in the table, ascending.
func (t *Table) Hives() []int {
	seen := map[int]bool{}
	for _, r := range t.records {
		seen[r.Hive] = true
	}
	hives := make([]int, 0, len(seen))
	for h := range seen {
		hives = append(hives, h)
	}
	sort.Ints(hives)
	return hives
}

func (t *Table) forHive(hive int) []Opening {
	var out []Opening
	for _, r := range t.records {
		if r.Hive == hive {
			out = append(out, r)
		}
	}
	return out
}

// merge combines two tables into a new one.
func merge(a, b *Table) *Table {
	records := make([]Opening, 0, len(a.records)+len(b.records))
	records = append(records, a.records...)
	records = append(records, b.records...)
	return &Table{records: records}
}
