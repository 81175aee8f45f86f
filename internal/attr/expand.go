// Package attr expands raw GTF attribute strings into columns.
//
// The ninth GTF column is a loosely-specified blob of semicolon
// separated `key "value"` pairs: keys may be missing from some rows,
// repeated within one row, and values may contain spaces. Expansion
// turns the blob into one dense column per distinct key, aligned to
// the row count, with deterministic first-seen column ordering.
package attr

import (
	"strings"

	"github.com/openvax/gtfparse/internal/intern"
)

// DefaultQuoteChar is the quote character stripped from values.
const DefaultQuoteChar = '"'

// Options configures expansion.
type Options struct {
	// QuoteChar is removed from attribute values wherever it occurs.
	QuoteChar byte

	// MissingValue fills cells for rows that lack a key.
	MissingValue string

	// Retain, when non-nil, restricts which keys are materialized as
	// columns. Non-retained keys are still parsed but never stored;
	// retained-column alignment and order are unaffected.
	Retain map[string]struct{}

	// Interner deduplicates keys and values. A fresh one is created
	// when nil.
	Interner *intern.Interner
}

// Table is an ordered mapping from attribute key to a per-row value
// column. Order is first-occurrence order of keys across all rows
// scanned; every column has the same length.
//
// The ordering is explicit (key slice + key→index map) so that column
// order is deterministic and testable rather than an artifact of map
// iteration.
type Table struct {
	keys    []string
	index   map[string]int
	columns [][]string
}

// NewTable creates an empty attribute table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Keys returns the attribute keys in first-seen order.
// The returned slice is owned by the table; do not modify.
func (t *Table) Keys() []string { return t.keys }

// Column returns the value column for key.
func (t *Table) Column(key string) ([]string, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// register adds a new key backfilled with missing over n prior rows.
func (t *Table) register(key string, n int, missing string) []string {
	col := make([]string, n)
	if missing != "" {
		for i := range col {
			col[i] = missing
		}
	}
	t.index[key] = len(t.keys)
	t.keys = append(t.keys, key)
	t.columns = append(t.columns, col)
	return col
}

// Expand parses the (already repaired) raw attribute strings of all
// rows into an attribute Table with len(attrs) rows.
//
// Fragments shorter than three characters or lacking a space are
// silently dropped; this is documented leniency against trailing
// semicolons and empty fragments, not an error. A key repeated within
// one row joins its values with a comma, in order of appearance.
func Expand(attrs []string, o Options) *Table {
	if o.QuoteChar == 0 {
		o.QuoteChar = DefaultQuoteChar
	}
	in := o.Interner
	if in == nil {
		in = intern.New()
	}
	quote := string(o.QuoteChar)

	n := len(attrs)
	t := NewTable()

	// last[c] is the row index column c was last written at, -1 when
	// untouched. Cell content alone cannot distinguish a first value
	// that happens to equal the missing sentinel from an absent key.
	var last []int

	for i, attr := range attrs {
		for _, kv := range strings.Split(attr, ";") {
			// Minimal useful fragment is `k v`; anything shorter, or
			// without a space, is a trailing-semicolon artifact.
			if len(kv) <= 2 || !strings.Contains(kv, " ") {
				continue
			}
			kv = strings.TrimSpace(kv)
			key, value, ok := strings.Cut(kv, " ")
			if !ok || key == "" {
				continue
			}
			if o.Retain != nil {
				if _, keep := o.Retain[key]; !keep {
					continue
				}
			}

			key = in.Intern(key)
			col, exists := t.Column(key)
			if !exists {
				col = t.register(key, n, o.MissingValue)
				last = append(last, -1)
			}
			ci := t.index[key]

			if strings.Contains(value, quote) {
				value = strings.ReplaceAll(value, quote, "")
			}
			value = in.Intern(value)

			// Repeated key within one row: join with commas, e.g.
			// tag "cds_end_NF"; tag "mRNA_end_NF" -> "cds_end_NF,mRNA_end_NF".
			if last[ci] == i {
				col[i] = col[i] + "," + value
			} else {
				col[i] = value
				last[ci] = i
			}
		}
	}
	return t
}

// Merge concatenates per-chunk attribute tables into one table over
// all rows, in chunk order. The merged key set is the union over
// chunks, ordered by first appearance in original file order; a key
// absent from a chunk is backfilled with missing for that chunk's rows.
func Merge(tables []*Table, rows []int, missing string) *Table {
	total := 0
	for _, n := range rows {
		total += n
	}

	merged := NewTable()
	for _, t := range tables {
		for _, key := range t.keys {
			if _, ok := merged.index[key]; !ok {
				merged.register(key, total, missing)
			}
		}
	}

	offset := 0
	for ci, t := range tables {
		for _, key := range t.keys {
			src, _ := t.Column(key)
			dst, _ := merged.Column(key)
			copy(dst[offset:], src)
		}
		offset += rows[ci]
	}
	return merged
}
