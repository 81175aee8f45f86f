// Package table implements the columnar table produced by GTF parsing.
//
// A Table is an explicit ordered association from column name to a
// typed column: a name slice preserves order, a name→index map gives
// O(1) lookup. Fixed GTF columns come first, attribute columns follow
// in first-seen order. Every column has identical length.
package table

import "fmt"

// Converter maps a string cell to a typed value. Empty cells are
// mapped to null before conversion and never reach the converter.
type Converter func(string) (any, error)

// Table is the long-lived columnar result of a parse. It is owned by
// the caller once returned; it is not safe for concurrent mutation.
type Table struct {
	names   []string
	index   map[string]int
	columns []Column
}

// New creates an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a named column. It returns an error when the name
// is already present or the column length disagrees with the table.
func (t *Table) AddColumn(name string, col Column) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("table: duplicate column %q", name)
	}
	if len(t.columns) > 0 && col.Len() != t.NumRows() {
		return fmt.Errorf("table: column %q has %d rows, table has %d",
			name, col.Len(), t.NumRows())
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.columns = append(t.columns, col)
	return nil
}

// Names returns the column names in order. The slice is owned by the
// table; do not modify.
func (t *Table) Names() []string { return t.names }

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.columns) }

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// HasColumn reports whether name is a column of the table.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) (string, Column) {
	return t.names[i], t.columns[i]
}

// Strings returns the named column's backing string slice when the
// column is string-typed.
func (t *Table) Strings(name string) ([]string, bool) {
	col, ok := t.Column(name)
	if !ok {
		return nil, false
	}
	sc, ok := col.(*StringColumn)
	if !ok {
		return nil, false
	}
	return sc.Values, true
}

// Select returns a new table restricted to the requested columns, in
// the caller's requested order. Requested names absent from the table
// are silently dropped; no column is ever fabricated. Columns are
// shared, not copied.
func (t *Table) Select(names []string) *Table {
	out := New()
	for _, name := range names {
		if col, ok := t.Column(name); ok {
			_ = out.AddColumn(name, col)
		}
	}
	return out
}

// Convert replaces the named column with the converter's output.
// Null and empty-string cells map to null without calling fn. Columns
// absent from the table are ignored.
func (t *Table) Convert(name string, fn Converter) error {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	src := t.columns[i]
	out := &GenericColumn{Values: make([]any, 0, src.Len())}
	for row := 0; row < src.Len(); row++ {
		cell, populated := src.Cell(row)
		if !populated {
			out.AppendNull()
			continue
		}
		v, err := fn(cell)
		if err != nil {
			return fmt.Errorf("converting column %q row %d: %w", name, row, err)
		}
		_ = out.Append(v)
	}
	t.columns[i] = out
	return nil
}

// Rows returns a row-oriented view: one map per row, null cells
// omitted. This is an adapter for callers that want records rather
// than columns; the columnar Table remains the primary representation.
func (t *Table) Rows() []map[string]any {
	n := t.NumRows()
	rows := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(t.names))
		for c, name := range t.names {
			if v := t.columns[c].Value(i); v != nil {
				row[name] = v
			}
		}
		rows[i] = row
	}
	return rows
}
