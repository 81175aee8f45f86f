package gtfparse

import (
	"bufio"
	"io"

	"github.com/openvax/gtfparse/internal/fsutil"
	"github.com/openvax/gtfparse/internal/scan"
	"github.com/openvax/gtfparse/table"
)

// WriteGTF serializes t as GTF text to w.
//
// Header lines are written verbatim, one per line, before any record;
// no "#" prefix is added, so callers pass already-formed comment
// lines. Each record writes the eight fixed columns tab-separated,
// substituting "." for null cells, then one reconstructed attribute
// field: every non-fixed column with a populated cell emits
// `key "value"`, joined with "; ". Round trips are semantic, not
// byte-exact: numeric formatting and key order may differ from the
// source file, but re-parsing yields equal values for every populated
// cell.
func WriteGTF(w io.Writer, t *table.Table, headers []string, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	for _, h := range headers {
		if _, err := bw.WriteString(h); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	// Fixed columns may be absent when the table was built with
	// usecols; their cells are written as ".".
	fixed := make([]table.Column, len(scan.FixedColumns))
	for i, name := range scan.FixedColumns {
		fixed[i], _ = t.Column(name)
	}

	// A table parsed without attribute expansion still carries the
	// raw attribute column; write it back verbatim in that case.
	rawAttr, hasRawAttr := t.Column("attribute")

	type attrColumn struct {
		name string
		col  table.Column
	}
	var attrs []attrColumn
	for i := 0; i < t.NumColumns(); i++ {
		name, col := t.ColumnAt(i)
		if !isFixedColumn(name) && name != "attribute" {
			attrs = append(attrs, attrColumn{name: name, col: col})
		}
	}

	n := t.NumRows()
	for row := 0; row < n; row++ {
		for i, col := range fixed {
			if i > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			cell := "."
			if col != nil {
				if s, ok := col.Cell(row); ok {
					cell = s
				}
			}
			if _, err := bw.WriteString(cell); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\t'); err != nil {
			return err
		}
		if hasRawAttr {
			s, _ := rawAttr.Cell(row)
			if _, err := bw.WriteString(s); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}
		first := true
		for _, ac := range attrs {
			s, ok := ac.col.Cell(row)
			if !ok {
				continue
			}
			if !first {
				if _, err := bw.WriteString("; "); err != nil {
					return err
				}
			}
			first = false
			if _, err := bw.WriteString(ac.name); err != nil {
				return err
			}
			if _, err := bw.WriteString(` "`); err != nil {
				return err
			}
			if _, err := bw.WriteString(s); err != nil {
				return err
			}
			if err := bw.WriteByte('"'); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	err := bw.Flush()
	o.logger.LogWrite(n, err)
	return err
}

// WriteGTFFile serializes t to the file at path, compressing with
// gzip or zstd when the filename suffix asks for it.
func WriteGTFFile(path string, t *table.Table, headers []string, opts ...Option) error {
	w, err := fsutil.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGTF(w, t, headers, opts...); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
