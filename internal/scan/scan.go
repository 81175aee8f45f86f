// Package scan implements line-level tokenization of GTF records.
//
// A GTF record is nine tab-separated fields; the ninth is a free-form
// attribute blob that may itself contain tabs and semicolons and is
// not split here. Comment and blank lines are skipped. Anything else
// that does not produce exactly nine fields is a structural error for
// the whole file, not a single bad row.
package scan

import (
	"math"
	"strconv"
	"strings"

	"github.com/openvax/gtfparse/internal/intern"
)

// GTF column positions.
const (
	FieldSeqname = iota
	FieldSource
	FieldFeature
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldFrame
	FieldAttribute

	NumFields = 9
)

// FixedColumns are the eight fixed GTF column names, in file order.
// The raw attribute column is dropped after expansion.
var FixedColumns = []string{
	"seqname", "source", "feature", "start",
	"end", "score", "strand", "frame",
}

// Row is one tokenized GTF record. Rows are transient: the parser
// consumes them immediately into columnar storage.
type Row struct {
	Seqname string
	Source  string
	Feature string
	Start   int64
	End     int64
	Score   float32 // NaN when the score field is "."
	Strand  string
	Frame   string // "" when the frame field is "."
	Attr    string // repaired raw attribute text
}

// Repair corrects a known Ensembl release 78 data bug where attribute
// values carry a stray semicolon before the closing quote
// (gene_name "PRAMEF6;"). It replaces `;"` with `"` and `;-` with `-`.
// This is a deliberately narrow, lossy heuristic kept for
// compatibility, not a general quoting fix.
func Repair(attr string) string {
	if strings.Contains(attr, `;"`) {
		attr = strings.ReplaceAll(attr, `;"`, `"`)
	}
	if strings.Contains(attr, ";-") {
		attr = strings.ReplaceAll(attr, ";-", "-")
	}
	return attr
}

// Skip reports whether line is a comment or blank line.
func Skip(line string) bool {
	return len(line) == 0 || line[0] == '#'
}

// Line tokenizes a single non-comment GTF line. The interner
// deduplicates the short repeated fields (seqname, source, feature,
// strand, frame); pass nil to disable interning.
func Line(line string, in *intern.Interner) (Row, error) {
	fields := strings.SplitN(line, "\t", NumFields)
	if len(fields) != NumFields {
		return Row{}, &ErrFieldCount{Fields: len(fields)}
	}

	var row Row
	if in != nil {
		row.Seqname = in.Intern(fields[FieldSeqname])
		row.Source = in.Intern(fields[FieldSource])
		row.Feature = in.Intern(fields[FieldFeature])
		row.Strand = in.Intern(fields[FieldStrand])
	} else {
		row.Seqname = fields[FieldSeqname]
		row.Source = fields[FieldSource]
		row.Feature = fields[FieldFeature]
		row.Strand = fields[FieldStrand]
	}

	start, err := strconv.ParseInt(fields[FieldStart], 10, 64)
	if err != nil {
		return Row{}, &ErrBadNumber{Column: "start", Value: fields[FieldStart], cause: err}
	}
	end, err := strconv.ParseInt(fields[FieldEnd], 10, 64)
	if err != nil {
		return Row{}, &ErrBadNumber{Column: "end", Value: fields[FieldEnd], cause: err}
	}
	row.Start = start
	row.End = end

	if score := fields[FieldScore]; score == "." {
		row.Score = float32(math.NaN())
	} else {
		f, err := strconv.ParseFloat(score, 32)
		if err != nil {
			return Row{}, &ErrBadNumber{Column: "score", Value: score, cause: err}
		}
		row.Score = float32(f)
	}

	// Frame "." materializes as the empty-string null sentinel, the
	// same convention used for missing attribute values.
	if frame := fields[FieldFrame]; frame != "." {
		if in != nil {
			row.Frame = in.Intern(frame)
		} else {
			row.Frame = frame
		}
	}

	row.Attr = Repair(fields[FieldAttribute])
	return row, nil
}

// Chunk holds the fixed columns and raw attribute strings for a batch
// of tokenized rows. Columns are parallel slices of equal length.
type Chunk struct {
	Seqname []string
	Source  []string
	Feature []string
	Start   []int64
	End     []int64
	Score   []float32
	Strand  []string
	Frame   []string
	Attr    []string
}

// Len returns the number of rows in the chunk.
func (c *Chunk) Len() int { return len(c.Seqname) }

func (c *Chunk) append(row Row) {
	c.Seqname = append(c.Seqname, row.Seqname)
	c.Source = append(c.Source, row.Source)
	c.Feature = append(c.Feature, row.Feature)
	c.Start = append(c.Start, row.Start)
	c.End = append(c.End, row.End)
	c.Score = append(c.Score, row.Score)
	c.Strand = append(c.Strand, row.Strand)
	c.Frame = append(c.Frame, row.Frame)
	c.Attr = append(c.Attr, row.Attr)
}

// ReleaseAttrs drops the raw attribute strings once expansion has
// consumed them, bounding peak memory on multi-gigabyte inputs.
func (c *Chunk) ReleaseAttrs() { c.Attr = nil }

// Lines tokenizes a batch of raw lines into a Chunk. Comment and blank
// lines are skipped. When features is non-nil, rows whose feature is
// not in the set are discarded before any attribute work. lineOffset
// is the file line number of lines[0], used in structural errors.
func Lines(lines []string, features map[string]struct{}, lineOffset int, in *intern.Interner) (*Chunk, error) {
	if in == nil {
		in = intern.New()
	}
	chunk := &Chunk{}
	for i, line := range lines {
		if Skip(line) {
			continue
		}
		row, err := Line(line, in)
		if err != nil {
			if fc, ok := err.(*ErrFieldCount); ok {
				fc.Line = lineOffset + i
			}
			return nil, err
		}
		if features != nil {
			if _, ok := features[row.Feature]; !ok {
				continue
			}
		}
		chunk.append(row)
	}
	return chunk, nil
}
