package scan

import "fmt"

// ErrFieldCount indicates a non-comment line that did not split into
// exactly nine tab-separated fields. This is fatal for the whole
// parse: it means the input is not GTF, not that one row is bad.
type ErrFieldCount struct {
	Fields int
	Line   int // 1-based file line number, 0 if unknown
}

func (e *ErrFieldCount) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("wrong number of fields %d (expected %d) at line %d", e.Fields, NumFields, e.Line)
	}
	return fmt.Sprintf("wrong number of fields %d (expected %d)", e.Fields, NumFields)
}

// ErrBadNumber indicates a start/end/score field that failed numeric
// conversion.
//
// The underlying strconv error can be accessed via errors.Unwrap.
type ErrBadNumber struct {
	Column string
	Value  string
	cause  error
}

func (e *ErrBadNumber) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Column, e.Value)
}

func (e *ErrBadNumber) Unwrap() error { return e.cause }
