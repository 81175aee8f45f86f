package table

import (
	"fmt"
	"math"
	"strconv"
)

// Column is a homogeneously-typed sequence of cell values.
//
// Null handling is per-kind: StringColumn uses the empty string,
// Float32Column uses NaN, GenericColumn uses nil, and Int64Column has
// no null representation (it backs start/end, which are always
// present in valid GTF).
type Column interface {
	// Len returns the number of cells.
	Len() int

	// Value returns the typed value at i, or nil when the cell is null.
	Value(i int) any

	// IsNull reports whether the cell at i is null.
	IsNull(i int) bool

	// Append adds a typed value; it returns an error on a type
	// mismatch. Append(nil) is equivalent to AppendNull.
	Append(v any) error

	// AppendNull adds a null cell.
	AppendNull()

	// Cell returns the GTF text form of the cell at i; ok is false for
	// null cells.
	Cell(i int) (s string, ok bool)

	// Clone returns a deep copy of the column.
	Clone() Column
}

// StringColumn stores string cells; the empty string is null.
type StringColumn struct {
	Values []string
}

func (c *StringColumn) Len() int { return len(c.Values) }

func (c *StringColumn) Value(i int) any {
	if c.Values[i] == "" {
		return nil
	}
	return c.Values[i]
}

func (c *StringColumn) IsNull(i int) bool { return c.Values[i] == "" }

func (c *StringColumn) Append(v any) error {
	if v == nil {
		c.AppendNull()
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("string column: cannot append %T", v)
	}
	c.Values = append(c.Values, s)
	return nil
}

func (c *StringColumn) AppendNull() { c.Values = append(c.Values, "") }

func (c *StringColumn) Cell(i int) (string, bool) {
	return c.Values[i], c.Values[i] != ""
}

func (c *StringColumn) Clone() Column {
	return &StringColumn{Values: append([]string(nil), c.Values...)}
}

// Int64Column stores 64-bit integer cells with no null representation.
type Int64Column struct {
	Values []int64
}

func (c *Int64Column) Len() int          { return len(c.Values) }
func (c *Int64Column) Value(i int) any   { return c.Values[i] }
func (c *Int64Column) IsNull(i int) bool { return false }

func (c *Int64Column) Append(v any) error {
	switch n := v.(type) {
	case int64:
		c.Values = append(c.Values, n)
	case int:
		c.Values = append(c.Values, int64(n))
	case nil:
		c.AppendNull()
	default:
		return fmt.Errorf("int64 column: cannot append %T", v)
	}
	return nil
}

// AppendNull appends zero; int64 columns back start/end, which are
// never null in valid input or reconstruction.
func (c *Int64Column) AppendNull() { c.Values = append(c.Values, 0) }

func (c *Int64Column) Cell(i int) (string, bool) {
	return strconv.FormatInt(c.Values[i], 10), true
}

func (c *Int64Column) Clone() Column {
	return &Int64Column{Values: append([]int64(nil), c.Values...)}
}

// Float32Column stores 32-bit float cells; NaN is null.
type Float32Column struct {
	Values []float32
}

func (c *Float32Column) Len() int { return len(c.Values) }

func (c *Float32Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.Values[i]
}

func (c *Float32Column) IsNull(i int) bool {
	return math.IsNaN(float64(c.Values[i]))
}

func (c *Float32Column) Append(v any) error {
	switch f := v.(type) {
	case float32:
		c.Values = append(c.Values, f)
	case float64:
		c.Values = append(c.Values, float32(f))
	case nil:
		c.AppendNull()
	default:
		return fmt.Errorf("float32 column: cannot append %T", v)
	}
	return nil
}

func (c *Float32Column) AppendNull() {
	c.Values = append(c.Values, float32(math.NaN()))
}

func (c *Float32Column) Cell(i int) (string, bool) {
	if c.IsNull(i) {
		return "", false
	}
	return strconv.FormatFloat(float64(c.Values[i]), 'g', -1, 32), true
}

func (c *Float32Column) Clone() Column {
	return &Float32Column{Values: append([]float32(nil), c.Values...)}
}

// GenericColumn stores arbitrary typed cells; nil is null. It backs
// converter output and any column whose cells no longer share a
// primitive representation.
type GenericColumn struct {
	Values []any
}

func (c *GenericColumn) Len() int          { return len(c.Values) }
func (c *GenericColumn) Value(i int) any   { return c.Values[i] }
func (c *GenericColumn) IsNull(i int) bool { return c.Values[i] == nil }

func (c *GenericColumn) Append(v any) error {
	c.Values = append(c.Values, v)
	return nil
}

func (c *GenericColumn) AppendNull() { c.Values = append(c.Values, nil) }

func (c *GenericColumn) Cell(i int) (string, bool) {
	if c.Values[i] == nil {
		return "", false
	}
	if s, ok := c.Values[i].(string); ok {
		return s, s != ""
	}
	return fmt.Sprint(c.Values[i]), true
}

func (c *GenericColumn) Clone() Column {
	return &GenericColumn{Values: append([]any(nil), c.Values...)}
}
