package table

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl := New()
	require.NoError(t, tbl.AddColumn("seqname", &StringColumn{Values: []string{"1", "1", "X"}}))
	require.NoError(t, tbl.AddColumn("start", &Int64Column{Values: []int64{100, 200, 300}}))
	require.NoError(t, tbl.AddColumn("score", &Float32Column{Values: []float32{0.5, float32(math.NaN()), 1}}))
	require.NoError(t, tbl.AddColumn("gene_id", &StringColumn{Values: []string{"G1", "", "G2"}}))
	return tbl
}

func TestTable(t *testing.T) {
	t.Run("ShapeAndOrder", func(t *testing.T) {
		tbl := sample(t)
		assert.Equal(t, 3, tbl.NumRows())
		assert.Equal(t, 4, tbl.NumColumns())
		assert.Equal(t, []string{"seqname", "start", "score", "gene_id"}, tbl.Names())
	})

	t.Run("DuplicateColumn", func(t *testing.T) {
		tbl := sample(t)
		err := tbl.AddColumn("seqname", &StringColumn{Values: []string{"a", "b", "c"}})
		assert.Error(t, err)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		tbl := sample(t)
		err := tbl.AddColumn("short", &StringColumn{Values: []string{"a"}})
		assert.Error(t, err)
	})

	t.Run("Select", func(t *testing.T) {
		tbl := sample(t)
		sub := tbl.Select([]string{"gene_id", "seqname", "not_a_column"})

		assert.Equal(t, []string{"gene_id", "seqname"}, sub.Names())
		assert.Equal(t, 3, sub.NumRows())
	})

	t.Run("ConvertSkipsEmptyCells", func(t *testing.T) {
		tbl := sample(t)
		calls := 0
		err := tbl.Convert("gene_id", func(s string) (any, error) {
			calls++
			return "x" + s, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)

		col, _ := tbl.Column("gene_id")
		assert.Equal(t, "xG1", col.Value(0))
		assert.True(t, col.IsNull(1))
		assert.Equal(t, "xG2", col.Value(2))
	})

	t.Run("ConvertTyped", func(t *testing.T) {
		tbl := New()
		require.NoError(t, tbl.AddColumn("exon_number", &StringColumn{Values: []string{"1", "", "7"}}))
		err := tbl.Convert("exon_number", func(s string) (any, error) {
			return strconv.Atoi(s)
		})
		require.NoError(t, err)

		col, _ := tbl.Column("exon_number")
		assert.Equal(t, 1, col.Value(0))
		assert.Nil(t, col.Value(1))
		assert.Equal(t, 7, col.Value(2))
	})

	t.Run("ConvertUnknownColumnIgnored", func(t *testing.T) {
		tbl := sample(t)
		assert.NoError(t, tbl.Convert("nope", func(s string) (any, error) { return s, nil }))
	})

	t.Run("Rows", func(t *testing.T) {
		tbl := sample(t)
		rows := tbl.Rows()
		require.Len(t, rows, 3)

		assert.Equal(t, "G1", rows[0]["gene_id"])
		assert.Equal(t, int64(200), rows[1]["start"])
		_, hasScore := rows[1]["score"]
		assert.False(t, hasScore, "NaN score should be omitted")
		_, hasGene := rows[1]["gene_id"]
		assert.False(t, hasGene, "empty attribute cell should be omitted")
	})
}

func TestColumns(t *testing.T) {
	t.Run("Float32Null", func(t *testing.T) {
		col := &Float32Column{}
		col.AppendNull()
		require.NoError(t, col.Append(float32(2.5)))

		assert.True(t, col.IsNull(0))
		assert.False(t, col.IsNull(1))

		_, ok := col.Cell(0)
		assert.False(t, ok)
		s, ok := col.Cell(1)
		assert.True(t, ok)
		assert.Equal(t, "2.5", s)
	})

	t.Run("Int64Cell", func(t *testing.T) {
		col := &Int64Column{Values: []int64{860260}}
		s, ok := col.Cell(0)
		assert.True(t, ok)
		assert.Equal(t, "860260", s)
	})

	t.Run("AppendTypeMismatch", func(t *testing.T) {
		assert.Error(t, (&Int64Column{}).Append("nope"))
		assert.Error(t, (&StringColumn{}).Append(7))
		assert.Error(t, (&Float32Column{}).Append("nope"))
	})

	t.Run("GenericCell", func(t *testing.T) {
		col := &GenericColumn{Values: []any{nil, "txt", 42}}
		_, ok := col.Cell(0)
		assert.False(t, ok)
		s, _ := col.Cell(1)
		assert.Equal(t, "txt", s)
		s, _ = col.Cell(2)
		assert.Equal(t, "42", s)
	})

	t.Run("CloneIsDeep", func(t *testing.T) {
		col := &StringColumn{Values: []string{"a"}}
		clone := col.Clone().(*StringColumn)
		clone.Values[0] = "b"
		assert.Equal(t, "a", col.Values[0])
	})
}
