package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Run("FirstSeenOrder", func(t *testing.T) {
		result := Expand([]string{
			`gene_id "G1"; gene_name "N1";`,
			`zeta "z"; gene_id "G2"; alpha "a";`,
		}, Options{})

		assert.Equal(t, []string{"gene_id", "gene_name", "zeta", "alpha"}, result.Keys())
	})

	t.Run("MissingValueSentinel", func(t *testing.T) {
		result := Expand([]string{
			`gene_id "G1"; gene_name "N1";`,
			`gene_id "G2";`,
		}, Options{})

		names, ok := result.Column("gene_name")
		require.True(t, ok)
		assert.Equal(t, []string{"N1", ""}, names)
	})

	t.Run("ConfigurableSentinel", func(t *testing.T) {
		result := Expand([]string{
			`gene_id "G1"; gene_name "N1";`,
			`gene_id "G2";`,
		}, Options{MissingValue: "NA"})

		names, _ := result.Column("gene_name")
		assert.Equal(t, []string{"N1", "NA"}, names)
	})

	t.Run("RepeatedKeyJoinsWithComma", func(t *testing.T) {
		result := Expand([]string{
			`tag "cds_end_NF"; tag "mRNA_end_NF";`,
		}, Options{})

		tags, ok := result.Column("tag")
		require.True(t, ok)
		assert.Equal(t, []string{"cds_end_NF,mRNA_end_NF"}, tags)
	})

	t.Run("RepeatedKeyFirstValueEqualsSentinel", func(t *testing.T) {
		// A first value that happens to equal the missing sentinel is
		// still a real occurrence and joins, never overwritten.
		result := Expand([]string{
			`note "NA"; note "x";`,
			`gene_id "G1";`,
		}, Options{MissingValue: "NA"})

		notes, ok := result.Column("note")
		require.True(t, ok)
		assert.Equal(t, []string{"NA,x", "NA"}, notes)
	})

	t.Run("RepeatedKeyEmptyFirstValue", func(t *testing.T) {
		result := Expand([]string{
			`tag ""; tag "basic";`,
		}, Options{})

		tags, ok := result.Column("tag")
		require.True(t, ok)
		assert.Equal(t, []string{",basic"}, tags)
	})

	t.Run("ValueWithSpaces", func(t *testing.T) {
		// Ensembl release 79 introduced values containing spaces.
		result := Expand([]string{
			`transcript_support_level "1 (assigned to previous version 5)";`,
		}, Options{})

		tsl, ok := result.Column("transcript_support_level")
		require.True(t, ok)
		assert.Equal(t, []string{"1 (assigned to previous version 5)"}, tsl)
	})

	t.Run("MalformedFragmentsDropped", func(t *testing.T) {
		result := Expand([]string{
			`gene_id "G1"; ;; x; nospace_here;`,
		}, Options{})

		assert.Equal(t, []string{"gene_id"}, result.Keys())
	})

	t.Run("UnquotedValues", func(t *testing.T) {
		// RefSeq/StringTie GTFs leave some values unquoted.
		result := Expand([]string{
			`gene_id STRG.1; cov 101.87;`,
		}, Options{})

		ids, _ := result.Column("gene_id")
		cov, _ := result.Column("cov")
		assert.Equal(t, []string{"STRG.1"}, ids)
		assert.Equal(t, []string{"101.87"}, cov)
	})

	t.Run("CustomQuoteChar", func(t *testing.T) {
		result := Expand([]string{`gene_id 'G1';`}, Options{QuoteChar: '\''})

		ids, _ := result.Column("gene_id")
		assert.Equal(t, []string{"G1"}, ids)
	})

	t.Run("RetainRestriction", func(t *testing.T) {
		attrs := []string{
			`gene_id "G1"; gene_name "N1"; exon_id "E1";`,
			`gene_name "N2"; gene_id "G2";`,
		}
		full := Expand(attrs, Options{})
		restricted := Expand(attrs, Options{
			Retain: map[string]struct{}{"gene_name": {}},
		})

		assert.Equal(t, []string{"gene_name"}, restricted.Keys())

		want, _ := full.Column("gene_name")
		got, _ := restricted.Column("gene_name")
		assert.Equal(t, want, got)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		result := Expand(nil, Options{})
		assert.Empty(t, result.Keys())
	})
}

func TestMerge(t *testing.T) {
	t.Run("UnionsColumnsInFileOrder", func(t *testing.T) {
		first := Expand([]string{`gene_id "G1";`}, Options{})
		second := Expand([]string{`exon_id "E1"; gene_id "G2";`}, Options{})

		merged := Merge([]*Table{first, second}, []int{1, 1}, "")

		assert.Equal(t, []string{"gene_id", "exon_id"}, merged.Keys())

		ids, _ := merged.Column("gene_id")
		assert.Equal(t, []string{"G1", "G2"}, ids)
	})

	t.Run("BackfillsEarlierChunks", func(t *testing.T) {
		first := Expand([]string{`gene_id "G1";`, `gene_id "G2";`}, Options{})
		second := Expand([]string{`gene_id "G3"; ccds_id "CCDS1";`}, Options{})

		merged := Merge([]*Table{first, second}, []int{2, 1}, "")

		ccds, ok := merged.Column("ccds_id")
		require.True(t, ok)
		assert.Equal(t, []string{"", "", "CCDS1"}, ccds)
	})

	t.Run("BackfillsLaterChunks", func(t *testing.T) {
		first := Expand([]string{`gene_id "G1"; gene_name "N1";`}, Options{})
		second := Expand([]string{`gene_id "G2";`}, Options{})

		merged := Merge([]*Table{first, second}, []int{1, 1}, "")

		names, _ := merged.Column("gene_name")
		assert.Equal(t, []string{"N1", ""}, names)
	})
}
