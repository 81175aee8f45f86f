package scan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvax/gtfparse/internal/intern"
)

const ensemblLine = "1\tensembl_havana\texon\t860260\t860328\t.\t+\t.\t" +
	`gene_id "ENSG00000187634"; transcript_id "ENST00000420190"; exon_number "1";`

func TestLine(t *testing.T) {
	t.Run("ValidLine", func(t *testing.T) {
		row, err := Line(ensemblLine, intern.New())
		require.NoError(t, err)

		assert.Equal(t, "1", row.Seqname)
		assert.Equal(t, "ensembl_havana", row.Source)
		assert.Equal(t, "exon", row.Feature)
		assert.Equal(t, int64(860260), row.Start)
		assert.Equal(t, int64(860328), row.End)
		assert.True(t, math.IsNaN(float64(row.Score)))
		assert.Equal(t, "+", row.Strand)
		assert.Equal(t, "", row.Frame)
	})

	t.Run("ScoreAndFrameValues", func(t *testing.T) {
		line := "chrX\thavana\tCDS\t100\t200\t0.5\t-\t2\tgene_id \"G1\";"
		row, err := Line(line, nil)
		require.NoError(t, err)

		assert.Equal(t, float32(0.5), row.Score)
		assert.Equal(t, "2", row.Frame)
	})

	t.Run("WrongFieldCount", func(t *testing.T) {
		_, err := Line("a\tb c\td", nil)
		require.Error(t, err)

		fc, ok := err.(*ErrFieldCount)
		require.True(t, ok)
		assert.Equal(t, 3, fc.Fields)
		assert.Contains(t, err.Error(), "3")
	})

	t.Run("TabsInsideAttributeField", func(t *testing.T) {
		line := "1\tsrc\texon\t1\t2\t.\t+\t.\t" + "gene_id \"G1\";\textra\ttabs"
		row, err := Line(line, nil)
		require.NoError(t, err)
		assert.Equal(t, "gene_id \"G1\";\textra\ttabs", row.Attr)
	})

	t.Run("BadStart", func(t *testing.T) {
		_, err := Line("1\tsrc\texon\tnope\t2\t.\t+\t.\tx y", nil)
		require.Error(t, err)

		bn, ok := err.(*ErrBadNumber)
		require.True(t, ok)
		assert.Equal(t, "start", bn.Column)
	})

	t.Run("FixedFieldRoundTrip", func(t *testing.T) {
		lines := []string{
			ensemblLine,
			"chr2\thavana\tgene\t5000\t9000\t1.5\t-\t0\tgene_id \"G2\";",
			"X\t.\ttranscript\t1\t10\t.\t.\t.\tgene_id \"G3\";",
		}
		for _, line := range lines {
			row, err := Line(line, nil)
			require.NoError(t, err)

			score := "."
			if !math.IsNaN(float64(row.Score)) {
				score = strconv.FormatFloat(float64(row.Score), 'g', -1, 32)
			}
			frame := row.Frame
			if frame == "" {
				frame = "."
			}
			rejoined := fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s",
				row.Seqname, row.Source, row.Feature, row.Start, row.End,
				score, row.Strand, frame)
			assert.Equal(t, line[:strings.LastIndex(line, "\t")], rejoined)
		}
	})
}

func TestRepair(t *testing.T) {
	// Ensembl release 78 carried gene_name "PRAMEF6;" and
	// transcript_name "PRAMEF6;-201".
	assert.Equal(t, `gene_name "PRAMEF6"`, Repair(`gene_name "PRAMEF6;"`))
	assert.Equal(t, `transcript_name "PRAMEF6-201"`, Repair(`transcript_name "PRAMEF6;-201"`))
	assert.Equal(t, `gene_id "OK"; tag "x"`, Repair(`gene_id "OK"; tag "x"`))
}

func TestSkip(t *testing.T) {
	assert.True(t, Skip(""))
	assert.True(t, Skip("# comment"))
	assert.True(t, Skip("#!genome-build GRCh38"))
	assert.False(t, Skip("1\tsrc\texon"))
}

func TestLines(t *testing.T) {
	t.Run("SkipsCommentsAndBlanks", func(t *testing.T) {
		chunk, err := Lines([]string{
			"#!genebuild-last-updated 2013-09",
			"",
			ensemblLine,
		}, nil, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, chunk.Len())
	})

	t.Run("FeatureFilter", func(t *testing.T) {
		lines := []string{
			"1\tsrc\tgene\t1\t100\t.\t+\t.\tgene_id \"G1\";",
			"1\tsrc\texon\t1\t50\t.\t+\t.\tgene_id \"G1\";",
			"1\tsrc\tCDS\t10\t40\t.\t+\t0\tgene_id \"G1\";",
		}
		chunk, err := Lines(lines, map[string]struct{}{"exon": {}}, 1, nil)
		require.NoError(t, err)
		require.Equal(t, 1, chunk.Len())
		assert.Equal(t, "exon", chunk.Feature[0])
	})

	t.Run("ErrorCarriesLineNumber", func(t *testing.T) {
		lines := []string{
			"# header",
			ensemblLine,
			"only\tthree\tfields",
		}
		_, err := Lines(lines, nil, 1, nil)
		require.Error(t, err)

		fc, ok := err.(*ErrFieldCount)
		require.True(t, ok)
		assert.Equal(t, 3, fc.Line)
		assert.Equal(t, 3, fc.Fields)
	})

	t.Run("RepairApplied", func(t *testing.T) {
		line := "1\tsrc\texon\t1\t2\t.\t+\t.\t" + `gene_name "PRAMEF6;";`
		chunk, err := Lines([]string{line}, nil, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, `gene_name "PRAMEF6";`, chunk.Attr[0])
	})
}
