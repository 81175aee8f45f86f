package gtfparse

import (
	"bufio"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/openvax/gtfparse/internal/attr"
	"github.com/openvax/gtfparse/internal/fsutil"
	"github.com/openvax/gtfparse/internal/intern"
	"github.com/openvax/gtfparse/internal/scan"
	"github.com/openvax/gtfparse/table"
)

// maxLineSize bounds a single GTF line. Attribute blobs on Ensembl
// gene rows can run to hundreds of kilobytes.
const maxLineSize = 1 << 21

// ReadGTF parses the GTF file at filename into a columnar table.
// Gzip (.gz/.gzip) and zstd (.zst/.zstd) compression are detected by
// filename suffix. A path that does not exist fails with
// *ErrFileNotFound before any read is attempted.
func ReadGTF(filename string, opts ...Option) (*table.Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !fsutil.Exists(filename) {
		return nil, &ErrFileNotFound{Path: filename}
	}
	r, err := fsutil.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	o.logger = o.logger.WithPath(filename)
	return read(r, o)
}

// ReadGTFReader parses GTF text from r into a columnar table.
func ReadGTFReader(r io.Reader, opts ...Option) (*table.Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return read(r, o)
}

// chunkResult is the parsed form of one chunk of raw lines.
type chunkResult struct {
	fixed *scan.Chunk
	attrs *attr.Table
}

func read(r io.Reader, o options) (*table.Table, error) {
	retain := retainSet(o)

	results, err := parseChunks(r, o, retain)
	if err != nil {
		o.logger.LogParse(0, 0, err)
		return nil, err
	}

	t, err := assemble(results, o)
	if err != nil {
		return nil, err
	}

	if o.usecols != nil {
		t = t.Select(o.usecols)
	}
	for name, fn := range o.converters {
		if err := t.Convert(name, fn); err != nil {
			return nil, err
		}
	}
	if o.inferBiotype {
		inferBiotype(t)
	}
	return t, nil
}

// retainSet derives the attribute-key restriction from usecols: fixed
// columns are never attribute keys, everything else requested may be.
func retainSet(o options) map[string]struct{} {
	if o.usecols == nil || !o.expandAttributes {
		return nil
	}
	retain := make(map[string]struct{}, len(o.usecols))
	for _, name := range o.usecols {
		if !isFixedColumn(name) && name != "attribute" {
			retain[name] = struct{}{}
		}
	}
	return retain
}

func isFixedColumn(name string) bool {
	for _, fixed := range scan.FixedColumns {
		if name == fixed {
			return true
		}
	}
	return false
}

// parseChunks reads lines in chunks of o.chunkSize and tokenizes plus
// expands each chunk, on up to o.parallelism goroutines. Results come
// back indexed by chunk so file order is preserved; column-set
// reconciliation across chunks happens later in a single merge pass.
func parseChunks(r io.Reader, o options, retain map[string]struct{}) ([]*chunkResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		g       errgroup.Group
		results []*chunkResult
	)
	g.SetLimit(o.parallelism)

	lineNo := 1
	for {
		lines := make([]string, 0, o.chunkSize)
		for len(lines) < o.chunkSize && scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if len(lines) == 0 {
			break
		}

		res := &chunkResult{}
		results = append(results, res)
		offset := lineNo
		lineNo += len(lines)

		batch := lines
		g.Go(func() error {
			return parseChunk(batch, offset, o, retain, res)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, translateError(err)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ErrLineTooLong{Limit: maxLineSize}
		}
		return nil, err
	}

	rows := 0
	for _, res := range results {
		rows += res.fixed.Len()
	}
	o.logger.LogParse(rows, len(results), nil)
	return results, nil
}

func parseChunk(lines []string, offset int, o options, retain map[string]struct{}, out *chunkResult) error {
	// One interner per chunk: cheap, and keeps chunk parsing free of
	// shared mutable state when chunks run in parallel.
	in := intern.New()
	fixed, err := scan.Lines(lines, o.features, offset, in)
	if err != nil {
		return err
	}
	out.fixed = fixed
	if o.expandAttributes {
		out.attrs = attr.Expand(fixed.Attr, attr.Options{
			QuoteChar:    o.quoteChar,
			MissingValue: o.missingValue,
			Retain:       retain,
			Interner:     in,
		})
		// Raw attribute strings are no longer needed once expanded;
		// dropping them here bounds peak memory.
		fixed.ReleaseAttrs()
	}
	return nil
}

// assemble concatenates chunk results into the final table: the eight
// fixed columns first, then attribute columns in first-seen order
// (or the raw attribute column when expansion is disabled).
func assemble(results []*chunkResult, o options) (*table.Table, error) {
	rows := make([]int, len(results))
	total := 0
	for i, res := range results {
		rows[i] = res.fixed.Len()
		total += rows[i]
	}

	seqname := make([]string, 0, total)
	source := make([]string, 0, total)
	feature := make([]string, 0, total)
	start := make([]int64, 0, total)
	end := make([]int64, 0, total)
	score := make([]float32, 0, total)
	strand := make([]string, 0, total)
	frame := make([]string, 0, total)
	var rawAttrs []string
	if !o.expandAttributes {
		rawAttrs = make([]string, 0, total)
	}

	for i := range results {
		c := results[i].fixed
		seqname = append(seqname, c.Seqname...)
		source = append(source, c.Source...)
		feature = append(feature, c.Feature...)
		start = append(start, c.Start...)
		end = append(end, c.End...)
		score = append(score, c.Score...)
		strand = append(strand, c.Strand...)
		frame = append(frame, c.Frame...)
		if !o.expandAttributes {
			rawAttrs = append(rawAttrs, c.Attr...)
		}
		// Release fixed-column chunk storage as we go.
		results[i].fixed = nil
	}

	t := table.New()
	add := func(name string, col table.Column) error { return t.AddColumn(name, col) }
	if err := add("seqname", &table.StringColumn{Values: seqname}); err != nil {
		return nil, err
	}
	if err := add("source", &table.StringColumn{Values: source}); err != nil {
		return nil, err
	}
	if err := add("feature", &table.StringColumn{Values: feature}); err != nil {
		return nil, err
	}
	if err := add("start", &table.Int64Column{Values: start}); err != nil {
		return nil, err
	}
	if err := add("end", &table.Int64Column{Values: end}); err != nil {
		return nil, err
	}
	if err := add("score", &table.Float32Column{Values: score}); err != nil {
		return nil, err
	}
	if err := add("strand", &table.StringColumn{Values: strand}); err != nil {
		return nil, err
	}
	if err := add("frame", &table.StringColumn{Values: frame}); err != nil {
		return nil, err
	}

	if !o.expandAttributes {
		if err := add("attribute", &table.StringColumn{Values: rawAttrs}); err != nil {
			return nil, err
		}
		return t, nil
	}

	attrTables := make([]*attr.Table, len(results))
	for i := range results {
		attrTables[i] = results[i].attrs
	}
	merged := attr.Merge(attrTables, rows, o.missingValue)
	for _, key := range merged.Keys() {
		if isFixedColumn(key) {
			// An attribute key shadowing a fixed column would corrupt
			// the schema; skip it rather than fail the parse.
			continue
		}
		col, _ := merged.Column(key)
		if err := add(key, &table.StringColumn{Values: col}); err != nil {
			return nil, err
		}
	}
	o.logger.LogExpand(merged.Keys())
	return t, nil
}

// inferBiotype applies the source-column biotype heuristic: when the
// sentinel value "protein_coding" occurs in source, the column is
// duplicated into gene_biotype and/or transcript_biotype unless those
// already exist. Best-effort, documented as imprecise.
func inferBiotype(t *table.Table) {
	source, ok := t.Strings("source")
	if !ok {
		return
	}
	found := false
	for _, v := range source {
		if v == "protein_coding" {
			found = true
			break
		}
	}
	if !found {
		return
	}
	col, _ := t.Column("source")
	if !t.HasColumn("gene_biotype") {
		_ = t.AddColumn("gene_biotype", col.Clone())
	}
	if !t.HasColumn("transcript_biotype") {
		_ = t.AddColumn("transcript_biotype", col.Clone())
	}
}
