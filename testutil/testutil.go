// Package testutil provides deterministic GTF fixtures for tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Record builds one GTF line from fixed fields and key/value attribute
// pairs. Attribute values are quoted; pairs are emitted in the given
// order with a trailing semicolon, matching Ensembl formatting.
func Record(seqname, source, feature string, start, end int64, score, strand, frame string, attrs ...[2]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t",
		seqname, source, feature, start, end, score, strand, frame)
	for _, kv := range attrs {
		fmt.Fprintf(&sb, "%s \"%s\"; ", kv[0], kv[1])
	}
	return sb.String()
}

// RNG is a seeded random generator for reproducible fixtures.
// It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// GeneLines generates GTF lines for numGenes synthetic genes with
// exonsPerGene exon rows each, on chromosome "1". Gene g spans
// [1000*g+1, 1000*g+900]; exons partition that span left to right, so
// reconstruction of the gene rows has a known answer.
func (r *RNG) GeneLines(numGenes, exonsPerGene int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, numGenes*exonsPerGene)
	for g := 0; g < numGenes; g++ {
		geneID := fmt.Sprintf("ENSG%011d", g)
		txID := fmt.Sprintf("ENST%011d", g)
		base := int64(1000*g + 1)
		span := int64(900) / int64(exonsPerGene)
		strand := "+"
		if r.rand.Intn(2) == 1 {
			strand = "-"
		}
		for e := 0; e < exonsPerGene; e++ {
			start := base + int64(e)*span
			end := start + span - 1
			lines = append(lines, Record(
				"1", "ensembl", "exon", start, end, ".", strand, ".",
				[2]string{"gene_id", geneID},
				[2]string{"transcript_id", txID},
				[2]string{"exon_number", fmt.Sprintf("%d", e+1)},
			))
		}
	}
	return lines
}
