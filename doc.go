// Package gtfparse parses Gene Transfer Format (GTF) annotation files
// into an in-memory columnar table, and serializes tables back to GTF
// text.
//
// GTF is a tab-delimited format of nine fixed columns; the ninth is a
// free-form blob of semicolon-separated `key "value"` attribute pairs.
// ReadGTF expands that blob into one table column per distinct
// attribute key, handling the real-world malformations the format is
// known for: inconsistent field counts, stray semicolons inside quoted
// values, keys missing from some rows, and keys repeated within one
// row.
//
// Basic usage:
//
//	t, err := gtfparse.ReadGTF("annotations.gtf.gz",
//	    gtfparse.WithFeatures("exon", "CDS"),
//	    gtfparse.WithUsecols("seqname", "start", "end", "gene_id"),
//	)
//
// Tables can be written back with WriteGTF; rows for feature types the
// file never declares (commonly "gene" and "transcript") can be
// reconstructed from exon/CDS groups with CreateMissingFeatures.
package gtfparse
