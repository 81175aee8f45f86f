package gtfparse

import (
	"github.com/openvax/gtfparse/internal/attr"
	"github.com/openvax/gtfparse/table"
)

// DefaultChunkSize is the number of raw lines tokenized and expanded
// per batch. Chunking caps peak memory on multi-gigabyte files; the
// chunks are reconciled into a single table afterwards.
const DefaultChunkSize = 1 << 16

type options struct {
	expandAttributes bool
	features         map[string]struct{}
	usecols          []string
	converters       map[string]table.Converter
	inferBiotype     bool
	chunkSize        int
	parallelism      int
	quoteChar        byte
	missingValue     string
	logger           *Logger
}

func defaultOptions() options {
	return options{
		expandAttributes: true,
		chunkSize:        DefaultChunkSize,
		parallelism:      1,
		quoteChar:        attr.DefaultQuoteChar,
		missingValue:     "",
		logger:           NoopLogger(),
	}
}

// Option configures ReadGTF / ReadGTFReader behavior.
type Option func(*options)

// WithoutAttributeExpansion keeps the raw attribute string as a single
// `attribute` column instead of expanding it into per-key columns.
func WithoutAttributeExpansion() Option {
	return func(o *options) {
		o.expandAttributes = false
	}
}

// WithFeatures retains only rows whose feature column is one of the
// given names. Filtering happens during tokenization, before any
// attribute expansion work is spent on discarded rows.
func WithFeatures(features ...string) Option {
	return func(o *options) {
		o.features = make(map[string]struct{}, len(features))
		for _, f := range features {
			o.features[f] = struct{}{}
		}
	}
}

// WithUsecols restricts the output to the named columns, in the given
// order. Names absent from the parsed table are silently dropped.
// Attribute keys outside the set are parsed but never materialized.
func WithUsecols(names ...string) Option {
	return func(o *options) {
		o.usecols = names
	}
}

// WithColumnConverter applies fn to every populated cell of the named
// column after parsing. Empty cells become null and are never passed
// to fn.
func WithColumnConverter(name string, fn table.Converter) Option {
	return func(o *options) {
		if o.converters == nil {
			o.converters = make(map[string]table.Converter)
		}
		o.converters[name] = fn
	}
}

// WithInferBiotype enables the biotype disambiguation heuristic: older
// Ensembl GTFs overload the source column with gene or transcript
// biotypes. When "protein_coding" occurs anywhere in source, the
// source column is duplicated into gene_biotype and/or
// transcript_biotype unless those columns already exist. Best-effort
// inference, intentionally imprecise.
func WithInferBiotype() Option {
	return func(o *options) {
		o.inferBiotype = true
	}
}

// WithChunkSize sets the number of raw lines processed per batch.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithParallelism parses chunks on up to n goroutines. Row order and
// first-seen column order are preserved regardless of n; chunk results
// are merged in original file order.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithQuoteChar sets the quote character stripped from attribute
// values (default '"').
func WithQuoteChar(c byte) Option {
	return func(o *options) {
		o.quoteChar = c
	}
}

// WithMissingValue sets the sentinel stored for rows lacking an
// attribute key (default "").
func WithMissingValue(s string) Option {
	return func(o *options) {
		o.missingValue = s
	}
}

// WithLogger configures structured logging. Pass nil to disable.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
