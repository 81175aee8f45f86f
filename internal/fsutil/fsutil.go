// Package fsutil abstracts file access and suffix-based compression
// for GTF transport. GTF files are commonly shipped gzip-compressed;
// compression is detected by filename suffix, never by content
// sniffing.
package fsutil

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Exists reports whether path names an existing file. Only genuine
// absence counts as non-existence; other stat failures (permissions,
// a file used as a directory) are left for Open to report.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// IsGzip reports whether path names a gzip-compressed file by suffix.
func IsGzip(path string) bool {
	return strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".gzip")
}

// IsZstd reports whether path names a zstd-compressed file by suffix.
func IsZstd(path string) bool {
	return strings.HasSuffix(path, ".zst") || strings.HasSuffix(path, ".zstd")
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, transparently decompressing gzip and
// zstd files by suffix. Closing the returned reader closes the
// underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case IsGzip(path):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case IsZstd(path):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{closerFunc(func() error {
			zr.Close()
			return nil
		}), f}}, nil
	default:
		return f, nil
	}
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }

type writeMultiCloser struct {
	io.Writer
	closers []io.Closer
}

func (m *writeMultiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create opens path for writing, transparently compressing by suffix.
// Close flushes the compressor before closing the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch {
	case IsGzip(path):
		zw := gzip.NewWriter(f)
		return &writeMultiCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	case IsZstd(path):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &writeMultiCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	default:
		return f, nil
	}
}
