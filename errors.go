package gtfparse

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/openvax/gtfparse/internal/scan"
)

// ErrFileNotFound indicates the given GTF path does not exist. It is
// returned before any read is attempted.
//
// errors.Is(err, os.ErrNotExist) also holds.
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("GTF file does not exist: %s", e.Path)
}

func (e *ErrFileNotFound) Unwrap() error { return os.ErrNotExist }

// ErrLineTooLong indicates a single line exceeded the reader's
// line-length limit.
//
// errors.Is(err, bufio.ErrTooLong) also holds.
type ErrLineTooLong struct {
	// Limit is the maximum accepted line length in bytes.
	Limit int
}

func (e *ErrLineTooLong) Error() string {
	return fmt.Sprintf("GTF line exceeds %d bytes", e.Limit)
}

func (e *ErrLineTooLong) Unwrap() error { return bufio.ErrTooLong }

// ParsingError indicates a structurally invalid GTF line: a
// non-comment line that did not split into exactly nine tab-separated
// fields, or a numeric field that failed conversion. Structural
// errors are fatal for the whole parse; they mean the input is not
// valid GTF, not that a single row is bad.
//
// The underlying tokenizer error can be accessed via errors.Unwrap.
type ParsingError struct {
	// Fields is the observed field count, 0 for numeric failures.
	Fields int
	// Line is the 1-based line number, 0 if unknown.
	Line  int
	cause error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing GTF: %v", e.cause)
}

func (e *ParsingError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var fc *scan.ErrFieldCount
	if errors.As(err, &fc) {
		return &ParsingError{Fields: fc.Fields, Line: fc.Line, cause: err}
	}
	var bn *scan.ErrBadNumber
	if errors.As(err, &bn) {
		return &ParsingError{cause: err}
	}
	return err
}
