package pipeline

import (
	"fmt"
	"io"

	"row-hasher/internal/record"
)

// Writer serializes output rows. All rows written share one header.
type Writer interface {
	Write(row *record.Row) error
	// Close flushes buffered rows. It does not close the underlying io.Writer.
	Close() error
}

// HeaderWriter is implemented by writers whose output carries the header
// even when no row follows. Run calls WriteHeader once the header is known.
type HeaderWriter interface {
	WriteHeader(h *record.Header) error
}

// WriterOptions tunes how output is encoded.
type WriterOptions struct {
	// Comma is the CSV field delimiter. Zero means ','.
	Comma rune
	// NullLiteral is written for absent values in CSV output.
	NullLiteral string
	// BatchSize is the number of rows per Arrow record batch. Zero means 1024.
	BatchSize int
}

// NewWriter returns a writer for f over w.
func NewWriter(f Format, w io.Writer, opts WriterOptions) (Writer, error) {
	switch f {
	case FormatCSV:
		return newCSVWriter(w, opts), nil
	case FormatJSONL:
		return newJSONLWriter(w), nil
	case FormatArrow:
		return newArrowWriter(w, opts), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// discard drops every row.
type discard struct{}

// Discard returns a writer that drops every row.
func Discard() Writer { return discard{} }

func (discard) Write(*record.Row) error { return nil }
func (discard) Close() error            { return nil }
