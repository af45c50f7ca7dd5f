package pipeline

import (
	"fmt"
	"io"

	"row-hasher/internal/schema"
)

// Reader is a forward-only iterator over input rows.
//
//	for r.Next() {
//	    row := r.Row()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader interface {
	// Next advances to the next row. It returns false at the end of the
	// input or on error; Err tells the two apart.
	Next() bool
	// Row returns the current row, valid until the next call to Next.
	Row() schema.DynamicBag
	// Names returns the column names, known once Next has returned true.
	Names() []string
	Err() error
	Close() error
}

// ReaderOptions tunes how input is decoded.
type ReaderOptions struct {
	// Comma is the CSV field delimiter. Zero means ','.
	Comma rune
	// NullLiteral marks CSV cells that read as absent values. Empty disables it.
	NullLiteral string
}

// NewReader returns a reader for f over r.
func NewReader(f Format, r io.Reader, opts ReaderOptions) (Reader, error) {
	switch f {
	case FormatCSV:
		return newCSVReader(r, opts), nil
	case FormatJSONL:
		return newJSONLReader(r), nil
	case FormatArrow:
		return newArrowReader(r)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
