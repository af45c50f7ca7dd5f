package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"row-hasher/internal/record"
	"row-hasher/internal/schema"
	"row-hasher/primitive"
)

// csvReader reads a headed CSV stream; every row must have as many cells as the header.
type csvReader struct {
	r      *csv.Reader
	null   string
	header *record.Header
	row    *record.Row
	err    error
}

func newCSVReader(r io.Reader, opts ReaderOptions) *csvReader {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	cr.ReuseRecord = true

	return &csvReader{r: cr, null: opts.NullLiteral}
}

func (c *csvReader) Next() bool {
	if c.err != nil {
		return false
	}

	if c.header == nil {
		names, err := c.r.Read()
		if err != nil {
			c.fail(err, "header")
			return false
		}

		c.header = record.NewHeader(names...)
		if c.header.Len() != len(names) {
			c.err = fmt.Errorf("csv header repeats a column name: %v", names)
			return false
		}
	}

	cells, err := c.r.Read()
	if err != nil {
		c.fail(err, "row")
		return false
	}

	row := record.NewRow(c.header)
	for i, cell := range cells {
		if c.null != "" && cell == c.null {
			continue
		}

		_ = row.SetColumnValue(i, cell)
	}

	c.row = row

	return true
}

func (c *csvReader) fail(err error, what string) {
	if errors.Is(err, io.EOF) {
		return
	}

	c.err = fmt.Errorf("failed to read csv %s: %w", what, err)
}

func (c *csvReader) Row() schema.DynamicBag { return c.row }

func (c *csvReader) Names() []string {
	if c.header == nil {
		return nil
	}

	return c.header.Names()
}

func (c *csvReader) Err() error   { return c.err }
func (c *csvReader) Close() error { return nil }

type csvWriter struct {
	w      *csv.Writer
	null   string
	header bool
	cells  []string
}

func newCSVWriter(w io.Writer, opts WriterOptions) *csvWriter {
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}

	return &csvWriter{w: cw, null: opts.NullLiteral}
}

func (c *csvWriter) Write(row *record.Row) error {
	if !c.header {
		if err := c.w.Write(row.Header().Names()); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}

		c.header = true
	}

	c.cells = c.cells[:0]
	for _, v := range row.Values() {
		text, ok := primitive.Text(v)
		if !ok {
			text = c.null
		}

		c.cells = append(c.cells, text)
	}

	if err := c.w.Write(c.cells); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}

	return nil
}

func (c *csvWriter) Close() error {
	c.w.Flush()

	return c.w.Error()
}
