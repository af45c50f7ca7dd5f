package pipeline

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"row-hasher/internal/record"
	"row-hasher/internal/schema"
	"row-hasher/primitive"
)

const defaultBatchSize = 1024

// arrowReader walks an Arrow IPC stream batch by batch, row by row.
type arrowReader struct {
	rdr   *ipc.Reader
	batch arrow.Record
	next  int
	row   *record.ArrowRow
	err   error
}

func newArrowReader(r io.Reader) (*arrowReader, error) {
	rdr, err := ipc.NewReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("failed to open arrow stream: %w", err)
	}

	return &arrowReader{rdr: rdr}, nil
}

func (a *arrowReader) Next() bool {
	for a.batch == nil || a.next >= int(a.batch.NumRows()) {
		if !a.rdr.Next() {
			if err := a.rdr.Err(); err != nil {
				a.err = fmt.Errorf("failed to read arrow batch: %w", err)
			}

			return false
		}

		// owned by the ipc reader until its next call to Next
		a.batch = a.rdr.Record()
		a.next = 0
		a.row = record.NewArrowRow(a.batch, 0)
	}

	a.row.Seek(a.next)
	a.next++

	return true
}

func (a *arrowReader) Row() schema.DynamicBag { return a.row }

func (a *arrowReader) Names() []string {
	fields := a.rdr.Schema().Fields()

	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}

	return out
}

func (a *arrowReader) Err() error { return a.err }

func (a *arrowReader) Close() error {
	a.rdr.Release()

	return nil
}

// arrowWriter renders every column as a nullable utf8 field and emits a
// record batch every batchSize rows.
type arrowWriter struct {
	w         io.Writer
	batchSize int
	mem       memory.Allocator
	schema    *arrow.Schema
	builder   *array.RecordBuilder
	ipc       *ipc.Writer
	pending   int
}

func newArrowWriter(w io.Writer, opts WriterOptions) *arrowWriter {
	size := opts.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	return &arrowWriter{w: w, batchSize: size, mem: memory.NewGoAllocator()}
}

func (a *arrowWriter) init(h *record.Header) {
	names := h.Names()

	fields := make([]arrow.Field, len(names))
	for i, n := range names {
		fields[i] = arrow.Field{Name: n, Type: arrow.BinaryTypes.String, Nullable: true}
	}

	a.schema = arrow.NewSchema(fields, nil)
	a.builder = array.NewRecordBuilder(a.mem, a.schema)
	a.ipc = ipc.NewWriter(a.w, ipc.WithSchema(a.schema), ipc.WithAllocator(a.mem))
}

// WriteHeader fixes the stream schema, so an empty stream still carries it.
func (a *arrowWriter) WriteHeader(h *record.Header) error {
	if a.builder == nil {
		a.init(h)
	}

	return nil
}

func (a *arrowWriter) Write(row *record.Row) error {
	if a.builder == nil {
		a.init(row.Header())
	}

	for i, v := range row.Values() {
		sb := a.builder.Field(i).(*array.StringBuilder)

		if text, ok := primitive.Text(v); ok {
			sb.Append(text)
		} else {
			sb.AppendNull()
		}
	}

	a.pending++
	if a.pending >= a.batchSize {
		return a.flush()
	}

	return nil
}

func (a *arrowWriter) flush() error {
	if a.pending == 0 {
		return nil
	}

	rec := a.builder.NewRecord()
	defer rec.Release()

	a.pending = 0

	if err := a.ipc.Write(rec); err != nil {
		return fmt.Errorf("failed to write arrow batch: %w", err)
	}

	return nil
}

func (a *arrowWriter) Close() error {
	if a.builder == nil {
		return nil
	}

	defer a.builder.Release()

	if err := a.flush(); err != nil {
		return err
	}

	if err := a.ipc.Close(); err != nil {
		return fmt.Errorf("failed to close arrow stream: %w", err)
	}

	return nil
}
