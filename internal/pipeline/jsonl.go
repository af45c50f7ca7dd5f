package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	json "github.com/goccy/go-json"

	"row-hasher/internal/record"
	"row-hasher/internal/schema"
)

// jsonlReader reads one JSON object per line. The first object fixes the
// header (its keys, sorted); later objects are laid out by it.
type jsonlReader struct {
	dec    *json.Decoder
	header *record.Header
	row    *record.Row
	line   int
	err    error
}

func newJSONLReader(r io.Reader) *jsonlReader {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()

	return &jsonlReader{dec: dec}
}

func (j *jsonlReader) Next() bool {
	if j.err != nil {
		return false
	}

	var obj map[string]any

	if err := j.dec.Decode(&obj); err != nil {
		if !errors.Is(err, io.EOF) {
			j.err = fmt.Errorf("failed to decode json object %d: %w", j.line+1, err)
		}

		return false
	}

	j.line++

	if obj == nil {
		j.err = fmt.Errorf("json value %d is not an object", j.line)
		return false
	}

	if j.header == nil {
		j.header = record.NewHeader(slices.Sorted(maps.Keys(obj))...)
	}

	j.row = record.FromMapWithHeader(j.header, obj)

	return true
}

func (j *jsonlReader) Row() schema.DynamicBag { return j.row }

func (j *jsonlReader) Names() []string {
	if j.header == nil {
		return nil
	}

	return j.header.Names()
}

func (j *jsonlReader) Err() error   { return j.err }
func (j *jsonlReader) Close() error { return nil }

type jsonlWriter struct {
	enc *json.Encoder
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return &jsonlWriter{enc: enc}
}

func (j *jsonlWriter) Write(row *record.Row) error {
	if err := j.enc.Encode(row.Map()); err != nil {
		return fmt.Errorf("failed to encode json row: %w", err)
	}

	return nil
}

func (j *jsonlWriter) Close() error { return nil }
