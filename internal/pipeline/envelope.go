package pipeline

import (
	"row-hasher/internal/record"
	"row-hasher/internal/schema"
)

// Input is the record the engine reads for each source row.
type Input struct {
	Line    int64  `rowhash:"_line"`
	Source  string `rowhash:"_source"`
	Columns schema.DynamicBag
}

// Output is the record the engine writes for each source row.
type Output struct {
	Columns *record.Row
}

// NewOutput returns an output whose columns are copied from in's columns
// and laid out by h.
func NewOutput(h *record.Header, in schema.DynamicBag) (*Output, error) {
	row := record.NewRow(h)

	for i := range in.ColumnCount() {
		md, err := in.ColumnMetadata(i)
		if err != nil {
			return nil, err
		}

		v, err := in.ColumnValue(i)
		if err != nil {
			return nil, err
		}

		row.Set(md.ColumnName(), v)
	}

	return &Output{Columns: row}, nil
}
