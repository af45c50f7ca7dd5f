package record

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"

	"row-hasher/internal/common"
	"row-hasher/internal/schema"
)

// ArrowRow exposes one row of an Arrow record batch. Values are rendered
// with the column's ValueStr and nulls read as nil.
type ArrowRow struct {
	rec arrow.Record
	row int
}

var _ schema.DynamicBag = (*ArrowRow)(nil)

// NewArrowRow points at row i of rec. The caller keeps rec alive.
func NewArrowRow(rec arrow.Record, i int) *ArrowRow {
	return &ArrowRow{rec: rec, row: i}
}

// Seek moves the view to row i of the same batch.
func (a *ArrowRow) Seek(i int) {
	a.row = i
}

// Names returns the batch's column names.
func (a *ArrowRow) Names() []string {
	fields := a.rec.Schema().Fields()

	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}

	return out
}

func (a *ArrowRow) ColumnCount() int {
	return int(a.rec.NumCols())
}

func (a *ArrowRow) ColumnMetadata(index int) (schema.ColumnMetadata, error) {
	if err := a.check(index); err != nil {
		return nil, err
	}

	return Column(a.rec.ColumnName(index)), nil
}

func (a *ArrowRow) ColumnValue(index int) (any, error) {
	if err := a.check(index); err != nil {
		return nil, err
	}

	col := a.rec.Column(index)
	if col.IsNull(a.row) {
		return nil, nil
	}

	return col.ValueStr(a.row), nil
}

func (a *ArrowRow) SetColumnValue(int, any) error {
	return ErrReadOnly
}

func (a *ArrowRow) check(index int) error {
	if !common.IsInRange(0, index, a.ColumnCount()-1) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrColumnIndex, index, a.ColumnCount())
	}

	if !common.IsInRange(0, a.row, int(a.rec.NumRows())-1) {
		return fmt.Errorf("%w: row %d not in batch of %d", ErrColumnIndex, a.row, a.rec.NumRows())
	}

	return nil
}
