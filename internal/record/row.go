// Package record provides the row types the pipeline feeds through the
// engine. Both Row and ArrowRow satisfy schema.DynamicBag, so their columns
// become directly addressable fields once the row sits inside an envelope
// struct.
package record

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"row-hasher/internal/common"
	"row-hasher/internal/schema"
)

var (
	// ErrColumnIndex is returned for indexes outside the row's header.
	ErrColumnIndex = errors.New("column index out of range")
	// ErrReadOnly is returned when writing into a row backed by immutable data.
	ErrReadOnly = errors.New("row is read-only")
)

// Column is the metadata of one column.
type Column string

func (c Column) ColumnName() string { return string(c) }

// Header is the ordered, shared column list of a set of rows.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a header. A repeated name keeps its first position.
func NewHeader(names ...string) *Header {
	h := &Header{index: make(map[string]int, len(names))}

	for _, n := range names {
		if _, dup := h.index[n]; dup {
			continue
		}

		h.index[n] = len(h.names)
		h.names = append(h.names, n)
	}

	return h
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Names returns a copy of the column names in order.
func (h *Header) Names() []string {
	return slices.Clone(h.names)
}

// Index returns the position of name.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[name]

	return i, ok
}

// Extend returns a header with names not yet present appended.
func (h *Header) Extend(names ...string) *Header {
	return NewHeader(append(h.Names(), names...)...)
}

// Row is a mutable set of values laid out by a Header.
type Row struct {
	header *Header
	values []any
}

var _ schema.DynamicBag = (*Row)(nil)

// NewRow returns a row of nil values.
func NewRow(h *Header) *Row {
	return &Row{header: h, values: make([]any, h.Len())}
}

// FromMap builds a row whose header is the map's keys in sorted order.
func FromMap(m map[string]any) *Row {
	return FromMapWithHeader(NewHeader(slices.Sorted(maps.Keys(m))...), m)
}

// FromMapWithHeader lays m out by h. Keys missing from h are dropped,
// columns missing from m are nil.
func FromMapWithHeader(h *Header, m map[string]any) *Row {
	r := NewRow(h)
	for k, v := range m {
		r.Set(k, v)
	}

	return r
}

// Header returns the row's header.
func (r *Row) Header() *Header {
	return r.header
}

// Get returns the value of column name.
func (r *Row) Get(name string) (any, bool) {
	i, ok := r.header.Index(name)
	if !ok {
		return nil, false
	}

	return r.values[i], true
}

// Set stores v in column name and reports whether the column exists.
func (r *Row) Set(name string, v any) bool {
	i, ok := r.header.Index(name)
	if ok {
		r.values[i] = v
	}

	return ok
}

// Values returns the row's values in header order. The slice is shared.
func (r *Row) Values() []any {
	return r.values
}

// Map returns the row as a name to value map.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, n := range r.header.names {
		out[n] = r.values[i]
	}

	return out
}

// Reset clears every value, keeping the header.
func (r *Row) Reset() {
	clear(r.values)
}

func (r *Row) ColumnCount() int {
	return len(r.values)
}

func (r *Row) ColumnMetadata(index int) (schema.ColumnMetadata, error) {
	if err := r.check(index); err != nil {
		return nil, err
	}

	return Column(r.header.names[index]), nil
}

func (r *Row) ColumnValue(index int) (any, error) {
	if err := r.check(index); err != nil {
		return nil, err
	}

	return r.values[index], nil
}

func (r *Row) SetColumnValue(index int, value any) error {
	if err := r.check(index); err != nil {
		return err
	}

	r.values[index] = value

	return nil
}

func (r *Row) check(index int) error {
	if !common.IsInRange(0, index, len(r.values)-1) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrColumnIndex, index, len(r.values))
	}

	return nil
}
