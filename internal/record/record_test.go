package record_test

import (
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"row-hasher/internal/record"
	"row-hasher/internal/schema"
)

func TestHeader(t *testing.T) {
	h := record.NewHeader("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, h.Names())
	assert.Equal(t, 2, h.Len())

	i, ok := h.Index("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	ext := h.Extend("b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, ext.Names())
	assert.Equal(t, 2, h.Len(), "extend leaves the original alone")
}

func TestRow(t *testing.T) {
	r := record.FromMap(map[string]any{"z": 1, "a": "x"})
	assert.Equal(t, []string{"a", "z"}, r.Header().Names())
	assert.Equal(t, []any{"x", 1}, r.Values())

	v, ok := r.Get("z")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	assert.False(t, r.Set("missing", 1))
	assert.True(t, r.Set("a", "y"))
	assert.Equal(t, map[string]any{"a": "y", "z": 1}, r.Map())

	r.Reset()
	assert.Equal(t, []any{nil, nil}, r.Values())
}

func TestFromMapWithHeader(t *testing.T) {
	h := record.NewHeader("id", "name")
	r := record.FromMapWithHeader(h, map[string]any{"name": "n", "extra": true})
	assert.Equal(t, []any{nil, "n"}, r.Values())
}

func TestRowAsDynamicBag(t *testing.T) {
	r := record.FromMap(map[string]any{"x": "1", "y": "2"})

	n, err := r.ColumnMetadata(1)
	require.NoError(t, err)
	assert.Equal(t, "y", n.ColumnName())

	_, err = r.ColumnValue(2)
	require.ErrorIs(t, err, record.ErrColumnIndex)
	require.ErrorIs(t, r.SetColumnValue(-1, "v"), record.ErrColumnIndex)

	type envelope struct {
		Columns *record.Row
	}

	env := &envelope{Columns: r}

	tbl, err := schema.Resolve(env, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.Names())

	acc, ok := tbl.Lookup("Y")
	require.True(t, ok)
	require.NoError(t, acc.Set(env, "hash"))

	v, _ := r.Get("y")
	assert.Equal(t, "hash", v)

	tbl, err = schema.Resolve(env, true)
	require.NoError(t, err)
	_, ok = tbl.Lookup("Y")
	assert.False(t, ok)
	_, ok = tbl.Lookup("y")
	assert.True(t, ok)
}

func TestArrowRow(t *testing.T) {
	sch := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "qty", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), sch)
	defer b.Release()

	b.Field(0).(*array.StringBuilder).AppendValues([]string{"ann", ""}, []bool{true, false})
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{3, 4}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	row := record.NewArrowRow(rec, 0)
	assert.Equal(t, []string{"name", "qty"}, row.Names())
	assert.Equal(t, 2, row.ColumnCount())

	md, err := row.ColumnMetadata(1)
	require.NoError(t, err)
	assert.Equal(t, "qty", md.ColumnName())

	v, err := row.ColumnValue(0)
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	v, err = row.ColumnValue(1)
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	row.Seek(1)
	v, err = row.ColumnValue(0)
	require.NoError(t, err)
	assert.Nil(t, v)

	row.Seek(5)
	_, err = row.ColumnValue(0)
	require.ErrorIs(t, err, record.ErrColumnIndex)

	require.ErrorIs(t, row.SetColumnValue(0, "x"), record.ErrReadOnly)
}
