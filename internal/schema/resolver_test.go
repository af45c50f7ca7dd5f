package schema

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type column string

func (c column) ColumnName() string { return string(c) }

type testBag struct {
	names   []string
	values  []any
	mdErr   error
	readErr error
}

func newBag(kv ...string) *testBag {
	b := &testBag{}
	for i := 0; i+1 < len(kv); i += 2 {
		b.names = append(b.names, kv[i])
		b.values = append(b.values, kv[i+1])
	}

	return b
}

func (b *testBag) ColumnCount() int { return len(b.names) }

func (b *testBag) ColumnMetadata(i int) (ColumnMetadata, error) {
	if b.mdErr != nil {
		return nil, b.mdErr
	}

	return column(b.names[i]), nil
}

func (b *testBag) ColumnValue(i int) (any, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}

	return b.values[i], nil
}

func (b *testBag) SetColumnValue(i int, v any) error {
	if i < 0 || i >= len(b.values) {
		return fmt.Errorf("column %d out of range", i)
	}

	b.values[i] = v

	return nil
}

type person struct {
	First  string
	Last   *string
	Code   string `rowhash:"customer_code"`
	Secret string `rowhash:"-"`
	hidden string //nolint:unused // must not be resolved
}

type Audit struct {
	Source string
}

type withBag struct {
	Audit
	ID    string
	Extra DynamicBag
	Any   any
}

type typedBag struct {
	Name string
	Row  *testBag
}

func TestResolveStruct(t *testing.T) {
	last := "smith"
	rec := &person{First: "ann", Last: &last, Code: "c1", Secret: "s", hidden: "h"}

	tbl, err := Resolve(rec, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Last", "customer_code"}, tbl.Names())

	acc, ok := tbl.Lookup("FIRST")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[string](), acc.Type())

	v, err := acc.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	v, err = acc.Get(*rec)
	require.NoError(t, err, "value records are readable")
	assert.Equal(t, "ann", v)

	acc, ok = tbl.Lookup("Customer_Code")
	require.True(t, ok)
	require.NoError(t, acc.Set(rec, "c2"))
	assert.Equal(t, "c2", rec.Code)

	acc, ok = tbl.Lookup("last")
	require.True(t, ok)
	require.NoError(t, acc.Set(rec, "jones"))
	assert.Equal(t, "jones", *rec.Last)

	_, ok = tbl.Lookup("secret")
	assert.False(t, ok)
	_, ok = tbl.Lookup("hidden")
	assert.False(t, ok)
}

func TestResolveCaseSensitive(t *testing.T) {
	tbl, err := Resolve(&person{}, true)
	require.NoError(t, err)

	_, ok := tbl.Lookup("first")
	assert.False(t, ok)

	_, ok = tbl.Lookup("First")
	assert.True(t, ok)
	assert.True(t, tbl.CaseSensitive())
}

func TestResolveFlattensBag(t *testing.T) {
	rec := &withBag{
		Audit: Audit{Source: "file.csv"},
		ID:    "7",
		Extra: newBag("x", "1", "y", "2"),
	}

	tbl, err := Resolve(rec, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Source", "ID", "x", "y", "Any"}, tbl.Names())

	_, ok := tbl.Lookup("Extra")
	assert.False(t, ok, "bag member itself is not addressable")

	x, ok := tbl.Lookup("X")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[any](), x.Type())

	v, err := x.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	y, ok := tbl.Lookup("Y")
	require.True(t, ok)
	require.NoError(t, y.Set(rec, "9"))
	assert.Equal(t, "9", rec.Extra.(*testBag).values[1])

	src, ok := tbl.Lookup("source")
	require.True(t, ok)
	v, err = src.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "file.csv", v)
}

func TestResolveFlattensBagCaseSensitive(t *testing.T) {
	rec := &withBag{Extra: newBag("x", "1", "y", "2")}

	tbl, err := Resolve(rec, true)
	require.NoError(t, err)

	x, ok := tbl.Lookup("x")
	require.True(t, ok)
	v, err := x.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	y, ok := tbl.Lookup("y")
	require.True(t, ok)
	v, err = y.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	_, ok = tbl.Lookup("X")
	assert.False(t, ok)
}

func TestResolveRecordIsBagCaseSensitive(t *testing.T) {
	bag := newBag("a", "1")

	tbl, err := Resolve(bag, true)
	require.NoError(t, err)

	_, ok := tbl.Lookup("a")
	assert.True(t, ok)

	_, ok = tbl.Lookup("A")
	assert.False(t, ok)
}

func TestResolveInterfaceFieldHoldingBag(t *testing.T) {
	rec := &withBag{Any: newBag("z", "3")}

	tbl, err := Resolve(rec, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Source", "ID", "z"}, tbl.Names())
	assert.Equal(t, []string{"Extra"}, tbl.EmptyBags())

	z, ok := tbl.Lookup("z")
	require.True(t, ok)
	v, err := z.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestResolveNilTypedBag(t *testing.T) {
	tbl, err := Resolve(&typedBag{Name: "n"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, tbl.Names())
	assert.Equal(t, []string{"Row"}, tbl.EmptyBags())
}

func TestResolveRecordIsBag(t *testing.T) {
	bag := newBag("a", "1", "b", "2")

	tbl, err := Resolve(bag, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	b, ok := tbl.Lookup("B")
	require.True(t, ok)
	v, err := b.Get(bag)
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestResolveCollisionLastWins(t *testing.T) {
	rec := &withBag{ID: "direct", Extra: newBag("id", "dynamic")}

	tbl, err := Resolve(rec, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, tbl.Collisions())

	acc, ok := tbl.Lookup("ID")
	require.True(t, ok)
	v, err := acc.Get(rec)
	require.NoError(t, err)
	assert.Equal(t, "dynamic", v)
}

func TestResolveErrors(t *testing.T) {
	var nilBag *testBag
	var nilPerson *person

	tests := []struct {
		name   string
		record any
		want   error
	}{
		{"nil", nil, ErrUnsupportedRecord},
		{"nil struct pointer", nilPerson, ErrUnsupportedRecord},
		{"nil bag", nilBag, ErrUnsupportedRecord},
		{"scalar", 42, ErrUnsupportedRecord},
		{"map", map[string]any{}, ErrUnsupportedRecord},
		{"metadata failure", &withBag{Extra: &testBag{names: []string{"x"}, mdErr: errors.New("boom")}}, ErrDynamicResolution},
		{"unnamed column", &withBag{Extra: newBag("", "v")}, ErrDynamicResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.record, false)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAccessorInvocationErrors(t *testing.T) {
	rec := &withBag{Extra: newBag("x", "1")}

	tbl, err := Resolve(rec, false)
	require.NoError(t, err)

	x, _ := tbl.Lookup("x")
	id, _ := tbl.Lookup("id")

	// bag swapped out after resolution
	other := &withBag{}
	_, err = x.Get(other)
	require.ErrorIs(t, err, ErrAccessorInvocation)

	rec.Extra.(*testBag).readErr = errors.New("io")
	_, err = x.Get(rec)
	require.ErrorIs(t, err, ErrAccessorInvocation)

	_, err = id.Get(&person{})
	require.ErrorIs(t, err, ErrAccessorInvocation, "different shape")

	err = id.Set(withBag{}, "v")
	require.ErrorIs(t, err, ErrAccessorInvocation, "value records are read-only")

	err = id.Set(rec, 12)
	require.ErrorIs(t, err, ErrAccessorInvocation)
}

func TestCustomTagName(t *testing.T) {
	type tagged struct {
		A string `csv:"alpha"`
	}

	tbl, err := Resolver{TagName: "csv"}.Resolve(tagged{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, tbl.Names())
}
