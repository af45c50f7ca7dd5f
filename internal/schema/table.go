package schema

import "row-hasher/internal/match"

// Table maps field names to accessors for one resolved record shape.
type Table struct {
	caseSensitive bool
	byKey         map[string]FieldAccessor
	order         []string
	collisions    []string
	emptyBags     []string
}

func newTable(caseSensitive bool) *Table {
	return &Table{
		caseSensitive: caseSensitive,
		byKey:         make(map[string]FieldAccessor),
	}
}

// add registers acc; a later accessor with the same key replaces the earlier one.
func (t *Table) add(acc FieldAccessor) {
	key := match.Key(acc.Name(), t.caseSensitive)

	if _, seen := t.byKey[key]; seen {
		t.collisions = append(t.collisions, acc.Name())
	} else {
		t.order = append(t.order, key)
	}

	t.byKey[key] = acc
}

// Lookup finds the accessor for name, honoring the table's case sensitivity.
func (t *Table) Lookup(name string) (FieldAccessor, bool) {
	acc, ok := t.byKey[match.Key(name, t.caseSensitive)]

	return acc, ok
}

// Len returns the number of distinct names.
func (t *Table) Len() int {
	return len(t.order)
}

// Names returns accessor names in first-registration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	for i, key := range t.order {
		out[i] = t.byKey[key].Name()
	}

	return out
}

// CaseSensitive reports whether lookups compare names exactly.
func (t *Table) CaseSensitive() bool {
	return t.caseSensitive
}

// Collisions returns the names that replaced an earlier accessor.
func (t *Table) Collisions() []string {
	return t.collisions
}

// EmptyBags returns the members that held a nil bag or a bag without columns.
func (t *Table) EmptyBags() []string {
	return t.emptyBags
}
