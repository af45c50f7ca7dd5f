package schema

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// DefaultTagName is the struct tag consulted for field names.
const DefaultTagName = "rowhash"

// Resolver builds accessor tables from record instances.
type Resolver struct {
	CaseSensitive bool
	// TagName overrides DefaultTagName. A tag value of "-" hides a field.
	TagName string
	Logger  *slog.Logger
}

// Resolve builds a table for record with the default resolver settings.
func Resolve(record any, caseSensitive bool) (*Table, error) {
	return Resolver{CaseSensitive: caseSensitive}.Resolve(record)
}

// Resolve builds the accessor table for the shape of record.
func (r Resolver) Resolve(record any) (*Table, error) {
	t := newTable(r.CaseSensitive)

	if _, isBag := record.(DynamicBag); isBag {
		bag, ok := asBag(record)
		if !ok {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedRecord, record)
		}

		if err := r.flatten(t, "", bag, wholeRecord{}); err != nil {
			return nil, err
		}

		return t, nil
	}

	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedRecord, record)
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is neither a struct nor a dynamic bag", ErrUnsupportedRecord, record)
	}

	if err := r.resolveStruct(t, rv); err != nil {
		return nil, err
	}

	return t, nil
}

func (r Resolver) resolveStruct(t *Table, rv reflect.Value) error {
	rt := rv.Type()

	for _, f := range reflect.VisibleFields(rt) {
		if !f.IsExported() || isPromotingEmbed(f) {
			continue
		}

		name, ok := r.fieldName(f)
		if !ok {
			continue
		}

		acc := &structField{name: name, owner: rt, field: f}

		bag, isMember := r.bagMember(rv, f)
		if !isMember {
			t.add(acc)
			continue
		}

		if err := r.flatten(t, name, bag, acc); err != nil {
			return err
		}
	}

	return nil
}

// bagMember reports whether f is a dynamic member and, if so, the bag it
// currently holds. Fields declared as a bag type are members even when nil;
// other interface fields are members only while they hold a bag.
func (r Resolver) bagMember(rv reflect.Value, f reflect.StructField) (DynamicBag, bool) {
	declared := f.Type.Implements(bagType)
	if !declared && f.Type.Kind() != reflect.Interface {
		return nil, false
	}

	fv, err := rv.FieldByIndexErr(f.Index)
	if err != nil {
		// nil embedded pointer on the way, nothing to inspect
		return nil, declared
	}

	bag, ok := asBag(fv.Interface())
	if !ok {
		return nil, declared
	}

	return bag, true
}

func (r Resolver) flatten(t *Table, member string, bag DynamicBag, parent FieldAccessor) error {
	if bag == nil {
		r.logger().Debug("dynamic member holds no bag", slog.String("member", member))
		t.emptyBags = append(t.emptyBags, member)

		return nil
	}

	n := bag.ColumnCount()
	if n == 0 {
		t.emptyBags = append(t.emptyBags, member)
	}

	for i := range n {
		md, err := bag.ColumnMetadata(i)
		if err != nil {
			return fmt.Errorf("%w: member %q column %d: %w", ErrDynamicResolution, member, i, err)
		}

		if md == nil || md.ColumnName() == "" {
			return fmt.Errorf("%w: member %q column %d has no name", ErrDynamicResolution, member, i)
		}

		t.add(&bagColumn{name: md.ColumnName(), index: i, parent: parent})
	}

	r.logger().Debug("flattened dynamic member", slog.String("member", member), slog.Int("columns", n))

	return nil
}

func (r Resolver) fieldName(f reflect.StructField) (string, bool) {
	tagName := r.TagName
	if tagName == "" {
		tagName = DefaultTagName
	}

	tag, _, _ := strings.Cut(f.Tag.Get(tagName), ",")

	switch tag {
	case "-":
		return "", false
	case "":
		return f.Name, true
	default:
		return tag, true
	}
}

func (r Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}

// isPromotingEmbed reports embedded structs, whose fields VisibleFields
// already lists individually.
func isPromotingEmbed(f reflect.StructField) bool {
	if !f.Anonymous {
		return false
	}

	t := f.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct && !f.Type.Implements(bagType)
}
