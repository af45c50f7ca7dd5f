package schema

import (
	"fmt"
	"reflect"

	"row-hasher/primitive"
)

// FieldAccessor reads and writes one named field of records of a resolved shape.
type FieldAccessor interface {
	Name() string
	// Type is the declared type of the field, or the empty interface type
	// for bag columns whose values are untyped.
	Type() reflect.Type
	Get(record any) (any, error)
	Set(record any, value any) error
}

var anyType = reflect.TypeFor[any]()

// structField addresses a (possibly promoted) exported struct field.
type structField struct {
	name  string
	owner reflect.Type
	field reflect.StructField
}

func (a *structField) Name() string       { return a.name }
func (a *structField) Type() reflect.Type { return a.field.Type }

func (a *structField) locate(record any) (reflect.Value, error) {
	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %q on nil record", ErrAccessorInvocation, a.name)
		}

		rv = rv.Elem()
	}

	if rv.Type() != a.owner {
		return reflect.Value{}, fmt.Errorf("%w: %q resolved on %s, got %s",
			ErrAccessorInvocation, a.name, a.owner, rv.Type())
	}

	fv, err := rv.FieldByIndexErr(a.field.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q: %w", ErrAccessorInvocation, a.name, err)
	}

	return fv, nil
}

func (a *structField) Get(record any) (any, error) {
	fv, err := a.locate(record)
	if err != nil {
		return nil, err
	}

	return fv.Interface(), nil
}

func (a *structField) Set(record any, value any) error {
	if rv := reflect.ValueOf(record); rv.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: %q is not writable on a non-pointer %T", ErrAccessorInvocation, a.name, record)
	}

	fv, err := a.locate(record)
	if err != nil {
		return err
	}

	if err := primitive.Assign(fv, value); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrAccessorInvocation, a.name, err)
	}

	return nil
}

// bagColumn addresses column index of the bag found through parent.
type bagColumn struct {
	name   string
	index  int
	parent FieldAccessor
}

func (a *bagColumn) Name() string       { return a.name }
func (a *bagColumn) Type() reflect.Type { return anyType }

func (a *bagColumn) bag(record any) (DynamicBag, error) {
	v, err := a.parent.Get(record)
	if err != nil {
		return nil, err
	}

	bag, ok := asBag(v)
	if !ok {
		return nil, fmt.Errorf("%w: %q: member %q holds no dynamic bag", ErrAccessorInvocation, a.name, a.parent.Name())
	}

	return bag, nil
}

func (a *bagColumn) Get(record any) (any, error) {
	bag, err := a.bag(record)
	if err != nil {
		return nil, err
	}

	v, err := bag.ColumnValue(a.index)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (column %d): %w", ErrAccessorInvocation, a.name, a.index, err)
	}

	return v, nil
}

func (a *bagColumn) Set(record any, value any) error {
	bag, err := a.bag(record)
	if err != nil {
		return err
	}

	if err := bag.SetColumnValue(a.index, value); err != nil {
		return fmt.Errorf("%w: %q (column %d): %w", ErrAccessorInvocation, a.name, a.index, err)
	}

	return nil
}

// wholeRecord hands out the record itself, for records that are bags.
type wholeRecord struct{}

func (wholeRecord) Name() string                { return "" }
func (wholeRecord) Type() reflect.Type          { return bagType }
func (wholeRecord) Get(record any) (any, error) { return record, nil }

func (wholeRecord) Set(any, any) error {
	return fmt.Errorf("%w: record itself cannot be replaced", ErrAccessorInvocation)
}
