package schema

import (
	"errors"
	"reflect"
)

var (
	// ErrDynamicResolution is returned when a bag's column metadata cannot be read.
	ErrDynamicResolution = errors.New("dynamic column resolution failed")
	// ErrAccessorInvocation is returned when reading or writing a field fails.
	ErrAccessorInvocation = errors.New("field access failed")
	// ErrUnsupportedRecord is returned for records that are neither structs nor bags.
	ErrUnsupportedRecord = errors.New("unsupported record type")
)

// ColumnMetadata describes one column of a DynamicBag.
type ColumnMetadata interface {
	ColumnName() string
}

// DynamicBag is a container whose columns are discovered per instance.
type DynamicBag interface {
	ColumnCount() int
	ColumnMetadata(index int) (ColumnMetadata, error)
	ColumnValue(index int) (any, error)
	SetColumnValue(index int, value any) error
}

var bagType = reflect.TypeFor[DynamicBag]()

// asBag returns v as a bag, treating typed nil pointers as absent.
func asBag(v any) (DynamicBag, bool) {
	bag, ok := v.(DynamicBag)
	if !ok || bag == nil {
		return nil, false
	}

	if rv := reflect.ValueOf(bag); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}

	return bag, true
}
