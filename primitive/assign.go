package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// ErrUnassignable is returned when a value cannot be stored into a destination.
var ErrUnassignable = errors.New("value is not assignable")

// Assign stores v into dst. Values assignable to dst's type are stored as
// is; strings are parsed into the destination kind. Nil pointers along the
// way are allocated.
func Assign(dst reflect.Value, v any) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: destination of type %s is not settable", ErrUnassignable, dst.Type())
	}

	if v == nil {
		dst.SetZero()
		return nil
	}

	src := reflect.ValueOf(v)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}

	if dst.Kind() == reflect.Pointer {
		elem := reflect.New(dst.Type().Elem())
		if err := Assign(elem.Elem(), v); err != nil {
			return err
		}

		dst.Set(elem)

		return nil
	}

	text, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: %T into %s", ErrUnassignable, v, dst.Type())
	}

	if err := assignText(dst, text); err != nil {
		return fmt.Errorf("%w: %q into %s: %w", ErrUnassignable, text, dst.Type(), err)
	}

	return nil
}

var errNoTextForm = errors.New("no textual form")

func assignText(dst reflect.Value, text string) error {
	kind := KindOf(dst.Type())

	switch {
	case kind == KindString:
		dst.SetString(text)
	case kind == KindBytes:
		dst.SetBytes([]byte(text))
	case kind == KindTime:
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return err
		}

		dst.Set(reflect.ValueOf(t))
	case kind == KindDuration:
		d, err := time.ParseDuration(text)
		if err != nil {
			return err
		}

		dst.SetInt(int64(d))
	case kind == KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}

		dst.SetBool(b)
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return err
		}

		dst.SetInt(n)
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return err
		}

		dst.SetUint(n)
	case kind.IsFloat():
		f, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return err
		}

		dst.SetFloat(f)
	default:
		return errNoTextForm
	}

	return nil
}
