package primitive

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// Text renders v as digest input. ok is false when v is absent: a nil
// interface, nil pointer or nil byte slice.
//
// Times use RFC 3339 with nanoseconds, durations their "2h45m0s" form,
// types with a String method that method, byte slices their raw content,
// and scalars their strconv form. Anything else falls back to fmt.
func Text(v any) (text string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		if x == nil {
			return "", false
		}

		return string(x), true
	case time.Time:
		return x.Format(time.RFC3339Nano), true
	case time.Duration:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		// String declared on the pointer receiver only
		if s, isStringer := v.(fmt.Stringer); isStringer && !rv.Type().Elem().Implements(stringerType) {
			return s.String(), true
		}

		return Text(rv.Elem().Interface())
	}

	if s, isStringer := v.(fmt.Stringer); isStringer {
		return s.String(), true
	}

	switch kind := KindOf(rv.Type()); {
	case kind == KindString:
		return rv.String(), true
	case kind == KindBytes:
		if rv.IsNil() {
			return "", false
		}

		return string(rv.Bytes()), true
	case kind == KindBool:
		return strconv.FormatBool(rv.Bool()), true
	case kind.IsSigned():
		return strconv.FormatInt(rv.Int(), 10), true
	case kind.IsUnsigned():
		return strconv.FormatUint(rv.Uint(), 10), true
	case kind.IsFloat():
		return strconv.FormatFloat(rv.Float(), 'g', -1, kind.Bits()), true
	}

	return fmt.Sprint(v), true
}
