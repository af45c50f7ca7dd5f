package common

import "strings"

// UnknownStr is the fallback name printed for out-of-range enum values.
const UnknownStr = "unknown"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](lo T, value T, hi T) bool {
	return lo <= value && value <= hi
}

// QuoteList renders names as a comma separated list of quoted strings.
func QuoteList(names []string) string {
	var b strings.Builder

	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteByte('"')
		b.WriteString(n)
		b.WriteByte('"')
	}

	return b.String()
}
