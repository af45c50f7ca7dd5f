package match

import (
	"strings"
	"unicode"
)

// Key returns the lookup key for name. Case-insensitive lookups compare
// upper-cased names, so "first", "First" and "FIRST" share one key.
func Key(name string, caseSensitive bool) string {
	if caseSensitive {
		return name
	}

	return strings.ToUpper(name)
}

// Fold lowercases an identifier and strips '_', '-' and spaces, so that
// "first_name", "FirstName" and "first-name" all fold to "firstname".
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
