// Package normalize applies per-column case and whitespace rules to field
// values and accumulates the normalized parts of one output group into a
// digest.
package normalize

import "strings"

// Rule is the normalization configured for one column.
type Rule struct {
	Case CaseMode
	Trim bool
}

// IsZero reports whether r leaves every value untouched.
func (r Rule) IsZero() bool {
	return !r.Trim && (r.Case == CaseNone || r.Case == CaseSensitive)
}

// Value applies r to v: case first, then trimming of leading and trailing
// Unicode whitespace. A nil v stays nil.
func Value(v *string, r Rule) *string {
	if v == nil {
		return nil
	}

	s := r.Case.Apply(*v)
	if r.Trim {
		s = strings.TrimSpace(s)
	}

	return &s
}

// Config holds the engine-wide normalization settings.
type Config struct {
	// NullPlaceholder stands in for absent values. It occupies the value's
	// position in the concatenation and is not subject to column rules.
	NullPlaceholder string `yaml:"null_placeholder"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{NullPlaceholder: ""}
}
