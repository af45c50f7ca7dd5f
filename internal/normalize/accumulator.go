package normalize

import (
	"fmt"
	"strings"

	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
)

// Accumulator collects the normalized parts of one output group for one row.
// It is not safe for concurrent use and is meant to be discarded after Sum.
type Accumulator struct {
	cfg   Config
	parts []*string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator(cfg Config) *Accumulator {
	return &Accumulator{cfg: cfg}
}

// Add normalizes v with r and appends it. Absent values keep their position.
func (a *Accumulator) Add(v *string, r Rule) {
	a.parts = append(a.parts, Value(v, r))
}

// Len returns the number of parts added so far.
func (a *Accumulator) Len() int {
	return len(a.parts)
}

// Content returns the parts joined in insertion order with no separator.
func (a *Accumulator) Content() string {
	var b strings.Builder

	for _, p := range a.parts {
		if p == nil {
			b.WriteString(a.cfg.NullPlaceholder)
			continue
		}

		b.WriteString(*p)
	}

	return b.String()
}

// Sum digests the UTF-8 bytes of Content with alg and renders the result with enc.
func (a *Accumulator) Sum(alg digest.Algorithm, enc encode.Encoding) (string, error) {
	raw, err := digest.Sum(alg, []byte(a.Content()))
	if err != nil {
		return "", fmt.Errorf("failed to digest %d parts: %w", len(a.parts), err)
	}

	return enc.Encode(raw), nil
}
