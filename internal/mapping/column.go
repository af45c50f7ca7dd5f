package mapping

import (
	"fmt"
	"strings"

	"row-hasher/internal/normalize"
)

// ColumnSpec is one input column of a group together with its normalization.
type ColumnSpec struct {
	Name string
	Rule normalize.Rule
}

// String renders the column the way it is written in a mapping.
func (c ColumnSpec) String() string {
	return c.Name + FormatFlags(c.Rule)
}

// ParseColumn parses "name" or "name[flags]".
func ParseColumn(expr string) (ColumnSpec, error) {
	expr = strings.TrimSpace(expr)

	open := strings.IndexByte(expr, '[')
	if open < 0 {
		if expr == "" {
			return ColumnSpec{}, fmt.Errorf("%w: empty column name", ErrConfigSyntax)
		}

		if strings.ContainsAny(expr, "]=;") {
			return ColumnSpec{}, fmt.Errorf("%w: invalid column %q", ErrConfigSyntax, expr)
		}

		return ColumnSpec{Name: expr}, nil
	}

	name := strings.TrimSpace(expr[:open])
	if name == "" {
		return ColumnSpec{}, fmt.Errorf("%w: flags without column name in %q", ErrConfigSyntax, expr)
	}

	if !strings.HasSuffix(expr, "]") || strings.Count(expr, "[") != 1 || strings.Count(expr, "]") != 1 {
		return ColumnSpec{}, fmt.Errorf("%w: malformed flag list in %q", ErrConfigSyntax, expr)
	}

	return ColumnSpec{Name: name, Rule: ParseFlags(expr[open+1 : len(expr)-1])}, nil
}

// ParseFlags converts a flag list such as "UT" into a rule.
func ParseFlags(flags string) normalize.Rule {
	flags = strings.ToUpper(flags)

	var r normalize.Rule

	// checked in fixed order, a later case flag overrides an earlier one
	for _, f := range [...]struct {
		flag rune
		mode normalize.CaseMode
	}{
		{'C', normalize.CaseSensitive},
		{'U', normalize.CaseUpper},
		{'L', normalize.CaseLower},
	} {
		if strings.ContainsRune(flags, f.flag) {
			r.Case = f.mode
		}
	}

	r.Trim = strings.ContainsRune(flags, 'T')

	return r
}

// FormatFlags renders r as a bracketed flag list, or "" for a zero rule.
func FormatFlags(r normalize.Rule) string {
	var b strings.Builder

	switch r.Case {
	case normalize.CaseSensitive:
		b.WriteByte('C')
	case normalize.CaseUpper:
		b.WriteByte('U')
	case normalize.CaseLower:
		b.WriteByte('L')
	}

	if r.Trim {
		b.WriteByte('T')
	}

	if b.Len() == 0 {
		return ""
	}

	return "[" + b.String() + "]"
}
