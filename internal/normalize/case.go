package normalize

import "strings"

//go:generate go tool stringer -type=CaseMode -output=casemode_string.go

// CaseMode selects the case transformation applied to a value.
type CaseMode int

const (
	CaseNone      CaseMode = iota // not configured
	CaseSensitive                 // explicit no-op, documents intent
	CaseUpper
	CaseLower

	caseModeTotal = int(iota)
)

func identity(s string) string { return s }

var caseFuncs = [caseModeTotal]func(string) string{
	CaseNone:      identity,
	CaseSensitive: identity,
	CaseUpper:     strings.ToUpper,
	CaseLower:     strings.ToLower,
}

// Apply transforms s according to m. Undeclared modes leave s untouched.
func (m CaseMode) Apply(s string) string {
	if m < 0 || int(m) >= caseModeTotal {
		return s
	}

	return caseFuncs[m](s)
}
