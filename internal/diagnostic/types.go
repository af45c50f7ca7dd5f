package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"row-hasher/internal/common"
)

// Codes emitted by the mapping parser and the engine.
const (
	CodeDuplicateGroup = "duplicate-group"
	CodeMissingColumn  = "missing-column"
	CodeMissingOutput  = "missing-output"
	CodeEmptyBag       = "empty-bag"
	CodeNameCollision  = "name-collision"
)

// Diagnostics holds all diagnostic information gathered for one mapping.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Group is the output group this relates to (if any).
	Group string
	// Field is the column or field name this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev Severity, code, message, group, field string, suggestions []string) {
	item := Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		Group:       group,
		Field:       field,
		Suggestions: suggestions,
	}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, item)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, item)
	default:
		d.Infos = append(d.Infos, item)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, group, field string) {
	d.add(SeverityError, code, message, group, field, nil)
}

// AddWarning adds a warning diagnostic, optionally carrying suggestions.
func (d *Diagnostics) AddWarning(code, message, group, field string, suggestions ...string) {
	d.add(SeverityWarning, code, message, group, field, suggestions)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, group, field string) {
	d.add(SeverityInfo, code, message, group, field, nil)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic ordered by descending severity.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Clone returns a deep enough copy to be handed out without sharing slices.
func (d *Diagnostics) Clone() Diagnostics {
	var out Diagnostics
	out.Merge(*d)

	return out
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Group != "" {
		prefix = append(prefix, "["+d.Group+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + common.QuoteList(d.Suggestions) + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
