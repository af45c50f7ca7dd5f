package pipeline

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	json "github.com/goccy/go-json"
)

// ErrFilter is returned for filter expressions that fail to compile or
// evaluate to something other than a boolean.
var ErrFilter = errors.New("invalid row filter")

// Filter decides which rows are hashed.
type Filter struct {
	src  string
	prog *vm.Program
}

// NewFilter compiles an expr-lang boolean expression. Column names are
// variables; unknown names evaluate to nil.
func NewFilter(src string) (*Filter, error) {
	prog, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilter, err)
	}

	return &Filter{src: src, prog: prog}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates the filter against env.
func (f *Filter) Match(env map[string]any) (bool, error) {
	out, err := expr.Run(f.prog, env)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrFilter, f.src, err)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q evaluated to %T, want bool", ErrFilter, f.src, out)
	}

	return ok, nil
}

// filterEnv exposes the row's columns plus _line and _source to a filter.
// JSON numbers are handed over as int64 or float64 so they compare numerically.
func filterEnv(in *Input) map[string]any {
	env := map[string]any{
		"_line":   in.Line,
		"_source": in.Source,
	}

	bag := in.Columns
	for i := range bag.ColumnCount() {
		md, err := bag.ColumnMetadata(i)
		if err != nil {
			continue
		}

		v, err := bag.ColumnValue(i)
		if err != nil {
			continue
		}

		env[md.ColumnName()] = plainNumber(v)
	}

	return env
}

func plainNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}

	if i, err := n.Int64(); err == nil {
		return i
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}
