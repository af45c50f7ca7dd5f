package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"row-hasher/internal/diagnostic"
	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
	"row-hasher/internal/mapping"
	"row-hasher/internal/match"
	"row-hasher/internal/normalize"
	"row-hasher/internal/schema"
	"row-hasher/primitive"
)

// ErrUnresolvedField is returned when a configured column or output group
// has no matching field and missing columns are not ignored.
var ErrUnresolvedField = errors.New("unresolved field")

// Options configures an Engine.
type Options struct {
	Normalize normalize.Config
	// Mapping is the group definition, e.g. "full=first[UT],last[L]".
	Mapping string
	// CaseSensitive makes group and column lookups compare names exactly.
	CaseSensitive bool
	// IgnoreMissingColumns skips unknown columns and output groups instead of failing.
	IgnoreMissingColumns bool
	Logger               *slog.Logger
}

// Written lists the output fields written for one row, in group order.
type Written []string

func (w Written) String() string {
	return strings.Join(w, ",")
}

// binding is one group bound to concrete accessors. A nil column accessor
// is a skipped column; a nil target skips the whole group.
type binding struct {
	group   mapping.GroupSpec
	columns []schema.FieldAccessor
	target  schema.FieldAccessor
}

// Engine hashes column groups of input records into output records.
type Engine struct {
	opts     Options
	config   *mapping.Configuration
	logger   *slog.Logger
	resolver schema.Resolver

	mu       sync.Mutex
	resolved bool
	err      error
	bindings []binding
	input    *schema.Table
	output   *schema.Table
	diags    diagnostic.Diagnostics
}

// New parses the mapping and returns an unresolved engine.
func New(opts Options) (*Engine, error) {
	cfg, err := mapping.Parse(opts.Mapping, opts.CaseSensitive)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		opts:   opts,
		config: cfg,
		logger: logger,
		resolver: schema.Resolver{
			CaseSensitive: opts.CaseSensitive,
			Logger:        logger,
		},
	}
	e.diags.Merge(cfg.Diagnostics())

	for _, w := range cfg.Diagnostics().Warnings {
		logger.Warn("mapping", slog.String("diagnostic", w.String()))
	}

	return e, nil
}

// Configuration returns the parsed mapping.
func (e *Engine) Configuration() *mapping.Configuration {
	return e.config
}

// Resolved reports whether the engine has bound its mapping to record shapes.
func (e *Engine) Resolved() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.resolved
}

// Tables returns the input and output accessor tables, or nils before resolution.
func (e *Engine) Tables() (in, out *schema.Table) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.input, e.output
}

// Diagnostics returns what was noted while parsing and binding the mapping.
func (e *Engine) Diagnostics() diagnostic.Diagnostics {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.diags.Clone()
}

// Resolve binds the mapping to the shapes of in and out. It runs at most
// once; later calls return the first outcome. ProcessRow calls it
// implicitly, so calling it directly is only needed to bind before
// processing rows from several goroutines.
func (e *Engine) Resolve(in, out any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.resolveLocked(in, out)
}

func (e *Engine) resolveLocked(in, out any) error {
	if e.resolved || e.err != nil {
		return e.err
	}

	if e.config.IsEmpty() {
		e.resolved = true
		return nil
	}

	bindings, input, output, err := e.bind(in, out)
	if err != nil {
		e.err = err
		e.logger.Error("mapping resolution failed", slog.Any("error", err))

		return err
	}

	e.bindings = bindings
	e.input, e.output = input, output
	e.resolved = true

	e.logger.Debug("mapping resolved",
		slog.Int("groups", len(bindings)),
		slog.Int("input_fields", e.input.Len()),
		slog.Int("output_fields", e.output.Len()))

	return nil
}

// bind leaves e.input and e.output untouched; the caller stores the tables
// only once every group is bound.
func (e *Engine) bind(in, out any) ([]binding, *schema.Table, *schema.Table, error) {
	input, err := e.resolver.Resolve(in)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve input record: %w", err)
	}

	e.noteTable("input", input)

	groups := e.config.Groups()
	bindings := make([]binding, len(groups))

	for i, g := range groups {
		bindings[i] = binding{group: g, columns: make([]schema.FieldAccessor, len(g.Columns))}

		for j, col := range g.Columns {
			acc, ok := input.Lookup(col.Name)
			if ok {
				bindings[i].columns[j] = acc
				continue
			}

			hint := match.Suggest(col.Name, input.Names(), 3)
			if !e.opts.IgnoreMissingColumns {
				return nil, nil, nil, unresolved("column", col.Name, "input", hint)
			}

			e.diags.AddWarning(diagnostic.CodeMissingColumn, "column not in input, skipped", g.OutputName, col.Name, hint...)
			e.logger.Warn("skipping missing column", slog.String("group", g.OutputName), slog.String("column", col.Name))
		}
	}

	output, err := e.resolver.Resolve(out)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve output record: %w", err)
	}

	e.noteTable("output", output)

	for i := range bindings {
		name := bindings[i].group.OutputName

		acc, ok := output.Lookup(name)
		if ok {
			bindings[i].target = acc
			continue
		}

		hint := match.Suggest(name, output.Names(), 3)
		if !e.opts.IgnoreMissingColumns {
			return nil, nil, nil, unresolved("group", name, "output", hint)
		}

		e.diags.AddWarning(diagnostic.CodeMissingOutput, "group not in output, skipped", name, "", hint...)
		e.logger.Warn("skipping group without output field", slog.String("group", name))
	}

	return bindings, input, output, nil
}

func (e *Engine) noteTable(side string, t *schema.Table) {
	for _, name := range t.Collisions() {
		e.diags.AddInfo(diagnostic.CodeNameCollision, side+" field shadows an earlier one", "", name)
	}

	for _, member := range t.EmptyBags() {
		e.diags.AddInfo(diagnostic.CodeEmptyBag, side+" dynamic member has no columns", "", member)
	}
}

func unresolved(what, name, side string, hint []string) error {
	if len(hint) > 0 {
		return fmt.Errorf("%w: %s %q is not part of the %s record (did you mean %q?)",
			ErrUnresolvedField, what, name, side, hint[0])
	}

	return fmt.Errorf("%w: %s %q is not part of the %s record", ErrUnresolvedField, what, name, side)
}

// ProcessRow hashes every group of in and writes the digests into out,
// binding the mapping on the first call. It returns the output fields
// written, in group order.
func (e *Engine) ProcessRow(in, out any, alg digest.Algorithm, enc encode.Encoding) (Written, error) {
	e.mu.Lock()
	err := e.resolveLocked(in, out)
	bindings := e.bindings
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}

	written := make(Written, 0, len(bindings))

	for _, b := range bindings {
		if b.target == nil {
			continue
		}

		sum, err := e.hashGroup(b, in, alg, enc)
		if err != nil {
			return written, err
		}

		if err := b.target.Set(out, sum); err != nil {
			return written, fmt.Errorf("failed to write group %q: %w", b.group.OutputName, err)
		}

		written = append(written, b.group.OutputName)
	}

	return written, nil
}

func (e *Engine) hashGroup(b binding, in any, alg digest.Algorithm, enc encode.Encoding) (string, error) {
	acc := normalize.NewAccumulator(e.opts.Normalize)

	for j, col := range b.group.Columns {
		field := b.columns[j]
		if field == nil {
			continue
		}

		v, err := field.Get(in)
		if err != nil {
			return "", fmt.Errorf("failed to read column %q of group %q: %w", col.Name, b.group.OutputName, err)
		}

		var value *string
		if text, ok := primitive.Text(v); ok {
			value = &text
		}

		acc.Add(value, col.Rule)
	}

	sum, err := acc.Sum(alg, enc)
	if err != nil {
		return "", fmt.Errorf("failed to hash group %q: %w", b.group.OutputName, err)
	}

	return sum, nil
}
