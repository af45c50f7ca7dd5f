package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
	"row-hasher/internal/engine"
	"row-hasher/internal/record"
	"row-hasher/internal/store"
	"row-hasher/primitive"
)

// Tracker classifies a group hash against what an earlier run recorded.
type Tracker interface {
	Compare(rowKey, group, hash string) (store.Status, error)
}

// Options configures Run.
type Options struct {
	Engine    engine.Options
	Algorithm digest.Algorithm
	Encoding  encode.Encoding
	// Source names the input in _source and in tracked fingerprints.
	Source string
	// Where is an optional expr-lang filter; rows for which it is false are skipped.
	Where string
	// Tracker, when set, classifies every written group hash.
	Tracker Tracker
	// KeyColumn identifies rows for the tracker. Empty means "_line".
	KeyColumn string
	// ChangedOnly writes only rows with at least one new or changed group.
	// It requires a Tracker.
	ChangedOnly bool
	Logger      *slog.Logger
}

// Summary counts what Run did.
type Summary struct {
	Rows      int64
	Hashed    int64
	Filtered  int64
	Written   int64
	New       int64
	Changed   int64
	Unchanged int64
	Groups    engine.Written
	Duration  time.Duration
}

func (s *Summary) count(st store.Status) {
	switch st {
	case store.StatusNew:
		s.New++
	case store.StatusChanged:
		s.Changed++
	case store.StatusUnchanged:
		s.Unchanged++
	}
}

// Run hashes every row of r and writes the results to w. It stops at the
// first error, returning the summary of the rows processed so far.
func Run(ctx context.Context, r Reader, w Writer, opts Options) (sum Summary, err error) {
	start := time.Now()

	defer func() { sum.Duration = time.Since(start) }()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.ChangedOnly && opts.Tracker == nil {
		return sum, errors.New("changed-only output needs a fingerprint store")
	}

	engOpts := opts.Engine
	engOpts.Logger = logger

	e, err := engine.New(engOpts)
	if err != nil {
		return sum, err
	}

	var filter *Filter
	if opts.Where != "" {
		if filter, err = NewFilter(opts.Where); err != nil {
			return sum, err
		}
	}

	keyColumn := opts.KeyColumn
	if keyColumn == "" {
		keyColumn = "_line"
	}

	var header *record.Header

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		sum.Rows++

		in := &Input{Line: sum.Rows, Source: opts.Source, Columns: r.Row()}

		if filter != nil {
			ok, err := filter.Match(filterEnv(in))
			if err != nil {
				return sum, fmt.Errorf("line %d: %w", in.Line, err)
			}

			if !ok {
				sum.Filtered++
				continue
			}
		}

		if header == nil {
			if header, err = writeHeader(w, r, e); err != nil {
				return sum, err
			}
		}

		out, err := NewOutput(header, in.Columns)
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", in.Line, err)
		}

		written, err := e.ProcessRow(in, out, opts.Algorithm, opts.Encoding)
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", in.Line, err)
		}

		sum.Hashed++
		if sum.Groups == nil {
			sum.Groups = written
		}

		emit := true

		if opts.Tracker != nil {
			changed, err := track(opts.Tracker, &sum, in, out, written, keyColumn)
			if err != nil {
				return sum, fmt.Errorf("line %d: %w", in.Line, err)
			}

			emit = changed || !opts.ChangedOnly
		}

		if !emit {
			continue
		}

		if err := w.Write(out.Columns); err != nil {
			return sum, fmt.Errorf("line %d: %w", in.Line, err)
		}

		sum.Written++
	}

	if err := r.Err(); err != nil {
		return sum, err
	}

	if header == nil && len(r.Names()) > 0 {
		if _, err := writeHeader(w, r, e); err != nil {
			return sum, err
		}
	}

	logger.Info("pipeline finished",
		slog.Int64("rows", sum.Rows),
		slog.Int64("hashed", sum.Hashed),
		slog.Int64("filtered", sum.Filtered),
		slog.String("groups", sum.Groups.String()))

	return sum, nil
}

// writeHeader lays out the output header: the input columns followed by
// the group outputs the input lacks.
func writeHeader(w Writer, r Reader, e *engine.Engine) (*record.Header, error) {
	header := record.NewHeader(r.Names()...).Extend(e.Configuration().OutputNames()...)

	if hw, ok := w.(HeaderWriter); ok {
		if err := hw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	return header, nil
}

// track classifies the written groups of one row and reports whether any
// of them is new or changed.
func track(t Tracker, sum *Summary, in *Input, out *Output, written engine.Written, keyColumn string) (bool, error) {
	key, err := rowKey(in, keyColumn)
	if err != nil {
		return false, err
	}

	changed := false

	for _, group := range written {
		v, _ := out.Columns.Get(group)
		hash, _ := primitive.Text(v)

		st, err := t.Compare(key, group, hash)
		if err != nil {
			return false, err
		}

		sum.count(st)
		changed = changed || st != store.StatusUnchanged
	}

	return changed, nil
}

func rowKey(in *Input, column string) (string, error) {
	if column == "_line" {
		return strconv.FormatInt(in.Line, 10), nil
	}

	for i := range in.Columns.ColumnCount() {
		md, err := in.Columns.ColumnMetadata(i)
		if err != nil {
			return "", err
		}

		if md.ColumnName() != column {
			continue
		}

		v, err := in.Columns.ColumnValue(i)
		if err != nil {
			return "", err
		}

		key, ok := primitive.Text(v)
		if !ok || key == "" {
			return "", fmt.Errorf("key column %q is empty", column)
		}

		return key, nil
	}

	return "", fmt.Errorf("key column %q is not part of the input", column)
}
