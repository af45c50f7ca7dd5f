package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"row-hasher/internal/config"
	"row-hasher/internal/logging"
	"row-hasher/internal/pipeline"
	"row-hasher/internal/store"
)

type hashFlags struct {
	jobFlags
	input       string
	output      string
	changedOnly bool
	dryRun      bool
	quiet       bool
	debug       bool
}

func newHashCmd() *cobra.Command {
	f := &hashFlags{}

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash column groups of every input row",
		Long: `Hash column groups of every input row.

Rows are read from --input (standard input by default) and written to
--output (standard output by default) with one extra column per group.
With --state, group hashes are compared against the previous run and a
new, changed or unchanged count is reported; --changed-only then writes
only rows with at least one new or changed group.`,
		Example: `  row-hasher hash -m "full=first[UT],last[L]" -i customers.csv
  row-hasher hash --config job.yaml --state --key id --changed-only -i today.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHash(cmd, f)
		},
	}

	fs := cmd.Flags()
	f.addConfig(fs)
	f.addMapping(fs)
	f.addHashing(fs)
	f.addPipeline(fs)
	fs.StringVarP(&f.input, "input", "i", "-", "input file, - for standard input")
	fs.StringVarP(&f.output, "output", "o", "-", "output file, - for standard output")
	fs.BoolVar(&f.changedOnly, "changed-only", false, "write only new or changed rows (needs --state)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "compare against --state without recording fingerprints")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the run summary")
	fs.BoolVar(&f.debug, "debug", false, "log at debug level and dump the job configuration")

	return cmd
}

func runHash(cmd *cobra.Command, f *hashFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	if f.debug {
		level = slog.LevelDebug
	}

	logger := logging.New(cmd.ErrOrStderr(), level)

	if f.debug {
		logger.Debug("job configuration", slog.String("config", spew.Sdump(cfg)))
	}

	alg, _ := cfg.HashAlgorithm()
	enc, _ := cfg.OutputEncoding()

	format, err := pickFormat(cfg.Format, f.input, cmd.Flags().Changed("format"))
	if err != nil {
		return err
	}

	in, err := openInput(cmd, f.input)
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := pipeline.NewReader(format, in, pipeline.ReaderOptions{NullLiteral: cfg.NullLiteral})
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := openOutput(cmd, f.output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := pipeline.NewWriter(format, out, pipeline.WriterOptions{NullLiteral: cfg.NullLiteral})
	if err != nil {
		return err
	}

	source := sourceName(f.input)
	opts := pipeline.Options{
		Engine:      cfg.EngineOptions(logger),
		Algorithm:   alg,
		Encoding:    enc,
		Source:      source,
		Where:       cfg.Where,
		KeyColumn:   cfg.KeyColumn,
		ChangedOnly: f.changedOnly,
		Logger:      logger,
	}

	var (
		st  *store.Store
		run *store.Run
	)

	if cfg.StatePath != "" {
		st, err = store.Open(store.Config{Path: cfg.StatePath, Debug: f.debug, ReadOnly: f.dryRun})
		if err != nil {
			return err
		}
		defer st.Close()

		run = &store.Run{
			Source:    source,
			Mapping:   cfg.Mapping,
			Algorithm: alg.String(),
			Encoding:  enc.String(),
		}
		if err := st.BeginRun(run); err != nil {
			return err
		}

		opts.Tracker = st.Tracker(run)
		logger.Debug("tracking fingerprints", slog.String("state", cfg.StatePath), slog.String("run", run.ID))
	}

	sum, runErr := pipeline.Run(cmd.Context(), r, w, opts)
	if runErr == nil {
		runErr = w.Close()
	}

	if run != nil {
		recordRun(run, sum, runErr)

		if err := st.FinishRun(run); err != nil {
			logger.Warn("failed to record run", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return runErr
	}

	if !f.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(sum, run != nil))
	}

	return nil
}

func recordRun(run *store.Run, sum pipeline.Summary, err error) {
	run.Rows = sum.Rows
	run.Hashed = sum.Hashed
	run.Filtered = sum.Filtered
	run.New = sum.New
	run.Changed = sum.Changed
	run.Unchanged = sum.Unchanged

	if err != nil {
		run.Error = err.Error()
	}
}

// pickFormat prefers an explicit --format, then the input file extension,
// then the configured format.
func pickFormat(configured, input string, explicit bool) (pipeline.Format, error) {
	if !explicit && input != "-" {
		if f, err := pipeline.DetectFormat(input); err == nil {
			return f, nil
		}
	}

	f, err := pipeline.ParseFormat(configured)
	if err != nil {
		return "", fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	return f, nil
}

func sourceName(input string) string {
	if input == "-" {
		return "stdin"
	}

	if abs, err := filepath.Abs(input); err == nil {
		return abs
	}

	return input
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	return f, nil
}
