package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"row-hasher/internal/engine"
	"row-hasher/internal/mapping"
	"row-hasher/internal/pipeline"
	"row-hasher/internal/record"
)

type checkFlags struct {
	jobFlags
	columns []string
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse a mapping and print its groups",
		Long: `Parse a mapping and print its groups.

With --columns the mapping is also bound to a row with those columns, so
unknown column names are reported the way hash would report them.`,
		Example: `  row-hasher check -m "full=first[UT],last[L]" --columns first,last,tier`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, f)
		},
	}

	fs := cmd.Flags()
	f.addConfig(fs)
	f.addMapping(fs)
	fs.BoolVar(&f.ignoreMissing, "ignore-missing", false, "report unknown columns as warnings")
	fs.StringSliceVar(&f.columns, "columns", nil, "input column names to bind the mapping to")

	return cmd
}

func runCheck(cmd *cobra.Command, f *checkFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	e, err := engine.New(cfg.EngineOptions(nil))
	if err != nil {
		return err
	}

	if len(f.columns) > 0 {
		h := record.NewHeader(f.columns...)
		in := &pipeline.Input{Columns: record.NewRow(h)}
		out := &pipeline.Output{Columns: record.NewRow(h.Extend(e.Configuration().OutputNames()...))}

		if err := e.Resolve(in, out); err != nil {
			return err
		}
	}

	printGroups(cmd.OutOrStdout(), e.Configuration())

	diags := e.Diagnostics()
	for _, d := range diags.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d.Severity, d)
	}

	return nil
}

func printGroups(w io.Writer, c *mapping.Configuration) {
	matching := "case-insensitive"
	if c.CaseSensitive() {
		matching = "case-sensitive"
	}

	fmt.Fprintf(w, "%d groups (%s)\n", c.Len(), matching)

	width := 0
	for _, g := range c.Groups() {
		width = max(width, len(g.OutputName))
	}

	for _, g := range c.Groups() {
		cols := make([]string, len(g.Columns))
		for i, col := range g.Columns {
			cols[i] = col.String()
		}

		fmt.Fprintf(w, "  %-*s  %s\n", width, g.OutputName, strings.Join(cols, ", "))
	}
}
