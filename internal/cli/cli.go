// Package cli provides the row-hasher command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"row-hasher/internal/config"
	"row-hasher/internal/mapping"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Exit codes returned by ExitCode.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "row-hasher",
		Short: "Fingerprint column groups of tabular rows",
		Long: `Fingerprint column groups of tabular rows.

A mapping names output columns and the input columns whose normalized
values are concatenated and digested into them:

  full=first[UT],last[L];idh=id

Flags after a column name: C keeps case, U upper-cases, L lower-cases,
T trims surrounding white space. Later case flags override earlier ones.`,
		SilenceUsage: true,
	}

	root.AddCommand(newHashCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newRunsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithCommit(Commit),
	)
}

// ExitCode maps an Execute error to a process exit code. Mapping syntax
// and configuration errors are usage errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, mapping.ErrConfigSyntax), errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage
	}

	return ExitError
}

func versionInfo() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	return fmt.Sprintf("row-hasher %s (%s) built on %s with %s",
		Version, commit, BuildDate, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionInfo())
		},
	}
}
