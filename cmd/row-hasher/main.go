// Package main provides the CLI entrypoint for row-hasher.
//
// row-hasher fingerprints groups of columns in tabular rows:
//   - Parses a group mapping such as "full=first[UT],last[L]"
//   - Normalizes and concatenates the grouped values of each row
//   - Digests and encodes them into one output column per group
//   - Optionally tracks fingerprints across runs in SQLite
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"row-hasher/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)

	cancel()
	os.Exit(cli.ExitCode(err))
}
