package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"row-hasher/internal/config"
	"row-hasher/internal/store"
)

type runsFlags struct {
	state string
	limit int
}

func newRunsCmd() *cobra.Command {
	f := &runsFlags{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs recorded in the fingerprint database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.state, "state", config.DefaultStatePath(), "fingerprint database")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 10, "number of runs to list, 0 for all")

	return cmd
}

func runRuns(cmd *cobra.Command, f *runsFlags) error {
	st, err := store.Open(store.Config{Path: f.state, ReadOnly: true})
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(f.limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		status := labelStyle.Render("running")

		switch {
		case r.Error != "":
			status = changedStyle.Render("failed: " + r.Error)
		case r.FinishedAt != nil:
			status = okStyle.Render("done") + labelStyle.Render(" in "+r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String())
		}

		fmt.Fprintf(w, "%s  %s  %s\n", r.ID, r.StartedAt.Local().Format(time.DateTime), status)
		fmt.Fprintf(w, "    %s  %s/%s  %s\n", r.Source, r.Algorithm, r.Encoding, r.Mapping)
		fmt.Fprintf(w, "    %d rows, %d hashed, %d new, %d changed, %d unchanged\n",
			r.Rows, r.Hashed, r.New, r.Changed, r.Unchanged)
	}

	return nil
}
