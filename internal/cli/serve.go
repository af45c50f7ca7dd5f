package cli

import (
	"github.com/spf13/cobra"

	"row-hasher/internal/logging"
	"row-hasher/internal/server"
)

type serveFlags struct {
	jobFlags
	maxRows int
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the hash engine over HTTP",
		Long: `Serve the hash engine over HTTP.

  POST /v1/hash        hash the rows of a JSON request
  GET  /v1/algorithms  list digest algorithms and encodings
  GET  /healthz        liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}

			level, _ := logging.ParseLevel(cfg.LogLevel)
			logger := logging.New(cmd.ErrOrStderr(), level)

			s := server.New(server.Options{MaxRows: f.maxRows, Logger: logger})

			return s.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}

	fs := cmd.Flags()
	f.addConfig(fs)
	f.addServer(fs)
	fs.IntVar(&f.maxRows, "max-rows", server.DefaultMaxRows, "largest number of rows accepted per request")

	return cmd
}
