package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/portfolio-api/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server on PORT and serve until SIGINT or SIGTERM.

The SQLite database at DB_PATH is created on first start and seeded with a
default profile when it holds none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rootOpts, cmd.ErrOrStderr())
		},
	}
}

// runServe builds the server from the loaded configuration and blocks
// until it shuts down. Logs go to logOut.
func runServe(ctx context.Context, opts *RootOptions, logOut io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(logOut)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		return err
	}

	// Start blocks until the server is shut down (via Ctrl+C or SIGTERM)
	return srv.Start(ctx)
}
