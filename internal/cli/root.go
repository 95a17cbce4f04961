// Package cli defines the portfolio-api command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sakif/portfolio-api/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string // optional YAML file
	EnvFile    string // dotenv file, missing is fine
}

func (o *RootOptions) load() (*config.Config, error) {
	return config.Load(o.ConfigPath, o.EnvFile)
}

// NewRootCommand creates the root command. Run without a subcommand it
// behaves like `serve`.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "portfolio-api",
		Short:         "Portfolio backend: profile and contact form REST API",
		Long:          "Serves the owner profile and accepts contact messages over a JSON REST API backed by SQLite.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}
