package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/logging"
)

type rootFlags struct {
	configPath string
	envFile    string
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "weatherfav",
		Short:         "Weather favorites API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), flags)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), flags)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "weatherfav %s (commit %s, built %s)\n", Version, Commit, BuildTime)
			},
		},
	)
	return root
}

// loadConfig reads the dotenv file, if any, then the YAML config with
// environment overrides, and starts file logging.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.envFile != "" {
		// a missing .env is normal outside development
		if err := godotenv.Load(flags.envFile); err == nil {
			logging.Debug("loaded environment from %s", flags.envFile)
		}
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.Log.Dir, logging.ParseLevel(cfg.Log.Level)); err != nil {
		return nil, err
	}
	return cfg, nil
}
