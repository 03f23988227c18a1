// Package cmd is the command-line entry point: the HTTP server plus maintenance commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheReasonWePlay/FTVN-sub001/config"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inventaire",
		Short: "Equipment inventory and assignment service",
		Long: `inventaire tracks people, rooms, network positions and equipment,
and the assignments of equipment to people or positions.

Configuration comes from config.yaml, .env and the environment.`,
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(createUserCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes the global logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}
