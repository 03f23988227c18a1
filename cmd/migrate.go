package cmd

import (
	"github.com/spf13/cobra"

	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables, constraints and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			conn, err := db.Connect(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if err := db.Migrate(conn); err != nil {
				return err
			}
			logger.Info("migration complete")
			return nil
		},
	}
}
