package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

func createUserCmd() *cobra.Command {
	var matricule, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a login account for an existing person",
		Long: `Create a login account for a person already registered in the personnes table.

Examples:
  inventaire create-user --matricule A001 --password 'changeme!' --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := models.ParseRole(role)
			if err != nil {
				return err
			}
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

			u, err := app.CreateUser(cmd.Context(), db.NewRepo(conn), matricule, password, r)
			if err != nil {
				return err
			}
			logger.Info("user created", zap.String("matricule", u.Matricule), zap.String("role", string(u.Role)))
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Matricule, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&matricule, "matricule", "", "matricule of the person")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleConsultant), "admin, gestionnaire or consultant")
	_ = cmd.MarkFlagRequired("matricule")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
