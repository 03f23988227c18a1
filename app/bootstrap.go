// app/bootstrap.go
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/config"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// CreateUser creates an account for an existing Personne.
func CreateUser(ctx context.Context, repo *db.Repo, matricule, password string, role models.Role) (*models.Utilisateur, error) {
	if _, err := repo.Personnes.Get(ctx, matricule); err != nil {
		return nil, err
	}
	u := &models.Utilisateur{Matricule: matricule, Role: role, Actif: true}
	if err := repo.Utilisateurs.Create(ctx, u, password); err != nil {
		return nil, err
	}
	return u, nil
}

// BootstrapFirstAdmin seeds an admin account when none exists and bootstrap
// credentials are configured. The Personne is created if missing.
func BootstrapFirstAdmin(ctx context.Context, cfg config.BootstrapConfig, repo *db.Repo) error {
	if cfg.AdminMatricule == "" || cfg.AdminPassword == "" {
		return nil
	}
	n, err := repo.Utilisateurs.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := repo.Personnes.Get(ctx, cfg.AdminMatricule); apperrors.Is(err, apperrors.KindNotFound) {
		if err := repo.Personnes.Create(ctx, &models.Personne{
			Matricule: cfg.AdminMatricule,
			Nom:       "Administrateur",
			Prenom:    cfg.AdminMatricule,
		}); err != nil {
			return fmt.Errorf("bootstrap personne: %w", err)
		}
	} else if err != nil {
		return err
	}

	if _, err := CreateUser(ctx, repo, cfg.AdminMatricule, cfg.AdminPassword, models.RoleAdmin); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			// account exists but is not an active admin; leave it to an operator
			logger.Warn("bootstrap skipped, account already exists", zap.String("matricule", cfg.AdminMatricule))
			return nil
		}
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("bootstrap admin created", zap.String("matricule", cfg.AdminMatricule))
	return nil
}
