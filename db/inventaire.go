package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type Inventaires struct {
	*Table[models.Inventaire]
}

func newInventaires(db *gorm.DB) *Inventaires {
	return &Inventaires{NewTable[models.Inventaire](db, "inventaire", "ref_inventaire", "date_debut DESC, ref_inventaire DESC", FilterSpec{
		"refSalle":  {Column: "ref_salle", Match: MatchEqual},
		"matricule": {Column: "matricule", Match: MatchEqual},
		"statut": {Column: "statut", Match: MatchEqual, Validate: func(s string) error {
			_, err := models.ParseInventaireStatut(s)
			return err
		}},
	})}
}

// Start opens an inventory of a room on behalf of actor.
func (s *Inventaires) Start(ctx context.Context, actor, refSalle, observation string) (*models.Inventaire, error) {
	refSalle = strings.TrimSpace(refSalle)
	if refSalle == "" {
		return nil, apperrors.Validation("refSalle is required")
	}
	if actor == "" {
		return nil, apperrors.Authentication("no authenticated user")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Database(err, "generate inventaire id")
	}
	inv := &models.Inventaire{
		RefInventaire: id.String(),
		RefSalle:      refSalle,
		DateDebut:     models.Today(),
		Matricule:     actor,
		Statut:        models.InventaireEnCours,
		Observation:   observation,
	}
	if err := s.Table.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Close terminates a running inventory. Closing twice is a Conflict.
func (s *Inventaires) Close(ctx context.Context, id string) (*models.Inventaire, error) {
	var out models.Inventaire
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ref_inventaire = ?", id).Take(&out).Error; err != nil {
			return classify(err, s.entity, opRead)
		}
		if out.Statut == models.InventaireTermine {
			return apperrors.Conflict("inventaire %s already closed", id)
		}
		fin := models.Today()
		if err := tx.Model(&models.Inventaire{}).
			Where("ref_inventaire = ?", id).
			Updates(map[string]any{"statut": models.InventaireTermine, "date_fin": fin}).Error; err != nil {
			return classify(err, s.entity, opWrite)
		}
		out.Statut = models.InventaireTermine
		out.DateFin = &fin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
