package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// Materiels guards the status column: Affecté and the back-reference belong to the affectation lifecycle.
type Materiels struct {
	*Table[models.Materiel]
}

func newMateriels(db *gorm.DB) *Materiels {
	return &Materiels{NewTable[models.Materiel](db, "materiel", "num_serie", "num_serie ASC", FilterSpec{
		"typeMateriel": {Column: "type_materiel", Match: MatchEqual},
		"marque":       {Column: "marque", Match: MatchContains},
		"modele":       {Column: "modele", Match: MatchContains},
		"codeBarre":    {Column: "code_barre", Match: MatchEqual},
		"status":       {Column: "status", Match: MatchEqual, Validate: validateStatus},
	})}
}

func validateStatus(s string) error {
	_, err := models.ParseMaterielStatus(s)
	return err
}

func checkClientStatus(st models.MaterielStatus) error {
	if _, err := models.ParseMaterielStatus(string(st)); err != nil {
		return err
	}
	if !st.ClientSettable() {
		return apperrors.Validation("status %q is set by affectations only", st)
	}
	return nil
}

func (m *Materiels) Create(ctx context.Context, v *models.Materiel) error {
	if v.Status == "" {
		v.Status = models.StatusDisponible
	}
	if err := checkClientStatus(v.Status); err != nil {
		return err
	}
	v.RefAffectation = nil
	return m.Table.Create(ctx, v)
}

// Update rejects any status change on an assigned materiel.
func (m *Materiels) Update(ctx context.Context, id string, patch map[string]any) (*models.Materiel, error) {
	if _, ok := patch["ref_affectation"]; ok {
		return nil, apperrors.Validation("refAffectation is set by affectations only")
	}
	raw, changesStatus := patch["status"]
	if changesStatus {
		st, ok := raw.(models.MaterielStatus)
		if !ok {
			return nil, apperrors.Validation("invalid status")
		}
		if err := checkClientStatus(st); err != nil {
			return nil, err
		}
	}
	if len(patch) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	var out *models.Materiel
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Materiel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("num_serie = ?", id).Take(&cur).Error; err != nil {
			return classify(err, m.entity, opRead)
		}
		if changesStatus && assigned(&cur) {
			return apperrors.Conflict("materiel %s is assigned, close its affectation first", id)
		}
		updated, err := m.with(tx).Update(ctx, id, patch)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// assigned reports whether an affectation still holds m. An Affecté materiel whose
// affectation was deleted has a nulled back-reference and can be released by hand.
func assigned(m *models.Materiel) bool {
	return m.Status == models.StatusAffecte && m.RefAffectation != nil
}

// Delete refuses to remove assigned equipment.
func (m *Materiels) Delete(ctx context.Context, id string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Materiel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("num_serie = ?", id).Take(&cur).Error; err != nil {
			return classify(err, m.entity, opRead)
		}
		if assigned(&cur) {
			return apperrors.Conflict("materiel %s is assigned, close its affectation first", id)
		}
		return m.with(tx).Delete(ctx, id)
	})
}

func (m *Materiels) ByStatus(ctx context.Context, status string) ([]models.Materiel, error) {
	st, err := models.ParseMaterielStatus(status)
	if err != nil {
		return nil, err
	}
	return m.Where(ctx, "status = ?", st)
}
