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

const affectationEntity = "affectation"

// Affectations owns the assignment lifecycle and the materiel fields it drives.
type Affectations struct {
	db *gorm.DB
}

// NewAffectation is the create input. Exactly one target must be set.
type NewAffectation struct {
	Matricule   *string
	RefPosition *string
	NumSerie    string
}

// AffectationTarget is the update input; nil means not supplied.
type AffectationTarget struct {
	Matricule   *string
	RefPosition *string
}

// AffectationQuery narrows a search. Zero fields are ignored; From and To are inclusive on dateDebut.
type AffectationQuery struct {
	From, To    *models.Date
	Matricule   string
	RefPosition string
	RefSalle    string
	Limit       int
}

func (q AffectationQuery) validate() error {
	if q.From != nil && q.To != nil && q.From.After(q.To.Time) {
		return apperrors.Validation("startDate must not be after endDate")
	}
	if q.Limit < 0 {
		return apperrors.Validation("limit must not be negative")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Create binds an available materiel to a new affectation in one transaction
// and returns the generated id.
func (s *Affectations) Create(ctx context.Context, in NewAffectation) (string, error) {
	if err := models.ValidateAffectationTarget(in.Matricule, in.RefPosition); err != nil {
		return "", err
	}
	numSerie := strings.TrimSpace(in.NumSerie)
	if numSerie == "" {
		return "", apperrors.Validation("numSerie is required")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", apperrors.Database(err, "generate affectation id")
	}

	a := models.Affectation{
		RefAffectation: id.String(),
		DateDebut:      models.Today(),
		Matricule:      trimmed(in.Matricule),
		RefPosition:    trimmed(in.RefPosition),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Materiel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("num_serie = ?", numSerie).Take(&m).Error; err != nil {
			return classify(err, "materiel", opRead)
		}
		if m.Status != models.StatusDisponible {
			return apperrors.Conflict("equipment not available (status %s)", m.Status)
		}
		if err := tx.Create(&a).Error; err != nil {
			return classify(err, affectationEntity, opWrite)
		}
		return markMateriel(tx, numSerie, models.StatusAffecte, &a.RefAffectation)
	})
	if err != nil {
		return "", err
	}
	return a.RefAffectation, nil
}

// Update switches the target. The supplied combination alone must hold exactly
// one target; the other column is cleared.
func (s *Affectations) Update(ctx context.Context, id string, in AffectationTarget) (*models.AffectationRow, error) {
	if in.Matricule == nil && in.RefPosition == nil {
		return nil, apperrors.Validation("matricule or refPosition is required")
	}
	if err := models.ValidateAffectationTarget(in.Matricule, in.RefPosition); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.Affectation{}).
		Where("ref_affectation = ?", id).
		Updates(map[string]any{
			"matricule":    trimmed(in.Matricule),
			"ref_position": trimmed(in.RefPosition),
		})
	if res.Error != nil {
		return nil, classify(res.Error, affectationEntity, opWrite)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("affectation not found")
	}
	return s.Get(ctx, id)
}

// Close ends an open affectation and releases its materiel in one transaction.
func (s *Affectations) Close(ctx context.Context, id, numSerie string) error {
	numSerie = strings.TrimSpace(numSerie)
	if numSerie == "" {
		return apperrors.Validation("idMateriel is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Affectation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ref_affectation = ?", id).Take(&a).Error; err != nil {
			return classify(err, affectationEntity, opRead)
		}
		if !a.Open() {
			return apperrors.Conflict("affectation %s already closed", id)
		}

		var m models.Materiel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("num_serie = ?", numSerie).Take(&m).Error; err != nil {
			return classify(err, "materiel", opRead)
		}
		if err := checkReleasable(tx, &m, id); err != nil {
			return err
		}

		if err := tx.Model(&models.Affectation{}).
			Where("ref_affectation = ?", id).
			Update("date_fin", models.Today()).Error; err != nil {
			return classify(err, affectationEntity, opWrite)
		}
		return markMateriel(tx, numSerie, models.StatusDisponible, nil)
	})
}

// checkReleasable accepts the materiel bound to id, or an Affecté materiel whose
// back-reference was already nulled when nothing else is bound to id.
func checkReleasable(tx *gorm.DB, m *models.Materiel, id string) error {
	if m.RefAffectation != nil {
		if *m.RefAffectation != id {
			return apperrors.Conflict("materiel %s is bound to another affectation", m.NumSerie)
		}
		return nil
	}
	if m.Status != models.StatusAffecte {
		return apperrors.Conflict("materiel %s is not bound to affectation %s", m.NumSerie, id)
	}
	var bound int64
	if err := tx.Model(&models.Materiel{}).Where("ref_affectation = ?", id).Count(&bound).Error; err != nil {
		return classify(err, "materiel", opRead)
	}
	if bound > 0 {
		return apperrors.Conflict("materiel %s is not bound to affectation %s", m.NumSerie, id)
	}
	return nil
}

func markMateriel(tx *gorm.DB, numSerie string, status models.MaterielStatus, ref *string) error {
	err := tx.Model(&models.Materiel{}).
		Where("num_serie = ?", numSerie).
		Updates(map[string]any{"status": status, "ref_affectation": ref}).Error
	return classify(err, "materiel", opWrite)
}

// Delete removes the row only. A materiel still pointing at it has its
// back-reference nulled by the foreign key; its status is left as is.
func (s *Affectations) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("ref_affectation = ?", id).Delete(&models.Affectation{})
	if res.Error != nil {
		return classify(res.Error, affectationEntity, opDelete)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("affectation not found")
	}
	return nil
}

func (s *Affectations) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table(models.AffectationTable + " AS a").
		Select(`a.ref_affectation, a.date_debut, a.date_fin, a.matricule, a.ref_position,
			p.nom, p.prenom, m.num_serie, pos.ref_salle`).
		Joins("LEFT JOIN " + models.PersonneTable + " p ON p.matricule = a.matricule").
		Joins("LEFT JOIN " + models.MaterielTable + " m ON m.ref_affectation = a.ref_affectation").
		Joins("LEFT JOIN " + models.PositionTable + " pos ON pos.ref_position = a.ref_position")
}

func (s *Affectations) Get(ctx context.Context, id string) (*models.AffectationRow, error) {
	rows := []models.AffectationRow{}
	if err := s.joined(ctx).Where("a.ref_affectation = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, classify(err, affectationEntity, opRead)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("affectation not found")
	}
	return &rows[0], nil
}

func (s *Affectations) List(ctx context.Context) ([]models.AffectationRow, error) {
	return s.Search(ctx, AffectationQuery{})
}

// Search returns the joined rows matching q, newest first.
func (s *Affectations) Search(ctx context.Context, q AffectationQuery) ([]models.AffectationRow, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	tx := s.joined(ctx)
	if q.From != nil {
		tx = tx.Where("a.date_debut >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("a.date_debut <= ?", *q.To)
	}
	if q.Matricule != "" {
		tx = tx.Where("a.matricule = ?", q.Matricule)
	}
	if q.RefPosition != "" {
		tx = tx.Where("a.ref_position = ?", q.RefPosition)
	}
	if q.RefSalle != "" {
		tx = tx.Where("pos.ref_salle = ?", q.RefSalle)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows := []models.AffectationRow{}
	if err := tx.Order("a.date_debut DESC, a.ref_affectation DESC").Scan(&rows).Error; err != nil {
		return nil, classify(err, affectationEntity, opRead)
	}
	return rows, nil
}

// Recent lists the newest affectations.
func (s *Affectations) Recent(ctx context.Context, limit int) ([]models.AffectationRow, error) {
	return s.Search(ctx, AffectationQuery{Limit: limit})
}
