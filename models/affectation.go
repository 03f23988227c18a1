// models/affectation.go
package models

import (
	"strings"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
)

const AffectationTable = "affectations"

// Affectation binds equipment to exactly one target: a person or a position.
// Open while DateFin is nil.
type Affectation struct {
	RefAffectation string  `gorm:"size:36;primaryKey" json:"refAffectation"`
	DateDebut      Date    `gorm:"not null" json:"dateDebut"`
	DateFin        *Date   `json:"dateFin"`
	Matricule      *string `gorm:"size:50" json:"matricule"`
	RefPosition    *string `gorm:"size:50" json:"refPosition"`
}

func (Affectation) TableName() string { return AffectationTable }

// Open reports whether the affectation has not been closed yet.
func (a Affectation) Open() bool { return a.DateFin == nil }

// AffectationRow is the joined read shape returned by every affectation query.
type AffectationRow struct {
	RefAffectation string  `json:"refAffectation"`
	DateDebut      Date    `json:"dateDebut"`
	DateFin        *Date   `json:"dateFin"`
	Matricule      *string `json:"matricule"`
	RefPosition    *string `json:"refPosition"`
	Nom            *string `json:"nom,omitempty"`
	Prenom         *string `json:"prenom,omitempty"`
	NumSerie       *string `json:"numSerie,omitempty"`
	RefSalle       *string `json:"refSalle,omitempty"`
}

// MsgAffectationTarget is the validation message for a bad target combination.
const MsgAffectationTarget = "exactly one of target person or target position required"

// ValidateAffectationTarget checks that exactly one of matricule and refPosition
// is present and non-empty. Whitespace-only counts as empty.
func ValidateAffectationTarget(matricule, refPosition *string) error {
	if present(matricule) == present(refPosition) {
		return apperrors.New(apperrors.KindValidation, MsgAffectationTarget)
	}
	return nil
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
