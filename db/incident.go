package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type Incidents struct {
	*Table[models.Incident]
}

func newIncidents(db *gorm.DB) *Incidents {
	return &Incidents{NewTable[models.Incident](db, "incident", "ref_incident", "date_incident DESC, ref_incident DESC", FilterSpec{
		"numSerie":      {Column: "num_serie", Match: MatchEqual},
		"matricule":     {Column: "matricule", Match: MatchEqual},
		"refInventaire": {Column: "ref_inventaire", Match: MatchEqual},
		"description":   {Column: "description", Match: MatchContains},
		"statut": {Column: "statut", Match: MatchEqual, Validate: func(s string) error {
			_, err := models.ParseIncidentStatut(s)
			return err
		}},
	})}
}

// Create assigns the id and fills dateIncident (today) and statut (Ouvert) when absent.
func (s *Incidents) Create(ctx context.Context, v *models.Incident) error {
	id, err := uuid.NewV7()
	if err != nil {
		return apperrors.Database(err, "generate incident id")
	}
	v.RefIncident = id.String()
	if v.DateIncident.IsZero() {
		v.DateIncident = models.Today()
	}
	if v.Statut == "" {
		v.Statut = models.IncidentOuvert
	}
	if _, err := models.ParseIncidentStatut(string(v.Statut)); err != nil {
		return err
	}
	return s.Table.Create(ctx, v)
}
