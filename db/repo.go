package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// Repo groups the per-entity stores over one connection pool.
type Repo struct {
	DB *gorm.DB

	Personnes    *Table[models.Personne]
	Salles       *Table[models.Salle]
	Positions    *Table[models.Position]
	Ordinateurs  *Table[models.Ordinateur]
	Materiels    *Materiels
	Utilisateurs *Utilisateurs
	Inventaires  *Inventaires
	Incidents    *Incidents
	Affectations *Affectations
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{
		DB:           db,
		Personnes:    NewTable[models.Personne](db, "personne", "matricule", "matricule ASC", personneFilters),
		Salles:       NewTable[models.Salle](db, "salle", "ref_salle", "ref_salle ASC", salleFilters),
		Positions:    NewTable[models.Position](db, "position", "ref_position", "ref_position ASC", positionFilters),
		Ordinateurs:  NewTable[models.Ordinateur](db, "ordinateur", "num_serie", "num_serie ASC", ordinateurFilters),
		Materiels:    newMateriels(db),
		Utilisateurs: newUtilisateurs(db),
		Inventaires:  newInventaires(db),
		Incidents:    newIncidents(db),
		Affectations: &Affectations{db: db},
	}
}

var (
	personneFilters = FilterSpec{
		"nom":       {Column: "nom", Match: MatchContains},
		"prenom":    {Column: "prenom", Match: MatchContains},
		"email":     {Column: "email", Match: MatchContains},
		"service":   {Column: "service", Match: MatchEqual},
		"fonction":  {Column: "fonction", Match: MatchContains},
		"matricule": {Column: "matricule", Match: MatchEqual},
	}
	salleFilters = FilterSpec{
		"nomSalle": {Column: "nom_salle", Match: MatchContains},
		"batiment": {Column: "batiment", Match: MatchEqual},
		"etage":    {Column: "etage", Match: MatchEqual},
	}
	positionFilters = FilterSpec{
		"libelle":  {Column: "libelle", Match: MatchContains},
		"port":     {Column: "port", Match: MatchEqual},
		"refSalle": {Column: "ref_salle", Match: MatchEqual},
	}
	ordinateurFilters = FilterSpec{
		"processeur":          {Column: "processeur", Match: MatchContains},
		"ram":                 {Column: "ram", Match: MatchEqual},
		"systemeExploitation": {Column: "systeme_exploitation", Match: MatchContains},
		"adresseIP":           {Column: "adresse_ip", Match: MatchEqual},
		"adresseMAC":          {Column: "adresse_mac", Match: MatchEqual},
	}
)

// PositionsInSalle lists the positions of a room.
func (r *Repo) PositionsInSalle(ctx context.Context, refSalle string) ([]models.Position, error) {
	return r.Positions.Where(ctx, "ref_salle = ?", refSalle)
}
