// models/inventaire.go
package models

const (
	InventaireTable = "inventaires"
	IncidentTable   = "incidents"
)

type Inventaire struct {
	RefInventaire string           `gorm:"size:36;primaryKey" json:"refInventaire"`
	RefSalle      string           `gorm:"size:50;not null;index" json:"refSalle"`
	DateDebut     Date             `gorm:"not null" json:"dateDebut"`
	DateFin       *Date            `json:"dateFin"`
	Matricule     string           `gorm:"size:50;not null" json:"matricule"`
	Statut        InventaireStatut `gorm:"size:20;not null;default:'En cours'" json:"statut"`
	Observation   string           `gorm:"type:text" json:"observation"`
}

type Incident struct {
	RefIncident   string         `gorm:"size:36;primaryKey" json:"refIncident"`
	NumSerie      string         `gorm:"size:100;not null;index" json:"numSerie"`
	Matricule     string         `gorm:"size:50;not null" json:"matricule"`
	RefInventaire *string        `gorm:"size:36" json:"refInventaire,omitempty"`
	DateIncident  Date           `gorm:"not null" json:"dateIncident"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Statut        IncidentStatut `gorm:"size:20;not null;default:'Ouvert';index" json:"statut"`
}

func (Inventaire) TableName() string { return InventaireTable }
func (Incident) TableName() string   { return IncidentTable }

// All lists every model in migration order.
func All() []any {
	return []any{
		&Personne{}, &Utilisateur{}, &Salle{}, &Position{}, &Materiel{},
		&Ordinateur{}, &Affectation{}, &Inventaire{}, &Incident{},
	}
}
