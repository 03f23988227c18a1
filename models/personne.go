// models/personne.go
package models

import "time"

const (
	PersonneTable    = "personnes"
	UtilisateurTable = "utilisateurs"
)

type Personne struct {
	Matricule string  `gorm:"size:50;primaryKey" json:"matricule"`
	Nom       string  `gorm:"size:100;not null" json:"nom"`
	Prenom    string  `gorm:"size:100;not null" json:"prenom"`
	Email     *string `gorm:"size:150;uniqueIndex" json:"email,omitempty"`
	Telephone string  `gorm:"size:30" json:"telephone"`
	Service   string  `gorm:"size:100" json:"service"`
	Fonction  string  `gorm:"size:100" json:"fonction"`
}

// Utilisateur is an application account; matricule is shared with Personne.
type Utilisateur struct {
	Matricule  string `gorm:"size:50;primaryKey" json:"matricule"`
	MotDePasse string `gorm:"size:100;not null" json:"-"` // bcrypt hash
	Role       Role   `gorm:"size:20;not null;default:'consultant'" json:"role"`
	Actif      bool   `gorm:"not null" json:"actif"`

	DerniereConnexion *time.Time `json:"derniereConnexion,omitempty"`
	DerniereActivite  *time.Time `json:"derniereActivite,omitempty"`
}

func (Personne) TableName() string    { return PersonneTable }
func (Utilisateur) TableName() string { return UtilisateurTable }
