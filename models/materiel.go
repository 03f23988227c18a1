// models/materiel.go
package models

const (
	MaterielTable   = "materiels"
	OrdinateurTable = "ordinateurs"
)

type Materiel struct {
	NumSerie        string         `gorm:"size:100;primaryKey" json:"numSerie"`
	CodeBarre       *string        `gorm:"size:100;uniqueIndex" json:"codeBarre,omitempty"`
	TypeMateriel    string         `gorm:"size:50;not null" json:"typeMateriel"`
	Marque          string         `gorm:"size:100" json:"marque"`
	Modele          string         `gorm:"size:100" json:"modele"`
	DateAcquisition *Date          `json:"dateAcquisition,omitempty"`
	Status          MaterielStatus `gorm:"size:20;not null;default:'Disponible';index" json:"status"`
	// written only by the affectation lifecycle
	RefAffectation *string `gorm:"size:36" json:"refAffectation,omitempty"`
}

// Ordinateur holds the computer-specific details of a Materiel.
type Ordinateur struct {
	NumSerie            string `gorm:"size:100;primaryKey" json:"numSerie"`
	Processeur          string `gorm:"size:100" json:"processeur"`
	RAM                 string `gorm:"column:ram;size:50" json:"ram"`
	Stockage            string `gorm:"size:50" json:"stockage"`
	SystemeExploitation string `gorm:"size:100" json:"systemeExploitation"`
	AdresseIP           string `gorm:"column:adresse_ip;size:45" json:"adresseIP"`
	AdresseMAC          string `gorm:"column:adresse_mac;size:17" json:"adresseMAC"`
}

func (Materiel) TableName() string   { return MaterielTable }
func (Ordinateur) TableName() string { return OrdinateurTable }
