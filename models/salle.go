// models/salle.go
package models

const (
	SalleTable    = "salles"
	PositionTable = "positions"
)

type Salle struct {
	RefSalle string `gorm:"size:50;primaryKey" json:"refSalle"`
	NomSalle string `gorm:"size:100;not null" json:"nomSalle"`
	Batiment string `gorm:"size:100" json:"batiment"`
	Etage    string `gorm:"size:20" json:"etage"`
}

// Position is a desk or network port inside a Salle.
type Position struct {
	RefPosition string `gorm:"size:50;primaryKey" json:"refPosition"`
	Libelle     string `gorm:"size:100" json:"libelle"`
	Port        string `gorm:"size:50" json:"port"`
	RefSalle    string `gorm:"size:50;not null;index" json:"refSalle"`
}

func (Salle) TableName() string    { return SalleTable }
func (Position) TableName() string { return PositionTable }
