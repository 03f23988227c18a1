package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type salleInput struct {
	RefSalle string `json:"refSalle" binding:"required,max=50"`
	NomSalle string `json:"nomSalle" binding:"required,max=100"`
	Batiment string `json:"batiment"`
	Etage    string `json:"etage"`
}

func (in salleInput) model() (*models.Salle, error) {
	return &models.Salle{RefSalle: in.RefSalle, NomSalle: in.NomSalle, Batiment: in.Batiment, Etage: in.Etage}, nil
}

type sallePatch struct {
	NomSalle *string `json:"nomSalle" binding:"omitempty,min=1,max=100"`
	Batiment *string `json:"batiment"`
	Etage    *string `json:"etage"`
}

func (in sallePatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "nom_salle", in.NomSalle)
	set(p, "batiment", in.Batiment)
	set(p, "etage", in.Etage)
	return p, nil
}

type SalleController struct {
	*resource[models.Salle]
}

func NewSalleController(store crudStore[models.Salle]) *SalleController {
	return &SalleController{&resource[models.Salle]{
		read:   store,
		write:  store,
		name:   "salle",
		idOf:   func(s *models.Salle) string { return s.RefSalle },
		create: bindCreate[models.Salle, salleInput],
		update: bindPatch[sallePatch],
	}}
}

type positionInput struct {
	RefPosition string `json:"refPosition" binding:"required,max=50"`
	Libelle     string `json:"libelle"`
	Port        string `json:"port"`
	RefSalle    string `json:"refSalle" binding:"required"`
}

func (in positionInput) model() (*models.Position, error) {
	return &models.Position{RefPosition: in.RefPosition, Libelle: in.Libelle, Port: in.Port, RefSalle: in.RefSalle}, nil
}

type positionPatch struct {
	Libelle  *string `json:"libelle"`
	Port     *string `json:"port"`
	RefSalle *string `json:"refSalle" binding:"omitempty,min=1"`
}

func (in positionPatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "libelle", in.Libelle)
	set(p, "port", in.Port)
	set(p, "ref_salle", in.RefSalle)
	return p, nil
}

type PositionController struct {
	*resource[models.Position]
	bySalle func(ctx context.Context, refSalle string) ([]models.Position, error)
}

func NewPositionController(store crudStore[models.Position], bySalle func(context.Context, string) ([]models.Position, error)) *PositionController {
	return &PositionController{
		resource: &resource[models.Position]{
			read:   store,
			write:  store,
			name:   "position",
			idOf:   func(p *models.Position) string { return p.RefPosition },
			create: bindCreate[models.Position, positionInput],
			update: bindPatch[positionPatch],
		},
		bySalle: bySalle,
	}
}

// BySalle lists the positions of a room.
func (pc *PositionController) BySalle(c *gin.Context) {
	rows, err := pc.bySalle(c.Request.Context(), c.Param("refSalle"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
