package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type inventaireStore interface {
	crudStore[models.Inventaire]
	Start(ctx context.Context, actor, refSalle, observation string) (*models.Inventaire, error)
	Close(ctx context.Context, id string) (*models.Inventaire, error)
}

type inventaireInput struct {
	RefSalle    string `json:"refSalle" binding:"required"`
	Observation string `json:"observation"`
}

type inventairePatch struct {
	RefSalle    *string `json:"refSalle" binding:"omitempty,min=1"`
	Observation *string `json:"observation"`
}

func (in inventairePatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "ref_salle", in.RefSalle)
	set(p, "observation", in.Observation)
	return p, nil
}

// InventaireController starts and closes inventories; the starter is the authenticated actor.
type InventaireController struct {
	*resource[models.Inventaire]
	store inventaireStore
}

func NewInventaireController(store inventaireStore) *InventaireController {
	return &InventaireController{
		resource: &resource[models.Inventaire]{
			read:   store,
			write:  store,
			name:   "inventaire",
			idOf:   func(i *models.Inventaire) string { return i.RefInventaire },
			update: bindPatch[inventairePatch],
		},
		store: store,
	}
}

func (ic *InventaireController) Create(c *gin.Context) {
	actor, ok := app.ActorFrom(c.Request.Context())
	if !ok {
		_ = c.Error(apperrors.Authentication("authentication required"))
		return
	}
	var in inventaireInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}
	inv, err := ic.store.Start(c.Request.Context(), actor.Matricule, in.RefSalle, in.Observation)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "inventaire started", "id": inv.RefInventaire, "data": inv})
}

func (ic *InventaireController) Close(c *gin.Context) {
	inv, err := ic.store.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventaire closed", "data": inv})
}
