package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type incidentInput struct {
	NumSerie      string       `json:"numSerie" binding:"required"`
	Matricule     string       `json:"matricule"`
	RefInventaire *string      `json:"refInventaire"`
	DateIncident  *models.Date `json:"dateIncident"`
	Description   string       `json:"description" binding:"required"`
	Statut        string       `json:"statut"`
}

type incidentPatch struct {
	Description   *string      `json:"description" binding:"omitempty,min=1"`
	Statut        *string      `json:"statut"`
	RefInventaire *string      `json:"refInventaire"`
	DateIncident  *models.Date `json:"dateIncident"`
}

func (in incidentPatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "description", in.Description)
	if in.Statut != nil {
		st, err := models.ParseIncidentStatut(*in.Statut)
		if err != nil {
			return nil, err
		}
		p["statut"] = st
	}
	setNullable(p, "ref_inventaire", in.RefInventaire)
	if in.DateIncident != nil {
		p["date_incident"] = *in.DateIncident
	}
	return p, nil
}

// IncidentController defaults the reporter to the authenticated actor.
type IncidentController struct {
	*resource[models.Incident]
}

func NewIncidentController(store crudStore[models.Incident]) *IncidentController {
	ic := &IncidentController{&resource[models.Incident]{
		read:   store,
		write:  store,
		name:   "incident",
		idOf:   func(i *models.Incident) string { return i.RefIncident },
		update: bindPatch[incidentPatch],
	}}
	ic.resource.create = ic.bind
	return ic
}

func (ic *IncidentController) bind(c *gin.Context) (*models.Incident, error) {
	var in incidentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, apperrors.FromBinding(err)
	}
	inc := &models.Incident{
		NumSerie:      in.NumSerie,
		Matricule:     in.Matricule,
		RefInventaire: emptyToNil(in.RefInventaire),
		Description:   in.Description,
		Statut:        models.IncidentStatut(in.Statut),
	}
	if inc.Matricule == "" {
		actor, ok := app.ActorFrom(c.Request.Context())
		if !ok {
			return nil, apperrors.Validation("matricule is required")
		}
		inc.Matricule = actor.Matricule
	}
	if in.DateIncident != nil {
		inc.DateIncident = *in.DateIncident
	}
	if in.Statut != "" {
		if _, err := models.ParseIncidentStatut(in.Statut); err != nil {
			return nil, err
		}
	}
	return inc, nil
}
