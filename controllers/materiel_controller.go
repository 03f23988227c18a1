package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type materielInput struct {
	NumSerie        string       `json:"numSerie" binding:"required,max=100"`
	CodeBarre       *string      `json:"codeBarre"`
	TypeMateriel    string       `json:"typeMateriel" binding:"required,max=50"`
	Marque          string       `json:"marque"`
	Modele          string       `json:"modele"`
	DateAcquisition *models.Date `json:"dateAcquisition"`
	Status          string       `json:"status"`
}

func (in materielInput) model() (*models.Materiel, error) {
	m := &models.Materiel{
		NumSerie:        in.NumSerie,
		CodeBarre:       emptyToNil(in.CodeBarre),
		TypeMateriel:    in.TypeMateriel,
		Marque:          in.Marque,
		Modele:          in.Modele,
		DateAcquisition: in.DateAcquisition,
	}
	if in.Status != "" {
		st, err := models.ParseMaterielStatus(in.Status)
		if err != nil {
			return nil, err
		}
		m.Status = st
	}
	return m, nil
}

type materielPatch struct {
	CodeBarre       *string      `json:"codeBarre"`
	TypeMateriel    *string      `json:"typeMateriel" binding:"omitempty,min=1,max=50"`
	Marque          *string      `json:"marque"`
	Modele          *string      `json:"modele"`
	DateAcquisition *models.Date `json:"dateAcquisition"`
	Status          *string      `json:"status"`
	RefAffectation  *string      `json:"refAffectation"`
}

func (in materielPatch) patch() (map[string]any, error) {
	p := map[string]any{}
	setNullable(p, "code_barre", in.CodeBarre)
	set(p, "type_materiel", in.TypeMateriel)
	set(p, "marque", in.Marque)
	set(p, "modele", in.Modele)
	if in.DateAcquisition != nil {
		p["date_acquisition"] = *in.DateAcquisition
	}
	if in.Status != nil {
		st, err := models.ParseMaterielStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		p["status"] = st
	}
	// rejected by the store; kept so the client gets a clear error
	set(p, "ref_affectation", in.RefAffectation)
	return p, nil
}

type materielStore interface {
	crudStore[models.Materiel]
	ByStatus(ctx context.Context, status string) ([]models.Materiel, error)
}

type MaterielController struct {
	*resource[models.Materiel]
	store materielStore
}

func NewMaterielController(store materielStore) *MaterielController {
	return &MaterielController{
		resource: &resource[models.Materiel]{
			read:   store,
			write:  store,
			name:   "materiel",
			idOf:   func(m *models.Materiel) string { return m.NumSerie },
			create: bindCreate[models.Materiel, materielInput],
			update: bindPatch[materielPatch],
		},
		store: store,
	}
}

func (mc *MaterielController) ByStatus(c *gin.Context) {
	rows, err := mc.store.ByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type ordinateurInput struct {
	NumSerie            string `json:"numSerie" binding:"required"`
	Processeur          string `json:"processeur"`
	RAM                 string `json:"ram"`
	Stockage            string `json:"stockage"`
	SystemeExploitation string `json:"systemeExploitation"`
	AdresseIP           string `json:"adresseIP" binding:"omitempty,ip"`
	AdresseMAC          string `json:"adresseMAC" binding:"omitempty,mac"`
}

func (in ordinateurInput) model() (*models.Ordinateur, error) {
	return &models.Ordinateur{
		NumSerie:            in.NumSerie,
		Processeur:          in.Processeur,
		RAM:                 in.RAM,
		Stockage:            in.Stockage,
		SystemeExploitation: in.SystemeExploitation,
		AdresseIP:           in.AdresseIP,
		AdresseMAC:          in.AdresseMAC,
	}, nil
}

type ordinateurPatch struct {
	Processeur          *string `json:"processeur"`
	RAM                 *string `json:"ram"`
	Stockage            *string `json:"stockage"`
	SystemeExploitation *string `json:"systemeExploitation"`
	AdresseIP           *string `json:"adresseIP" binding:"omitempty,ip"`
	AdresseMAC          *string `json:"adresseMAC" binding:"omitempty,mac"`
}

func (in ordinateurPatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "processeur", in.Processeur)
	set(p, "ram", in.RAM)
	set(p, "stockage", in.Stockage)
	set(p, "systeme_exploitation", in.SystemeExploitation)
	set(p, "adresse_ip", in.AdresseIP)
	set(p, "adresse_mac", in.AdresseMAC)
	return p, nil
}

type OrdinateurController struct {
	*resource[models.Ordinateur]
}

func NewOrdinateurController(store crudStore[models.Ordinateur]) *OrdinateurController {
	return &OrdinateurController{&resource[models.Ordinateur]{
		read:   store,
		write:  store,
		name:   "ordinateur",
		idOf:   func(o *models.Ordinateur) string { return o.NumSerie },
		create: bindCreate[models.Ordinateur, ordinateurInput],
		update: bindPatch[ordinateurPatch],
	}}
}
