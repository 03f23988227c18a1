package controllers

import "github.com/TheReasonWePlay/FTVN-sub001/models"

type personneInput struct {
	Matricule string  `json:"matricule" binding:"required,max=50"`
	Nom       string  `json:"nom" binding:"required,max=100"`
	Prenom    string  `json:"prenom" binding:"required,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Telephone string  `json:"telephone"`
	Service   string  `json:"service"`
	Fonction  string  `json:"fonction"`
}

func (in personneInput) model() (*models.Personne, error) {
	return &models.Personne{
		Matricule: in.Matricule,
		Nom:       in.Nom,
		Prenom:    in.Prenom,
		Email:     emptyToNil(in.Email),
		Telephone: in.Telephone,
		Service:   in.Service,
		Fonction:  in.Fonction,
	}, nil
}

type personnePatch struct {
	Nom       *string `json:"nom" binding:"omitempty,max=100"`
	Prenom    *string `json:"prenom" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Telephone *string `json:"telephone"`
	Service   *string `json:"service"`
	Fonction  *string `json:"fonction"`
}

func (in personnePatch) patch() (map[string]any, error) {
	p := map[string]any{}
	set(p, "nom", in.Nom)
	set(p, "prenom", in.Prenom)
	setNullable(p, "email", in.Email)
	set(p, "telephone", in.Telephone)
	set(p, "service", in.Service)
	set(p, "fonction", in.Fonction)
	return p, nil
}

type PersonneController struct {
	*resource[models.Personne]
}

func NewPersonneController(store crudStore[models.Personne]) *PersonneController {
	return &PersonneController{&resource[models.Personne]{
		read:   store,
		write:  store,
		name:   "personne",
		idOf:   func(p *models.Personne) string { return p.Matricule },
		create: bindCreate[models.Personne, personneInput],
		update: bindPatch[personnePatch],
	}}
}
