package models

import "github.com/TheReasonWePlay/FTVN-sub001/apperrors"

type MaterielStatus string

const (
	StatusDisponible  MaterielStatus = "Disponible"
	StatusAffecte     MaterielStatus = "Affecté"
	StatusEnPanne     MaterielStatus = "En panne"
	StatusHorsService MaterielStatus = "Hors service"
)

// MaterielStatuses lists every status in display order.
var MaterielStatuses = []MaterielStatus{StatusDisponible, StatusAffecte, StatusEnPanne, StatusHorsService}

func ParseMaterielStatus(s string) (MaterielStatus, error) {
	for _, st := range MaterielStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", apperrors.Validation("invalid status %q", s)
}

// ClientSettable reports whether a client may write this status directly.
// Affecté is owned by the affectation lifecycle.
func (s MaterielStatus) ClientSettable() bool {
	return s == StatusDisponible || s == StatusEnPanne || s == StatusHorsService
}

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleGestionnaire Role = "gestionnaire"
	RoleConsultant   Role = "consultant"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleGestionnaire, RoleConsultant:
		return r, nil
	}
	return "", apperrors.Validation("invalid role %q", s)
}

type InventaireStatut string

const (
	InventaireEnCours InventaireStatut = "En cours"
	InventaireTermine InventaireStatut = "Terminé"
)

func ParseInventaireStatut(s string) (InventaireStatut, error) {
	switch st := InventaireStatut(s); st {
	case InventaireEnCours, InventaireTermine:
		return st, nil
	}
	return "", apperrors.Validation("invalid inventory status %q", s)
}

type IncidentStatut string

const (
	IncidentOuvert  IncidentStatut = "Ouvert"
	IncidentEnCours IncidentStatut = "En cours"
	IncidentResolu  IncidentStatut = "Résolu"
)

func ParseIncidentStatut(s string) (IncidentStatut, error) {
	switch st := IncidentStatut(s); st {
	case IncidentOuvert, IncidentEnCours, IncidentResolu:
		return st, nil
	}
	return "", apperrors.Validation("invalid incident status %q", s)
}
