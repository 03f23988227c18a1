package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
	"github.com/TheReasonWePlay/FTVN-sub001/testutil"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb := testutil.OpenPostgres(t, t.Name())
	require.NoError(t, Migrate(gdb))
	return NewRepo(gdb)
}

func strp(s string) *string { return &s }

func seedPersonne(t *testing.T, r *Repo, matricule string) {
	t.Helper()
	require.NoError(t, r.Personnes.Create(context.Background(), &models.Personne{
		Matricule: matricule, Nom: "Nom " + matricule, Prenom: "Prenom " + matricule,
	}))
}

func seedSalle(t *testing.T, r *Repo, ref string) {
	t.Helper()
	require.NoError(t, r.Salles.Create(context.Background(), &models.Salle{RefSalle: ref, NomSalle: "Salle " + ref}))
}

func seedPosition(t *testing.T, r *Repo, ref, salle string) {
	t.Helper()
	require.NoError(t, r.Positions.Create(context.Background(), &models.Position{RefPosition: ref, RefSalle: salle}))
}

func seedMateriel(t *testing.T, r *Repo, numSerie string) {
	t.Helper()
	require.NoError(t, r.Materiels.Create(context.Background(), &models.Materiel{NumSerie: numSerie, TypeMateriel: "PC"}))
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
