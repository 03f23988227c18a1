package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type fakeDashboard struct {
	limits []int
}

func (f *fakeDashboard) Stats(context.Context) (*db.Stats, error) {
	return &db.Stats{
		MaterielsByStatus:  map[models.MaterielStatus]int64{models.StatusDisponible: 3, models.StatusAffecte: 1},
		Materiels:          4,
		ActiveAffectations: 1,
	}, nil
}

func (f *fakeDashboard) Recent(_ context.Context, limit int) ([]models.AffectationRow, error) {
	f.limits = append(f.limits, limit)
	return []models.AffectationRow{}, nil
}

func TestDashboardController(t *testing.T) {
	src := &fakeDashboard{}
	dc := NewDashboardController(src)
	r := newRouter()
	r.GET("/dashboard/stats", dc.Stats)
	r.GET("/dashboard/recent", dc.RecentAffectations)

	w := do(r, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Disponible":3`)

	for _, path := range []string{"/dashboard/recent", "/dashboard/recent?limit=5", "/dashboard/recent?limit=1000"} {
		require.Equal(t, http.StatusOK, do(r, http.MethodGet, path, nil).Code, path)
	}
	assert.Equal(t, []int{10, 5, 100}, src.limits)

	for _, path := range []string{"/dashboard/recent?limit=0", "/dashboard/recent?limit=abc"} {
		assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, path, nil).Code, path)
	}
	assert.Len(t, src.limits, 3)
}
