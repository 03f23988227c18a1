package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type fakeAffectations struct {
	created  []db.NewAffectation
	updated  map[string]db.AffectationTarget
	closed   map[string]string
	queries  []db.AffectationQuery
	rows     map[string]models.AffectationRow
	closeErr error
}

func newFakeAffectations() *fakeAffectations {
	return &fakeAffectations{
		updated: map[string]db.AffectationTarget{},
		closed:  map[string]string{},
		rows: map[string]models.AffectationRow{
			"A1": {RefAffectation: "A1", Matricule: strp("P1")},
		},
	}
}

func (f *fakeAffectations) List(context.Context) ([]models.AffectationRow, error) {
	out := []models.AffectationRow{}
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAffectations) Get(_ context.Context, id string) (*models.AffectationRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperrors.NotFound("affectation not found")
	}
	return &r, nil
}

func (f *fakeAffectations) Create(_ context.Context, in db.NewAffectation) (string, error) {
	if err := models.ValidateAffectationTarget(in.Matricule, in.RefPosition); err != nil {
		return "", err
	}
	f.created = append(f.created, in)
	return "NEW-1", nil
}

func (f *fakeAffectations) Update(_ context.Context, id string, in db.AffectationTarget) (*models.AffectationRow, error) {
	f.updated[id] = in
	r := f.rows[id]
	return &r, nil
}

func (f *fakeAffectations) Close(_ context.Context, id, numSerie string) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed[id] = numSerie
	return nil
}

func (f *fakeAffectations) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.NotFound("affectation not found")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAffectations) Search(_ context.Context, q db.AffectationQuery) ([]models.AffectationRow, error) {
	f.queries = append(f.queries, q)
	return []models.AffectationRow{}, nil
}

func affectationRouter(f *fakeAffectations) *gin.Engine {
	ac := NewAffectationController(f)
	r := newRouter()
	r.GET("/affectations", ac.List)
	r.GET("/affectations/search/date-range", ac.SearchDateRange)
	r.GET("/affectations/search/matricule", ac.SearchMatricule)
	r.GET("/affectations/search/position", ac.SearchPosition)
	r.GET("/affectations/search/date-matricule", ac.SearchDateMatricule)
	r.GET("/affectations/search/date-position", ac.SearchDatePosition)
	r.GET("/affectations/salle/:refSalle", ac.BySalle)
	r.GET("/affectations/:id", ac.Get)
	r.POST("/affectations", ac.Create)
	r.PUT("/affectations/:id", ac.Update)
	r.PUT("/affectations/:id/close", ac.Close)
	r.DELETE("/affectations/:id", ac.Delete)
	return r
}

func TestAffectationController_Create(t *testing.T) {
	f := newFakeAffectations()
	r := affectationRouter(f)

	w := do(r, http.MethodPost, "/affectations", map[string]any{"matricule": "P1", "numSerie": "SN-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "NEW-1", body["refAffectation"])
	assert.NotEmpty(t, body["message"])

	w = do(r, http.MethodPost, "/affectations", map[string]any{"matricule": "P1", "refPosition": "POS-1", "numSerie": "SN-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.MsgAffectationTarget, decodeErr(t, w).Error.Message)

	w = do(r, http.MethodPost, "/affectations", map[string]any{"matricule": "P1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(apperrors.KindValidation), decodeErr(t, w).Error.Code)

	w = do(r, http.MethodPost, "/affectations", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Len(t, f.created, 1)
}

func TestAffectationController_GetDelete(t *testing.T) {
	f := newFakeAffectations()
	r := affectationRouter(f)

	w := do(r, http.MethodGet, "/affectations/A1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/affectations/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 404, decodeErr(t, w).Error.StatusCode)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/affectations/A1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/affectations/A1", nil).Code)
}

func TestAffectationController_UpdatePassesSuppliedFieldsOnly(t *testing.T) {
	f := newFakeAffectations()
	r := affectationRouter(f)

	w := do(r, http.MethodPut, "/affectations/A1", map[string]any{"refPosition": "POS-2"})
	require.Equal(t, http.StatusOK, w.Code)
	got := f.updated["A1"]
	assert.Nil(t, got.Matricule)
	require.NotNil(t, got.RefPosition)
	assert.Equal(t, "POS-2", *got.RefPosition)
}

func TestAffectationController_Close(t *testing.T) {
	f := newFakeAffectations()
	r := affectationRouter(f)

	w := do(r, http.MethodPut, "/affectations/A1/close", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/affectations/A1/close", map[string]any{"idMateriel": "SN-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SN-1", f.closed["A1"])

	f.closeErr = apperrors.Conflict("affectation A1 already closed")
	w = do(r, http.MethodPut, "/affectations/A1/close", map[string]any{"idMateriel": "SN-1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(apperrors.KindConflict), decodeErr(t, w).Error.Code)
}

func TestAffectationController_Search(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		check  func(t *testing.T, q db.AffectationQuery)
	}{
		{
			name:   "date range",
			path:   "/affectations/search/date-range?startDate=2024-01-01&endDate=2024-01-31",
			status: http.StatusOK,
			check: func(t *testing.T, q db.AffectationQuery) {
				assert.Equal(t, "2024-01-01", q.From.String())
				assert.Equal(t, "2024-01-31", q.To.String())
			},
		},
		{name: "date range missing end", path: "/affectations/search/date-range?startDate=2024-01-01", status: http.StatusBadRequest},
		{name: "date range malformed", path: "/affectations/search/date-range?startDate=01/01/2024&endDate=2024-01-31", status: http.StatusBadRequest},
		{
			name:   "matricule",
			path:   "/affectations/search/matricule?matricule=P1",
			status: http.StatusOK,
			check:  func(t *testing.T, q db.AffectationQuery) { assert.Equal(t, "P1", q.Matricule) },
		},
		{name: "matricule missing", path: "/affectations/search/matricule", status: http.StatusBadRequest},
		{
			name:   "position",
			path:   "/affectations/search/position?refPosition=POS-1",
			status: http.StatusOK,
			check:  func(t *testing.T, q db.AffectationQuery) { assert.Equal(t, "POS-1", q.RefPosition) },
		},
		{
			name:   "date matricule",
			path:   "/affectations/search/date-matricule?startDate=2024-01-01&endDate=2024-01-31&matricule=P1",
			status: http.StatusOK,
			check: func(t *testing.T, q db.AffectationQuery) {
				assert.Equal(t, "P1", q.Matricule)
				assert.NotNil(t, q.From)
			},
		},
		{name: "date matricule missing matricule", path: "/affectations/search/date-matricule?startDate=2024-01-01&endDate=2024-01-31", status: http.StatusBadRequest},
		{
			name:   "date position",
			path:   "/affectations/search/date-position?startDate=2024-01-01&endDate=2024-01-31&refPosition=POS-1",
			status: http.StatusOK,
			check:  func(t *testing.T, q db.AffectationQuery) { assert.Equal(t, "POS-1", q.RefPosition) },
		},
		{
			name:   "salle",
			path:   "/affectations/salle/S-101",
			status: http.StatusOK,
			check:  func(t *testing.T, q db.AffectationQuery) { assert.Equal(t, "S-101", q.RefSalle) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAffectations()
			w := do(affectationRouter(f), http.MethodGet, tt.path, nil)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.check != nil {
				require.Len(t, f.queries, 1)
				tt.check(t, f.queries[0])
			} else {
				assert.Empty(t, f.queries)
			}
		})
	}
}
