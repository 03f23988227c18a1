package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type fakeAuthenticator struct {
	users map[string]string
}

func (f fakeAuthenticator) Authenticate(_ context.Context, matricule, password string) (*models.Utilisateur, error) {
	if pw, ok := f.users[matricule]; !ok || pw != password {
		return nil, apperrors.Authentication("invalid credentials")
	}
	return &models.Utilisateur{Matricule: matricule, Role: models.RoleGestionnaire, Actif: true}, nil
}

type fakeSessions struct {
	created map[string]string
	deleted []string
}

func (f *fakeSessions) Create(_ context.Context, matricule, _ string) (string, error) {
	id := "tok-" + matricule
	f.created[id] = matricule
	return id, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessions) TTL() time.Duration { return time.Hour }

func (f *fakeSessions) RevokeAllForUser(_ context.Context, matricule string) error {
	f.deleted = append(f.deleted, "all:"+matricule)
	return nil
}

func authRouter(sessions *fakeSessions) *gin.Engine {
	ac := NewAuthController(fakeAuthenticator{users: map[string]string{"P1": "s3cret-pass"}}, sessions, "app_session", true)
	r := newRouter()
	r.POST("/auth/login", ac.Login)
	r.POST("/auth/logout", ac.Logout)
	r.GET("/auth/me", ac.Me)
	r.GET("/auth/me-as", asActor("P1", models.RoleAdmin), ac.Me)
	return r
}

func TestAuthController_Login(t *testing.T) {
	sessions := &fakeSessions{created: map[string]string{}}
	r := authRouter(sessions)

	w := do(r, http.MethodPost, "/auth/login", map[string]any{"matricule": "P1", "motDePasse": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "tok-P1", body["token"])
	assert.Equal(t, "gestionnaire", body["role"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "app_session", cookies[0].Name)
	assert.Equal(t, "tok-P1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	w = do(r, http.MethodPost, "/auth/login", map[string]any{"matricule": "P1", "motDePasse": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decodeErr(t, w).Error.Message)

	w = do(r, http.MethodPost, "/auth/login", map[string]any{"matricule": "P1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, sessions.created, 1)
}

func TestAuthController_Logout(t *testing.T) {
	sessions := &fakeSessions{created: map[string]string{}}
	r := authRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "app_session", Value: "tok-P1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tok-P1"}, sessions.deleted)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)

	// without a token logout still succeeds
	w = do(r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, sessions.deleted, 1)
}

func TestAuthController_Me(t *testing.T) {
	r := authRouter(&fakeSessions{created: map[string]string{}})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/auth/me", nil).Code)

	w := do(r, http.MethodGet, "/auth/me-as", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "P1", body["matricule"])
	assert.Equal(t, "admin", body["role"])
}

type fakeUtilisateurs struct {
	*memStore[models.Utilisateur]
	passwords map[string]string
}

func (f *fakeUtilisateurs) Create(_ context.Context, u *models.Utilisateur, password string) error {
	if _, ok := f.rows[u.Matricule]; ok {
		return apperrors.Conflict("utilisateur %s already exists", u.Matricule)
	}
	if u.Role == "" {
		u.Role = models.RoleConsultant
	}
	f.rows[u.Matricule] = *u
	f.passwords[u.Matricule] = password
	return nil
}

func (f *fakeUtilisateurs) Update(_ context.Context, id string, patch map[string]any) (*models.Utilisateur, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperrors.NotFound("utilisateur %s not found", id)
	}
	if actif, ok := patch["actif"].(bool); ok {
		u.Actif = actif
	}
	f.rows[id] = u
	f.patches[id] = patch
	return &u, nil
}

func TestUtilisateurController(t *testing.T) {
	store := &fakeUtilisateurs{
		memStore:  newMemStore(func(u *models.Utilisateur) string { return u.Matricule }),
		passwords: map[string]string{},
	}
	sessions := &fakeSessions{created: map[string]string{}}
	uc := NewUtilisateurController(store, sessions)

	r := newRouter()
	r.GET("/utilisateurs/:id", uc.Get)
	r.POST("/utilisateurs", uc.Create)
	r.PUT("/utilisateurs/:id", uc.Update)
	r.DELETE("/utilisateurs/:id", uc.Delete)

	w := do(r, http.MethodPost, "/utilisateurs", map[string]any{"matricule": "P1", "motDePasse": "long-enough"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "long-enough")
	assert.True(t, store.rows["P1"].Actif)
	assert.Equal(t, models.RoleConsultant, store.rows["P1"].Role)

	w = do(r, http.MethodPut, "/utilisateurs/P1", map[string]any{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/utilisateurs/P1", map[string]any{"role": "admin", "motDePasse": "another-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, store.patches["P1"]["role"])
	assert.Equal(t, "another-pass", store.patches["P1"]["mot_de_passe"])
	assert.Empty(t, sessions.deleted)

	w = do(r, http.MethodPut, "/utilisateurs/P1", map[string]any{"actif": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"all:P1"}, sessions.deleted)

	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/utilisateurs/P1", nil).Code)
	assert.Equal(t, []string{"all:P1", "all:P1"}, sessions.deleted)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/utilisateurs/P1", nil).Code)
}
