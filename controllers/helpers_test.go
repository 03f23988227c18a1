package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(app.ErrorHandler(false))
	return r
}

// asActor injects an authenticated actor the way AuthRequired does.
func asActor(matricule string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(app.WithActor(c.Request.Context(), app.Actor{Matricule: matricule, Role: role}))
		c.Next()
	}
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errResp struct {
	Success bool `json:"success"`
	Error   struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
		Code       string `json:"code"`
	} `json:"error"`
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) errResp {
	t.Helper()
	var e errResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	require.False(t, e.Success)
	return e
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func strp(s string) *string { return &s }
