// controllers/srv.go
package controllers

import (
	"net/http"
	"time"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/config"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/session"
	"github.com/TheReasonWePlay/FTVN-sub001/worker"
)

// Srv carries what the controllers share.
type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Pool    *worker.Pool
	Cfg     *config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    a.Repo,
		AppSess: a.AppSessions(),
		Pool:    a.Pool,
		Cfg:     a.Config,
	}
}

// cookieWriter sets and clears the session cookie.
type cookieWriter struct {
	name   string
	secure bool
}

func (cw cookieWriter) set(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cw.name,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cw.secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (cw cookieWriter) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cw.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cw.secure,
	})
}
