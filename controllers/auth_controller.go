package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type Authenticator interface {
	Authenticate(ctx context.Context, matricule, password string) (*models.Utilisateur, error)
}

type SessionIssuer interface {
	Create(ctx context.Context, matricule, role string) (string, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type AuthController struct {
	users    Authenticator
	sessions SessionIssuer
	cookie   cookieWriter
}

func NewAuthController(users Authenticator, sessions SessionIssuer, cookie string, secure bool) *AuthController {
	return &AuthController{users: users, sessions: sessions, cookie: cookieWriter{name: cookie, secure: secure}}
}

func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Matricule  string `json:"matricule" binding:"required"`
		MotDePasse string `json:"motDePasse" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}

	u, err := ac.users.Authenticate(c.Request.Context(), in.Matricule, in.MotDePasse)
	if err != nil {
		_ = c.Error(err)
		return
	}
	token, err := ac.sessions.Create(c.Request.Context(), u.Matricule, string(u.Role))
	if err != nil {
		_ = c.Error(apperrors.Database(err, "create session failed"))
		return
	}
	ac.cookie.set(c.Writer, token, ac.sessions.TTL())
	logger.Info("login", zap.String("matricule", u.Matricule))

	c.JSON(http.StatusOK, gin.H{"token": token, "matricule": u.Matricule, "role": u.Role})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token := app.SessionToken(c, ac.cookie.name); token != "" {
		if err := ac.sessions.Delete(c.Request.Context(), token); err != nil {
			logger.Warn("logout: delete session failed", zap.Error(err))
		}
	}
	ac.cookie.clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	actor, ok := app.ActorFrom(c.Request.Context())
	if !ok {
		_ = c.Error(apperrors.Authentication("authentication required"))
		return
	}
	c.JSON(http.StatusOK, actor)
}
