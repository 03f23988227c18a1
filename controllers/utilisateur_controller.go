package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type utilisateurStore interface {
	reader[models.Utilisateur]
	Create(ctx context.Context, u *models.Utilisateur, password string) error
	Update(ctx context.Context, id string, patch map[string]any) (*models.Utilisateur, error)
	Delete(ctx context.Context, id string) error
}

type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, matricule string) error
}

// UtilisateurController manages accounts. Removing or deactivating an account revokes its sessions.
type UtilisateurController struct {
	reads    *resource[models.Utilisateur]
	store    utilisateurStore
	sessions SessionRevoker
}

func NewUtilisateurController(store utilisateurStore, sessions SessionRevoker) *UtilisateurController {
	return &UtilisateurController{
		reads:    &resource[models.Utilisateur]{read: store, name: "utilisateur"},
		store:    store,
		sessions: sessions,
	}
}

type utilisateurInput struct {
	Matricule  string `json:"matricule" binding:"required"`
	MotDePasse string `json:"motDePasse" binding:"required"`
	Role       string `json:"role"`
	Actif      *bool  `json:"actif"`
}

type utilisateurPatch struct {
	MotDePasse *string `json:"motDePasse"`
	Role       *string `json:"role"`
	Actif      *bool   `json:"actif"`
}

func (in utilisateurPatch) patch() (map[string]any, error) {
	p := map[string]any{}
	if in.Role != nil {
		role, err := models.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		p["role"] = role
	}
	set(p, "actif", in.Actif)
	set(p, db.PasswordColumn, in.MotDePasse)
	return p, nil
}

func (uc *UtilisateurController) List(c *gin.Context) {
	uc.reads.List(c)
}

func (uc *UtilisateurController) Filter(c *gin.Context) {
	uc.reads.Filter(c)
}

func (uc *UtilisateurController) Get(c *gin.Context) {
	uc.reads.Get(c)
}

func (uc *UtilisateurController) Create(c *gin.Context) {
	var in utilisateurInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}
	u := &models.Utilisateur{Matricule: in.Matricule, Role: models.Role(in.Role), Actif: true}
	if in.Actif != nil {
		u.Actif = *in.Actif
	}
	if err := uc.store.Create(c.Request.Context(), u, in.MotDePasse); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "utilisateur created", "id": u.Matricule, "data": u})
}

func (uc *UtilisateurController) Update(c *gin.Context) {
	p, err := bindPatch[utilisateurPatch](c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id := c.Param("id")
	u, err := uc.store.Update(c.Request.Context(), id, p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !u.Actif {
		uc.revoke(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, gin.H{"message": "utilisateur updated", "data": u})
}

func (uc *UtilisateurController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := uc.store.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	uc.revoke(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "utilisateur deleted"})
}

func (uc *UtilisateurController) revoke(ctx context.Context, matricule string) {
	if err := uc.sessions.RevokeAllForUser(ctx, matricule); err != nil {
		logger.Warn("revoke sessions failed", zap.String("matricule", matricule), zap.Error(err))
	}
}
