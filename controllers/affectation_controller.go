package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// AffectationStore is the lifecycle the controller drives.
type AffectationStore interface {
	List(ctx context.Context) ([]models.AffectationRow, error)
	Get(ctx context.Context, id string) (*models.AffectationRow, error)
	Create(ctx context.Context, in db.NewAffectation) (string, error)
	Update(ctx context.Context, id string, in db.AffectationTarget) (*models.AffectationRow, error)
	Close(ctx context.Context, id, numSerie string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q db.AffectationQuery) ([]models.AffectationRow, error)
}

type AffectationController struct {
	store AffectationStore
}

func NewAffectationController(store AffectationStore) *AffectationController {
	return &AffectationController{store: store}
}

func (ac *AffectationController) List(c *gin.Context) {
	rows, err := ac.store.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ac *AffectationController) Get(c *gin.Context) {
	row, err := ac.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AffectationController) Create(c *gin.Context) {
	var in struct {
		Matricule   *string `json:"matricule"`
		RefPosition *string `json:"refPosition"`
		NumSerie    string  `json:"numSerie" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}
	id, err := ac.store.Create(c.Request.Context(), db.NewAffectation{
		Matricule:   in.Matricule,
		RefPosition: in.RefPosition,
		NumSerie:    in.NumSerie,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "affectation created", "refAffectation": id})
}

func (ac *AffectationController) Update(c *gin.Context) {
	var in struct {
		Matricule   *string `json:"matricule"`
		RefPosition *string `json:"refPosition"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}
	row, err := ac.store.Update(c.Request.Context(), c.Param("id"), db.AffectationTarget{
		Matricule:   in.Matricule,
		RefPosition: in.RefPosition,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "affectation updated", "data": row})
}

func (ac *AffectationController) Close(c *gin.Context) {
	var in struct {
		IDMateriel string `json:"idMateriel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return
	}
	if err := ac.store.Close(c.Request.Context(), c.Param("id"), in.IDMateriel); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "affectation closed"})
}

func (ac *AffectationController) Delete(c *gin.Context) {
	if err := ac.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "affectation deleted"})
}

func requiredQuery(c *gin.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", apperrors.Validation("query parameter %s is required", name)
	}
	return v, nil
}

func dateQuery(c *gin.Context, name string) (*models.Date, error) {
	v, err := requiredQuery(c, name)
	if err != nil {
		return nil, err
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, apperrors.Validation("query parameter %s: %v", name, err)
	}
	return &d, nil
}

func (ac *AffectationController) search(c *gin.Context, build func(q *db.AffectationQuery) error) {
	var q db.AffectationQuery
	if err := build(&q); err != nil {
		_ = c.Error(err)
		return
	}
	rows, err := ac.store.Search(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func withDates(c *gin.Context, q *db.AffectationQuery) error {
	from, err := dateQuery(c, "startDate")
	if err != nil {
		return err
	}
	to, err := dateQuery(c, "endDate")
	if err != nil {
		return err
	}
	q.From, q.To = from, to
	return nil
}

func withMatricule(c *gin.Context, q *db.AffectationQuery) (err error) {
	q.Matricule, err = requiredQuery(c, "matricule")
	return err
}

func withPosition(c *gin.Context, q *db.AffectationQuery) (err error) {
	q.RefPosition, err = requiredQuery(c, "refPosition")
	return err
}

func (ac *AffectationController) SearchDateRange(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error { return withDates(c, q) })
}

func (ac *AffectationController) SearchMatricule(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error { return withMatricule(c, q) })
}

func (ac *AffectationController) SearchPosition(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error { return withPosition(c, q) })
}

func (ac *AffectationController) SearchDateMatricule(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error {
		if err := withDates(c, q); err != nil {
			return err
		}
		return withMatricule(c, q)
	})
}

func (ac *AffectationController) SearchDatePosition(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error {
		if err := withDates(c, q); err != nil {
			return err
		}
		return withPosition(c, q)
	})
}

// BySalle lists affectations whose position is in the room.
func (ac *AffectationController) BySalle(c *gin.Context) {
	ac.search(c, func(q *db.AffectationQuery) error {
		q.RefSalle = strings.TrimSpace(c.Param("refSalle"))
		if q.RefSalle == "" {
			return apperrors.Validation("refSalle is required")
		}
		return nil
	})
}
