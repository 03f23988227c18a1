package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
	"github.com/TheReasonWePlay/FTVN-sub001/worker"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type DashboardSource interface {
	Stats(ctx context.Context) (*db.Stats, error)
	Recent(ctx context.Context, limit int) ([]models.AffectationRow, error)
}

// repoDashboard runs the stats fan-out on the shared pool.
type repoDashboard struct {
	repo *db.Repo
	pool *worker.Pool
}

func (d repoDashboard) Stats(ctx context.Context) (*db.Stats, error) {
	return d.repo.DashboardStats(ctx, d.pool)
}

func (d repoDashboard) Recent(ctx context.Context, limit int) ([]models.AffectationRow, error) {
	return d.repo.Affectations.Recent(ctx, limit)
}

type DashboardController struct {
	src DashboardSource
}

func NewDashboardController(src DashboardSource) *DashboardController {
	return &DashboardController{src: src}
}

func NewRepoDashboard(repo *db.Repo, pool *worker.Pool) DashboardSource {
	return repoDashboard{repo: repo, pool: pool}
}

func (dc *DashboardController) Stats(c *gin.Context) {
	st, err := dc.src.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (dc *DashboardController) RecentAffectations(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			_ = c.Error(apperrors.Validation("limit must be a positive integer"))
			return
		}
		limit = min(n, maxRecentLimit)
	}
	rows, err := dc.src.Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
