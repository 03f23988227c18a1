package routes

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/app"
	"github.com/TheReasonWePlay/FTVN-sub001/controllers"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

// crud is the handler set every collaborator entity exposes.
type crud interface {
	List(*gin.Context)
	Filter(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

// registerCRUD mounts the uniform routes; reads need any account, writes need one of writers.
func registerCRUD(g *gin.RouterGroup, path string, h crud, writers gin.HandlerFunc) *gin.RouterGroup {
	x := g.Group(path)
	x.GET("", h.List)
	x.GET("/filter", h.Filter)
	x.GET("/:id", h.Get)
	x.POST("", writers, h.Create)
	x.PUT("/:id", writers, h.Update)
	x.DELETE("/:id", writers, h.Delete)
	return x
}

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	sessCfg := a.Config.Session
	secureCookie := sessCfg.Secure || anyHTTPS(a.Config.Server.AllowedOrigins)

	authCtl := controllers.NewAuthController(s.Repo.Utilisateurs, s.AppSess, sessCfg.Cookie, secureCookie)
	affCtl := controllers.NewAffectationController(s.Repo.Affectations)
	dashCtl := controllers.NewDashboardController(controllers.NewRepoDashboard(s.Repo, s.Pool))
	personneCtl := controllers.NewPersonneController(s.Repo.Personnes)
	salleCtl := controllers.NewSalleController(s.Repo.Salles)
	positionCtl := controllers.NewPositionController(s.Repo.Positions, s.Repo.PositionsInSalle)
	materielCtl := controllers.NewMaterielController(s.Repo.Materiels)
	ordinateurCtl := controllers.NewOrdinateurController(s.Repo.Ordinateurs)
	utilisateurCtl := controllers.NewUtilisateurController(s.Repo.Utilisateurs, s.AppSess)
	inventaireCtl := controllers.NewInventaireController(s.Repo.Inventaires)
	incidentCtl := controllers.NewIncidentController(s.Repo.Incidents)

	authMW := app.AuthRequired(s.AppSess, s.Repo.Utilisateurs, sessCfg.Cookie)
	seenMW := app.TouchLastSeen(s.AppSess, s.Repo.Utilisateurs, sessCfg.SeenThrottle)
	writers := app.RequireRole(models.RoleAdmin, models.RoleGestionnaire)
	adminOnly := app.RequireRole(models.RoleAdmin)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.GET("/me", authMW, authCtl.Me)
	}

	protected := api.Group("", authMW, seenMW)

	dash := protected.Group("/dashboard")
	{
		dash.GET("/stats", dashCtl.Stats)
		dash.GET("/recent-affectations", dashCtl.RecentAffectations)
	}

	aff := protected.Group("/affectations")
	{
		aff.GET("", affCtl.List)
		aff.GET("/search/date-range", affCtl.SearchDateRange)
		aff.GET("/search/matricule", affCtl.SearchMatricule)
		aff.GET("/search/position", affCtl.SearchPosition)
		aff.GET("/search/date-matricule", affCtl.SearchDateMatricule)
		aff.GET("/search/date-position", affCtl.SearchDatePosition)
		aff.GET("/salle/:refSalle", affCtl.BySalle)
		aff.GET("/:id", affCtl.Get)
		aff.POST("", writers, affCtl.Create)
		aff.PUT("/:id", writers, affCtl.Update)
		aff.PUT("/:id/close", writers, affCtl.Close)
		aff.DELETE("/:id", writers, affCtl.Delete)
	}

	registerCRUD(protected, "/personnes", personneCtl, writers)
	registerCRUD(protected, "/salles", salleCtl, writers)
	registerCRUD(protected, "/ordinateurs", ordinateurCtl, writers)
	registerCRUD(protected, "/incidents", incidentCtl, writers)
	registerCRUD(protected, "/utilisateurs", utilisateurCtl, adminOnly)

	positions := registerCRUD(protected, "/positions", positionCtl, writers)
	positions.GET("/salle/:refSalle", positionCtl.BySalle)

	materiels := registerCRUD(protected, "/materiels", materielCtl, writers)
	materiels.GET("/status/:status", materielCtl.ByStatus)

	inventaires := registerCRUD(protected, "/inventaires", inventaireCtl, writers)
	inventaires.PUT("/:id/close", writers, inventaireCtl.Close)
}

func anyHTTPS(origins []string) bool {
	for _, o := range origins {
		if strings.HasPrefix(o, "https://") {
			return true
		}
	}
	return false
}
