package db

import (
	"context"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
	"github.com/TheReasonWePlay/FTVN-sub001/worker"
)

// Stats is the dashboard summary. Each field is filled by its own query.
type Stats struct {
	MaterielsByStatus  map[models.MaterielStatus]int64 `json:"materielsByStatus"`
	Materiels          int64                           `json:"materiels"`
	Personnes          int64                           `json:"personnes"`
	Salles             int64                           `json:"salles"`
	Positions          int64                           `json:"positions"`
	ActiveAffectations int64                           `json:"activeAffectations"`
	OpenIncidents      int64                           `json:"openIncidents"`
	RunningInventaires int64                           `json:"runningInventaires"`
}

// DashboardStats runs the summary queries in parallel on pool.
func (r *Repo) DashboardStats(ctx context.Context, pool *worker.Pool) (*Stats, error) {
	var st Stats
	var byStatus []struct {
		Status models.MaterielStatus
		N      int64
	}

	count := func(dst *int64, model any, query string, args ...any) worker.Task {
		return func(ctx context.Context) error {
			q := r.DB.WithContext(ctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return classify(q.Count(dst).Error, "dashboard", opRead)
		}
	}

	err := pool.Run(ctx,
		func(ctx context.Context) error {
			err := r.DB.WithContext(ctx).Model(&models.Materiel{}).
				Select("status, COUNT(*) AS n").
				Group("status").
				Scan(&byStatus).Error
			return classify(err, "dashboard", opRead)
		},
		count(&st.Materiels, &models.Materiel{}, ""),
		count(&st.Personnes, &models.Personne{}, ""),
		count(&st.Salles, &models.Salle{}, ""),
		count(&st.Positions, &models.Position{}, ""),
		count(&st.ActiveAffectations, &models.Affectation{}, "date_fin IS NULL"),
		count(&st.OpenIncidents, &models.Incident{}, "statut <> ?", models.IncidentResolu),
		count(&st.RunningInventaires, &models.Inventaire{}, "statut = ?", models.InventaireEnCours),
	)
	if err != nil {
		return nil, err
	}

	st.MaterielsByStatus = make(map[models.MaterielStatus]int64, len(models.MaterielStatuses))
	for _, s := range models.MaterielStatuses {
		st.MaterielsByStatus[s] = 0
	}
	for _, row := range byStatus {
		st.MaterielsByStatus[row.Status] = row.N
	}
	return &st, nil
}
