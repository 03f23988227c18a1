// app/seenmw.go
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/logger"
)

type SeenMarker interface {
	MarkSeen(ctx context.Context, matricule string, window time.Duration) (bool, error)
}

type ActivityToucher interface {
	TouchActivite(ctx context.Context, matricule string) error
}

// TouchLastSeen stamps derniere_activite at most once per throttle window per account.
// Failures are logged and never block the request.
func TouchLastSeen(marker SeenMarker, users ActivityToucher, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c.Request.Context())
		if !ok || a.Matricule == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		first, err := marker.MarkSeen(ctx, a.Matricule, throttle)
		if err != nil {
			logger.Debug("mark seen failed", zap.String("matricule", a.Matricule), zap.Error(err))
		} else if first {
			if err := users.TouchActivite(ctx, a.Matricule); err != nil {
				logger.Warn("touch activity failed", zap.String("matricule", a.Matricule), zap.Error(err))
			}
		}
		c.Next()
	}
}
