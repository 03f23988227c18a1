package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
	"github.com/TheReasonWePlay/FTVN-sub001/session"
)

// SessionReader resolves a session token.
type SessionReader interface {
	Get(ctx context.Context, id string) (*session.AppSession, error)
	Delete(ctx context.Context, id string) error
}

// AccountReader loads the account behind a session.
type AccountReader interface {
	Get(ctx context.Context, matricule string) (*models.Utilisateur, error)
}

// SessionToken reads the session id from the cookie, then from an Authorization: Bearer header.
func SessionToken(c *gin.Context, cookie string) string {
	if ck, err := c.Request.Cookie(cookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// AuthRequired resolves the session to an active account and stores its Actor
// in the request context. The role comes from the account, not the session.
func AuthRequired(sessions SessionReader, accounts AccountReader, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := SessionToken(c, cookie)
		if token == "" {
			Fail(c, apperrors.Authentication("authentication required"))
			return
		}
		as, err := sessions.Get(ctx, token)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				Fail(c, apperrors.Authentication("invalid session"))
				return
			}
			Fail(c, apperrors.Database(err, "session lookup failed"))
			return
		}

		u, err := accounts.Get(ctx, as.Matricule)
		if err != nil || !u.Actif {
			if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
				Fail(c, err)
				return
			}
			_ = sessions.Delete(ctx, token)
			Fail(c, apperrors.Authentication("invalid session"))
			return
		}

		actor := Actor{Matricule: u.Matricule, Role: u.Role}
		c.Request = c.Request.WithContext(WithActor(ctx, actor))
		c.Set("matricule", actor.Matricule)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c.Request.Context())
		if !ok {
			Fail(c, apperrors.Authentication("authentication required"))
			return
		}
		if !a.Can(roles...) {
			Fail(c, apperrors.Authorization("role %s is not allowed to perform this action", a.Role))
			return
		}
		c.Next()
	}
}
