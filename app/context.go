package app

import (
	"context"

	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

type ctxKey string

const (
	ctxKeyActor     ctxKey = "actor"
	ctxKeyRequestID ctxKey = "request_id"
)

// Actor is the authenticated account making the request.
type Actor struct {
	Matricule string      `json:"matricule"`
	Role      models.Role `json:"role"`
}

// Can reports whether the actor holds one of roles.
func (a Actor) Can(roles ...models.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKeyActor).(Actor)
	return a, ok
}

// RequestIDFrom returns the id set by the RequestID middleware.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}
