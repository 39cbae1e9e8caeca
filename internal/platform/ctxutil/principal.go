package ctxutil

import (
	"context"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
)

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p types.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated principal attached by the auth
// middleware, or false when the request resolved unauthenticated.
func GetPrincipal(ctx context.Context) (types.Principal, bool) {
	p, ok := ctx.Value(principalKey).(types.Principal)
	return p, ok
}
