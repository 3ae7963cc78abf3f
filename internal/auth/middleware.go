package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// token's actor in the request context.
func (t *Tokens) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
			response.Unauthorized(w, "Missing bearer token")
			return
		}

		actor, err := t.Parse(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
