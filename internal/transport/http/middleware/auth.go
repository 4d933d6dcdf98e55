package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/felicityfest/felicity-backend/internal/domain"
	"github.com/felicityfest/felicity-backend/internal/security"
	"github.com/felicityfest/felicity-backend/internal/transport/http/response"
)

type ctxKey string

const ctxActor ctxKey = "actor"

type AuthMiddleware struct {
	verifier security.AccessTokenVerifier
}

func NewAuth(verifier security.AccessTokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Require verifies the bearer token and attaches the resolved actor. Role
// comes from the token; profile existence is checked per-operation by the
// application layer.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(h, "Bearer ") {
			response.Fail(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil, response.RequestIDFromRequest(r))
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

		claims, err := a.verifier.VerifyAccessToken(raw)
		if err != nil {
			response.Fail(w, http.StatusUnauthorized, "unauthorized", "unauthorized",
				map[string]string{"reason": err.Error()}, response.RequestIDFromRequest(r))
			return
		}

		actor := domain.Actor{ID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxActor, actor)
}

func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	v, ok := ctx.Value(ctxActor).(domain.Actor)
	return v, ok
}

// Actor returns the request's actor; middleware ordering guarantees presence
// on authed routes.
func Actor(r *http.Request) domain.Actor {
	v, _ := ActorFrom(r.Context())
	return v
}
