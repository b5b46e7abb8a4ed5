package mw

import (
	"context"
	"net/http"
	"strings"

	"ownerconsole/internal/model"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

type Sessions interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUser() (model.Identity, bool)
	CurrentAdmin() (model.Identity, bool)
}

// RequireOwner lets requests through only while an owner session is live.
// Pages are redirected to /login; JSON callers get 401.
func RequireOwner(sessions Sessions) func(http.Handler) http.Handler {
	return require(sessions, sessions.CurrentUser)
}

func RequireAdmin(sessions Sessions) func(http.Handler) http.Handler {
	return require(sessions, sessions.CurrentAdmin)
}

func require(sessions Sessions, current func() (model.Identity, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated(r.Context()) {
				Unauthorized(w, r)
				return
			}
			id, ok := current()
			if !ok {
				Unauthorized(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityCtxKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Unauthorized answers a request that needs a fresh login.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func Identity(ctx context.Context) model.Identity {
	id, _ := ctx.Value(IdentityCtxKey).(model.Identity)
	return id
}
