package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

// OwnerKey holds the authenticated owner id in the request context.
const OwnerKey contextKey = "owner"

// SessionCookie carries the session token between requests.
const SessionCookie = "leaf_session"

// SessionResolver validates a session token and returns the owner id,
// refreshing the session as a side effect.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionAuth resolves the current owner once per request, before any
// protected resource is touched. It never rejects by itself; RequireOwner
// and PageGuard enforce policy downstream.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			owner, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				// expired or unknown token: proceed anonymous
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), OwnerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext extracts the authenticated owner id, if any.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerKey).(string)
	return owner, ok && owner != ""
}

// Authorize is the route policy: the dashboard area requires an owner, the
// login page requires the absence of one, everything else passes. The
// returned redirect is empty when the request is allowed.
func Authorize(path, owner string) (allowed bool, redirect string) {
	switch {
	case path == "/login" || strings.HasPrefix(path, "/login/"):
		if owner != "" {
			return false, "/dashboard"
		}
	case strings.HasPrefix(path, "/dashboard"):
		if owner == "" {
			return false, "/login"
		}
	}
	return true, ""
}

// PageGuard applies Authorize to browser-facing routes with 302 redirects.
func PageGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ := OwnerFromContext(r.Context())
		if allowed, target := Authorize(r.URL.Path, owner); !allowed {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner protects JSON API routes: anonymous requests get 401.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := OwnerFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
