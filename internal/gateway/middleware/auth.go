package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/soundstage/soundstage/internal/authz"
	accountJwt "github.com/soundstage/soundstage/internal/modules/account/infrastructure/jwt"
	"github.com/soundstage/soundstage/internal/modules/account/domain"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyRole     contextKey = "role"
)

type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware creates middleware that validates session tokens with the
// provided JWT secret.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// RequireAuth enforces a valid Bearer token and injects the session identity
// (user id, username, role) into the request context. The role in the token
// is the sole authorization input for the token's lifetime.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("token")
		}
		if tokenStr == "" {
			http.Error(w, `{"error": "missing or invalid authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := accountJwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, ContextKeyRole, domain.Role(claims.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission chains RequireAuth with the authorization gate: the
// session role must be allowed to perform action, otherwise the request is
// rejected with 403 before any state is touched. Unknown actions deny.
func (m *AuthMiddleware) RequirePermission(action authz.Action, next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(ContextKeyRole).(domain.Role)
		if !ok || !authz.Allowed(role, action) {
			http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// FlexibleAuth attempts to authenticate but proceeds as guest when no valid
// token is present.
func (m *AuthMiddleware) FlexibleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := accountJwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, ContextKeyRole, domain.Role(claims.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
