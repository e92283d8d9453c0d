package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/authz"
	"github.com/soundstage/soundstage/internal/gateway/middleware"
	"github.com/soundstage/soundstage/internal/modules/account/infrastructure/jwt"
)

const testSecret = "test-secret"

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(testSecret, time.Hour, uuid.New(), "nina", role)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	mw := middleware.NewAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		var gotRole interface{}
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRole = r.Context().Value(middleware.ContextKeyRole)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "artist"))
		rec := httptest.NewRecorder()

		mw.RequireAuth(inner).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, gotRole)
	})
}

func TestRequirePermission(t *testing.T) {
	mw := middleware.NewAuthMiddleware(testSecret)

	t.Run("denied role never reaches the handler", func(t *testing.T) {
		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})

		req := httptest.NewRequest(http.MethodPost, "/songs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "basic"))
		rec := httptest.NewRecorder()

		mw.RequirePermission(authz.ActionCreateSong, next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("allowed role passes", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/songs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "artist"))
		rec := httptest.NewRecorder()

		mw.RequirePermission(authz.ActionCreateSong, next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unknown role in token is denied", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})

		req := httptest.NewRequest(http.MethodPost, "/songs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "superuser"))
		rec := httptest.NewRecorder()

		mw.RequirePermission(authz.ActionCreateSong, next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
