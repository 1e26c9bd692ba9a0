package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/internal/http/middleware"
	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/model"
)

func loginCookies(t *testing.T, store *session.Store, role model.Role) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, store.SetPrincipal(w, r, model.Principal{
		ID:    uuid.New(),
		Name:  "Test",
		Email: "test@example.com",
		Role:  role,
	}))
	return w.Result().Cookies()
}

func newGuardedRouter(store *session.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Session(store))

	r.With(middleware.RequireAuth).Get("/private", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(middleware.RequireOwner).Get("/admin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	store := session.NewStore("test-secret", 3600)
	router := newGuardedRouter(store)

	t.Run("Should reject anonymous requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "UNAUTHORIZED")
	})

	t.Run("Should pass authenticated requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		for _, c := range loginCookies(t, store, model.RoleStaff) {
			req.AddCookie(c)
		}
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestRequireOwner(t *testing.T) {
	store := session.NewStore("test-secret", 3600)
	router := newGuardedRouter(store)

	t.Run("Should reject staff", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range loginCookies(t, store, model.RoleStaff) {
			req.AddCookie(c)
		}
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "FORBIDDEN")
	})

	t.Run("Should pass owners", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range loginCookies(t, store, model.RoleOwner) {
			req.AddCookie(c)
		}
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should reject anonymous requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
