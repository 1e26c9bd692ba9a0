package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/model"
)

func TestStoreRoundTrip(t *testing.T) {
	store := session.NewStore("test-secret", 3600)

	principal := model.Principal{
		ID:    uuid.New(),
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  model.RoleStaff,
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, store.SetPrincipal(w, r, principal))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	r2 := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range cookies {
		r2.AddCookie(c)
	}

	got, ok := store.Principal(r2)
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestPrincipalWithoutCookie(t *testing.T) {
	store := session.NewStore("test-secret", 3600)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	_, ok := store.Principal(r)
	assert.False(t, ok)
}

func TestPrincipalWithTamperedCookie(t *testing.T) {
	store := session.NewStore("test-secret", 3600)
	other := session.NewStore("different-secret", 3600)

	principal := model.Principal{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Role: model.RoleOwner}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, other.SetPrincipal(w, r, principal))

	r2 := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range w.Result().Cookies() {
		r2.AddCookie(c)
	}

	_, ok := store.Principal(r2)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	store := session.NewStore("test-secret", 3600)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	require.NoError(t, store.Clear(w, r))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}
