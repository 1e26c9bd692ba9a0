package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/apierr"
	"github.com/dukasmart/partspos/internal/http/session"
)

// Session resolves the session cookie into a principal on the request
// context. Requests without a valid session pass through anonymous.
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, ok := store.Principal(r); ok {
				r = r.WithContext(session.NewContext(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			writeError(w, apperr.UnauthorizedErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner rejects requests whose principal is not an owner. Must run
// after RequireAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := session.FromContext(r.Context())
		if !ok {
			writeError(w, apperr.UnauthorizedErr)
			return
		}
		if !p.IsOwner() {
			writeError(w, apperr.ForbiddenErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(res)
}
