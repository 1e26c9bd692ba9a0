package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/dukasmart/partspos/internal/model"
)

const cookieName = "partspos_session"

// Session value keys. Values are kept as plain strings so the cookie codec
// needs no type registration.
const (
	keyUserID = "user_id"
	keyName   = "name"
	keyEmail  = "email"
	keyRole   = "role"
)

type contextKey struct{}

// NewContext returns a context carrying the authenticated principal.
func NewContext(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the authenticated principal from the context.
func FromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(model.Principal)
	return p, ok
}

// Store persists the principal in a signed cookie.
type Store struct {
	store *sessions.CookieStore
}

func NewStore(secret string, maxAge int) *Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{store: store}
}

func (s *Store) SetPrincipal(w http.ResponseWriter, r *http.Request, p model.Principal) error {
	sess, _ := s.store.Get(r, cookieName)
	sess.Values[keyUserID] = p.ID.String()
	sess.Values[keyName] = p.Name
	sess.Values[keyEmail] = p.Email
	sess.Values[keyRole] = string(p.Role)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Principal reads the principal back from the request cookie. A missing,
// expired or tampered cookie yields ok=false.
func (s *Store) Principal(r *http.Request) (model.Principal, bool) {
	sess, err := s.store.Get(r, cookieName)
	if err != nil || sess.IsNew {
		return model.Principal{}, false
	}

	rawID, ok := sess.Values[keyUserID].(string)
	if !ok {
		return model.Principal{}, false
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.Principal{}, false
	}

	name, _ := sess.Values[keyName].(string)
	email, _ := sess.Values[keyEmail].(string)
	role, _ := sess.Values[keyRole].(string)
	if model.Role(role).Validate() != nil {
		return model.Principal{}, false
	}

	return model.Principal{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  model.Role(role),
	}, true
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, cookieName)
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
