package http

import (
	"net/http"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/validator"
)

// setupSecretHeader gates the one-time owner bootstrap on /auth/register.
const setupSecretHeader = "X-Setup-Secret"

type authHandler struct {
	res       *responder
	validator validator.Validator
	sessions  *session.Store
	authSvc   service.AuthService
	userSvc   service.UserService
}

func newAuthHandler(
	res *responder,
	validator validator.Validator,
	sessions *session.Store,
	authSvc service.AuthService,
	userSvc service.UserService,
) *authHandler {
	return &authHandler{
		res:       res,
		validator: validator,
		sessions:  sessions,
		authSvc:   authSvc,
		userSvc:   userSvc,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	var actor *model.Principal
	if p, ok := session.FromContext(r.Context()); ok {
		actor = &p
	}

	user, err := h.userSvc.Register(r.Context(), service.RegisterUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		SetupSecret: r.Header.Get(setupSecretHeader),
		Actor:       actor,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	principal, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	if err := h.sessions.SetPrincipal(w, r, principal); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, principal)
}

func (h *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusNoContent, nil)
}

func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		h.res.writeError(w, r, apperr.UnauthorizedErr)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, principal)
}
