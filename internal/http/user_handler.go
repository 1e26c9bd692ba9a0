package http

import (
	"net/http"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/validator"
)

type userHandler struct {
	res       *responder
	validator validator.Validator
	userSvc   service.UserService
}

func newUserHandler(
	res *responder,
	validator validator.Validator,
	userSvc service.UserService,
) *userHandler {
	return &userHandler{
		res:       res,
		validator: validator,
		userSvc:   userSvc,
	}
}

func (h *userHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.ListUsers(r.Context())
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, users)
}

type updateUserRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=owner staff"`
}

func (h *userHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	actor, ok := session.FromContext(r.Context())
	if !ok {
		h.res.writeError(w, r, apperr.UnauthorizedErr)
		return
	}

	// Anyone may edit profile fields, role changes are owner territory.
	var role *model.Role
	if req.Role != nil {
		if !actor.IsOwner() {
			h.res.writeError(w, r, apperr.ForbiddenErr)
			return
		}
		v := model.Role(*req.Role)
		role = &v
	}

	user, err := h.userSvc.UpdateUser(r.Context(), service.UpdateUserParams{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, user)
}

func (h *userHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	if err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusNoContent, nil)
}
