package model

import "github.com/google/uuid"

// Principal is the authenticated caller as carried by the session.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// IsOwner reports whether the principal holds the owner role.
func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}
