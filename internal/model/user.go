package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user. Owners administer staff and see
// monthly/yearly reports, staff run day-to-day product and sale operations.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

func (r Role) Validate() error {
	switch r {
	case RoleOwner, RoleStaff:
		return nil
	default:
		return fmt.Errorf("unknown role: %s", r)
	}
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	// PasswordHash never leaves the process.
	PasswordHash string `json:"-"`

	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
