package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StandardRoleName is the only role allowed to receive moved virtual machines.
const StandardRoleName = "Standard User"

// ErrUserUnauthorized is returned when credentials do not match.
var ErrUserUnauthorized = errors.New("user unauthorized")

// Role groups users by what they may do. Exactly one role is flagged as the
// default and is given to every signup.
type Role struct {
	ID        uuid.UUID
	Name      string
	IsDefault bool
}

// IsStandard reports whether r is the "Standard User" role.
func (r *Role) IsStandard() bool {
	return r != nil && r.Name == StandardRoleName
}

// User represents a user in the system. Password always holds a one-way hash.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	RoleID    *uuid.UUID
	Role      *Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a user from an already hashed password.
func New(username, email, hashedPassword string, role *Role) *User {
	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role != nil {
		u.RoleID = &role.ID
		u.Role = role
	}
	return u
}

// RoleName returns the name of the user's role, or "" when none is loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
