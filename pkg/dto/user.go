// Package dto holds the JSON shapes returned by the API.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserRead is a user as shown to clients. The password hash never leaves
// the service layer.
type UserRead struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     *string   `json:"role"`
}

// Registration is returned by the token-issuing signup path.
type Registration struct {
	User  UserRead `json:"user"`
	Token string   `json:"token"`
}

type SubUserRead struct {
	ID            uuid.UUID `json:"id"`
	Parent        uuid.UUID `json:"parent_user"`
	SubUsername   string    `json:"sub_username"`
	AssignedModel string    `json:"assigned_model"`
	CreatedAt     time.Time `json:"created_at"`
}
