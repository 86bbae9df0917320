// Package audit records who did what.
package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionPaymentCreated = "payment.created"
	ActionVMAssigned     = "vm.assigned"
	ActionVMMoved        = "vm.moved"
)

// Log is a single audit entry. Details is free-form.
type Log struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}

// New stamps an entry for action.
func New(userID *uuid.UUID, action string, details map[string]any) *Log {
	return &Log{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
}
