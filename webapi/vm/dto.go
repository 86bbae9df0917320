package vm

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	Name   string          `json:"name" validate:"required,max=100"`
	Status string          `json:"status"`
	CPU    int             `json:"cpu" validate:"gte=0"`
	RAM    int             `json:"ram" validate:"gte=0"`
	Cost   decimal.Decimal `json:"cost"`
}

// UpdateInput is a partial update; omitted fields keep their value.
type UpdateInput struct {
	Name   *string          `json:"name" validate:"omitempty,max=100"`
	Status *string          `json:"status"`
	CPU    *int             `json:"cpu" validate:"omitempty,gte=0"`
	RAM    *int             `json:"ram" validate:"omitempty,gte=0"`
	Cost   *decimal.Decimal `json:"cost"`
}

type AssignInput struct {
	User uuid.UUID `json:"user"`
	VM   uuid.UUID `json:"vm"`
}

type MoveInput struct {
	NewOwner string `json:"new_owner"`
}
