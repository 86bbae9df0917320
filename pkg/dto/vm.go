package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VMListItem is one row of the machine listing.
type VMListItem struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CPU          int             `json:"cpu"`
	RAM          int             `json:"ram"`
	Cost         decimal.Decimal `json:"cost"`
	Status       string          `json:"status"`
	UnbackedData float64         `json:"unbacked_data"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// VMDetail is a single machine with its owner.
type VMDetail struct {
	Name      string          `json:"name"`
	CPU       int             `json:"cpu"`
	RAM       int             `json:"ram"`
	Cost      decimal.Decimal `json:"cost"`
	Status    string          `json:"status"`
	ID        uuid.UUID       `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Owner     *uuid.UUID      `json:"owner"`
}

type AssignmentRead struct {
	ID         uuid.UUID `json:"id"`
	VM         uuid.UUID `json:"vm"`
	NewOwner   uuid.UUID `json:"new_owner"`
	AssignedAt time.Time `json:"assigned_at"`
}
