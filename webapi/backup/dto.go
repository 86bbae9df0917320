package backup

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	VM   uuid.UUID `json:"vm"`
	Size float64   `json:"size"`
}

type BilledInput struct {
	VM   uuid.UUID       `json:"vm"`
	Size float64         `json:"size"`
	Bill decimal.Decimal `json:"bill"`
}

type SnapshotInput struct {
	VM   uuid.UUID `json:"vm"`
	Name string    `json:"name"`
	Size float64   `json:"size"`
}
