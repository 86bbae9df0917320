package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BackupRead struct {
	ID        uuid.UUID       `json:"id"`
	VM        uuid.UUID       `json:"vm"`
	Size      float64         `json:"size"`
	Bill      decimal.Decimal `json:"bill"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type SnapshotRead struct {
	ID        uuid.UUID `json:"id"`
	VM        uuid.UUID `json:"vm"`
	Name      string    `json:"name"`
	Size      float64   `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
