package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogRead struct {
	ID        uuid.UUID      `json:"id"`
	User      *uuid.UUID     `json:"user"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
