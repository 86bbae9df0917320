package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRead omits the backup that was paid for; it is not stored.
type PaymentRead struct {
	ID         uuid.UUID       `json:"id"`
	User       *uuid.UUID      `json:"user"`
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

type PlanRead struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	MaxVMs     int             `json:"max_vms"`
	MaxBackups int             `json:"max_backups"`
	Cost       decimal.Decimal `json:"cost"`
	Duration   int             `json:"duration"`
}

// PlanSummary is the plan as nested inside billing lines.
type PlanSummary struct {
	Name       string          `json:"name"`
	MaxVMs     int             `json:"max_vms"`
	MaxBackups int             `json:"max_backups"`
	Cost       decimal.Decimal `json:"cost"`
}

type BillingLine struct {
	Amount           decimal.Decimal `json:"amount"`
	CreatedAt        time.Time       `json:"created_at"`
	SubscriptionPlan *PlanSummary    `json:"subscription_plan"`
}

type SubscriptionRead struct {
	User             uuid.UUID `json:"user"`
	SubscriptionPlan uuid.UUID `json:"subscription_plan"`
	StartedAt        time.Time `json:"started_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}
