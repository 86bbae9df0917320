package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentInput is the body of POST /payments. BackupID selects the backup
// being paid for and is not stored on the payment.
type PaymentInput struct {
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
	BackupID   uuid.UUID       `json:"backup_id"`
}

type PlanInput struct {
	Name       string          `json:"name"`
	MaxVMs     int             `json:"max_vms" validate:"gte=0"`
	MaxBackups int             `json:"max_backups" validate:"gte=0"`
	Cost       decimal.Decimal `json:"cost"`
	Duration   int             `json:"duration" validate:"gte=0"`
}

type SubscribeInput struct {
	SubscriptionPlan uuid.UUID `json:"subscription_plan"`
}
