// Package billing holds payments and subscription plans.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// CardNumberMaxLength is the declared width of the card_number column.
	CardNumberMaxLength = 16
	// DefaultCardNumber is what the card_number column falls back to,
	// matching the value backfilled into pre-existing payment rows.
	DefaultCardNumber = "4567"
)

// Payment is an immutable record of money received.
type Payment struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	CardNumber string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// NewPayment builds a payment. An empty card number takes the column default.
func NewPayment(userID *uuid.UUID, cardNumber string, amount decimal.Decimal) *Payment {
	if cardNumber == "" {
		cardNumber = DefaultCardNumber
	}
	return &Payment{
		ID:         uuid.New(),
		UserID:     userID,
		CardNumber: cardNumber,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
}

// SubscriptionPlan describes the limits a user buys. Duration is in days.
type SubscriptionPlan struct {
	ID         uuid.UUID
	Name       string
	MaxVMs     int
	MaxBackups int
	Cost       decimal.Decimal
	Duration   int
}

// UserSubscription binds a user to a plan for a period.
type UserSubscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PlanID    uuid.UUID
	StartedAt time.Time
	ExpiresAt time.Time
}

// Subscribe starts a subscription to plan at now.
func Subscribe(userID uuid.UUID, plan *SubscriptionPlan, now time.Time) *UserSubscription {
	return &UserSubscription{
		ID:        uuid.New(),
		UserID:    userID,
		PlanID:    plan.ID,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, 0, plan.Duration),
	}
}

// Active reports whether the subscription covers t.
func (s *UserSubscription) Active(t time.Time) bool {
	return !t.Before(s.StartedAt) && t.Before(s.ExpiresAt)
}
