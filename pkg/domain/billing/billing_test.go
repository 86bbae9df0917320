package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewPayment_DefaultCardNumber(t *testing.T) {
	p := NewPayment(nil, "", decimal.NewFromInt(5))
	assert.Equal(t, DefaultCardNumber, p.CardNumber)

	p = NewPayment(nil, "4111111111111111", decimal.NewFromInt(5))
	assert.Equal(t, "4111111111111111", p.CardNumber)
}

func TestSubscribe_ExpiresAfterDuration(t *testing.T) {
	plan := &SubscriptionPlan{ID: uuid.New(), Duration: 30}
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	sub := Subscribe(uuid.New(), plan, now)

	assert.Equal(t, plan.ID, sub.PlanID)
	assert.Equal(t, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), sub.ExpiresAt)
	assert.True(t, sub.Active(now))
	assert.True(t, sub.Active(now.AddDate(0, 0, 29)))
	assert.False(t, sub.Active(sub.ExpiresAt))
	assert.False(t, sub.Active(now.Add(-time.Second)))
}
