package repository

import (
	"context"
	"time"

	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a gorm backed payment repository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *billing.Payment) error {
	row := Payment{
		ID:         p.ID,
		UserID:     p.UserID,
		CardNumber: p.CardNumber,
		Amount:     p.Amount,
		CreatedAt:  p.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *paymentRepository) List(ctx context.Context) ([]*billing.Payment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*billing.Payment, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *paymentRepository) find(q *gorm.DB) ([]*billing.Payment, error) {
	var rows []Payment
	if err := q.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, &billing.Payment{
			ID:         row.ID,
			UserID:     row.UserID,
			CardNumber: row.CardNumber,
			Amount:     row.Amount,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a gorm backed subscription plan repository.
func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, p *billing.SubscriptionPlan) error {
	row := SubscriptionPlan{
		ID:         p.ID,
		Name:       p.Name,
		MaxVMs:     p.MaxVMs,
		MaxBackups: p.MaxBackups,
		Cost:       p.Cost,
		Duration:   p.Duration,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *planRepository) Get(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	var row SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapPlanToDomain(&row), nil
}

func (r *planRepository) List(ctx context.Context) ([]*billing.SubscriptionPlan, error) {
	var rows []SubscriptionPlan
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.SubscriptionPlan, 0, len(rows))
	for i := range rows {
		out = append(out, mapPlanToDomain(&rows[i]))
	}
	return out, nil
}

func mapPlanToDomain(row *SubscriptionPlan) *billing.SubscriptionPlan {
	return &billing.SubscriptionPlan{
		ID:         row.ID,
		Name:       row.Name,
		MaxVMs:     row.MaxVMs,
		MaxBackups: row.MaxBackups,
		Cost:       row.Cost,
		Duration:   row.Duration,
	}
}

type subscriptionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSubscriptionRepository creates a gorm backed subscription repository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db, now: time.Now}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *billing.UserSubscription) error {
	row := UserSubscription{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		StartedAt: s.StartedAt,
		ExpiresAt: s.ExpiresAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*billing.UserSubscription, error) {
	var rows []UserSubscription
	if err := r.db.WithContext(ctx).Order("started_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.UserSubscription, 0, len(rows))
	for i := range rows {
		out = append(out, mapSubscriptionToDomain(&rows[i]))
	}
	return out, nil
}

func (r *subscriptionRepository) GetActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*billing.UserSubscription, error) {
	var row UserSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, r.now().UTC()).
		Order("started_at DESC").
		First(&row).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSubscriptionToDomain(&row), nil
}

func mapSubscriptionToDomain(row *UserSubscription) *billing.UserSubscription {
	return &billing.UserSubscription{
		ID:        row.ID,
		UserID:    row.UserID,
		PlanID:    row.PlanID,
		StartedAt: row.StartedAt,
		ExpiresAt: row.ExpiresAt,
	}
}
