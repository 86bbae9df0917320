// Package billing records payments against backups and manages
// subscription plans.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const msgBackupMissing = "Backup with this ID does not exist."

func msgInvalidPK(id uuid.UUID) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", id.String())
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// PaymentInput pays for a backup. BackupID is never stored on the payment.
type PaymentInput struct {
	CardNumber string
	Amount     decimal.Decimal
	BackupID   uuid.UUID
}

// CreatePayment checks the backup exists, marks it paid and records the
// payment, all in one transaction. Paying an already paid backup records
// another payment.
func (s *Service) CreatePayment(
	ctx context.Context,
	userID *uuid.UUID,
	in PaymentInput,
) (p *billing.Payment, err error) {
	log := s.logger.With("context", "CreatePayment", "backupID", in.BackupID)
	log.Debug("CreatePayment called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		err := validation.New().
			Field("card_number", validation.MaxLength(in.CardNumber, billing.CardNumberMaxLength)).
			Field("backup_id", func(ctx context.Context) error {
				ok, err := uow.Backups().Exists(ctx, in.BackupID)
				if err != nil {
					return err
				}
				if !ok {
					return validation.Fail(msgBackupMissing)
				}
				return nil
			}).
			Validate(ctx)
		if err != nil {
			return err
		}

		b, err := uow.Backups().Get(ctx, in.BackupID)
		if err != nil {
			return fmt.Errorf("load backup: %w", err)
		}
		previous := b.Status
		b.MarkPaid()
		if err := uow.Backups().Update(ctx, b); err != nil {
			return fmt.Errorf("mark backup paid: %w", err)
		}

		p = billing.NewPayment(userID, in.CardNumber, in.Amount)
		if err := uow.Payments().Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return uow.AuditLogs().Create(ctx, audit.New(userID, audit.ActionPaymentCreated, map[string]any{
			"payment_id":      p.ID.String(),
			"backup_id":       b.ID.String(),
			"amount":          p.Amount.String(),
			"previous_status": string(previous),
		}))
	})
	if err != nil {
		log.Error("CreatePayment failed", "error", err)
		return nil, err
	}
	log.Info("CreatePayment successful", "paymentID", p.ID)
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context) ([]*billing.Payment, error) {
	return s.uow.Payments().List(ctx)
}

// Line is one payment with the plan the payer is subscribed to, if any.
type Line struct {
	Payment *billing.Payment
	Plan    *billing.SubscriptionPlan
}

// Billing lists userID's payments, each paired with the user's active plan.
func (s *Service) Billing(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	log := s.logger.With("context", "Billing", "userID", userID)
	payments, err := s.uow.Payments().ListByUser(ctx, userID)
	if err != nil {
		log.Error("Billing failed", "error", err)
		return nil, err
	}
	var plan *billing.SubscriptionPlan
	sub, err := s.uow.Subscriptions().GetActiveByUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// no active plan
	case err != nil:
		log.Error("Billing failed", "error", err)
		return nil, err
	default:
		if plan, err = s.uow.Plans().Get(ctx, sub.PlanID); err != nil {
			log.Error("Billing plan lookup failed", "planID", sub.PlanID, "error", err)
			return nil, err
		}
	}
	lines := make([]Line, 0, len(payments))
	for _, p := range payments {
		lines = append(lines, Line{Payment: p, Plan: plan})
	}
	return lines, nil
}

// PlanInput describes a subscription plan. Duration is in days.
type PlanInput struct {
	Name       string
	MaxVMs     int
	MaxBackups int
	Cost       decimal.Decimal
	Duration   int
}

func (s *Service) CreatePlan(ctx context.Context, in PlanInput) (*billing.SubscriptionPlan, error) {
	log := s.logger.With("context", "CreatePlan", "name", in.Name)
	err := validation.New().
		Field("name", validation.Required(in.Name)).
		Field("name", validation.MaxLength(in.Name, 100)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}
	p := &billing.SubscriptionPlan{
		ID:         uuid.New(),
		Name:       in.Name,
		MaxVMs:     in.MaxVMs,
		MaxBackups: in.MaxBackups,
		Cost:       in.Cost,
		Duration:   in.Duration,
	}
	if err := s.uow.Plans().Create(ctx, p); err != nil {
		log.Error("CreatePlan failed", "error", err)
		return nil, err
	}
	log.Info("CreatePlan successful", "planID", p.ID)
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]*billing.SubscriptionPlan, error) {
	return s.uow.Plans().List(ctx)
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	return s.uow.Plans().Get(ctx, id)
}

// Subscribe starts a subscription of userID to planID now.
func (s *Service) Subscribe(
	ctx context.Context,
	userID, planID uuid.UUID,
) (sub *billing.UserSubscription, err error) {
	log := s.logger.With("context", "Subscribe", "userID", userID, "planID", planID)
	log.Debug("Subscribe called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var plan *billing.SubscriptionPlan
		err := validation.New().
			Field("user", func(ctx context.Context) error {
				ok, err := uow.Users().Exists(ctx, userID)
				if err != nil {
					return err
				}
				if !ok {
					return validation.Fail(msgInvalidPK(userID))
				}
				return nil
			}).
			Field("subscription_plan", func(ctx context.Context) error {
				var err error
				plan, err = uow.Plans().Get(ctx, planID)
				if errors.Is(err, domain.ErrNotFound) {
					return validation.Fail(msgInvalidPK(planID))
				}
				return err
			}).
			Validate(ctx)
		if err != nil {
			return err
		}
		sub = billing.Subscribe(userID, plan, s.now().UTC())
		return uow.Subscriptions().Create(ctx, sub)
	})
	if err != nil {
		log.Error("Subscribe failed", "error", err)
		return nil, err
	}
	log.Info("Subscribe successful", "expiresAt", sub.ExpiresAt)
	return sub, nil
}

func (s *Service) ListSubscriptions(ctx context.Context) ([]*billing.UserSubscription, error) {
	return s.uow.Subscriptions().List(ctx)
}
