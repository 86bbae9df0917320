package billing_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/vmadmin/internal/fixtures/memory"
	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	billingsvc "github.com/amirasaad/vmadmin/pkg/service/billing"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentSuite struct {
	suite.Suite
	uow    *memory.UoW
	svc    *billingsvc.Service
	backup *backup.Backup
	payer  *user.User
}

func (s *PaymentSuite) SetupTest() {
	s.uow = memory.New()
	s.svc = billingsvc.New(s.uow, slog.Default())
	s.backup = backup.New(uuid.New(), 12, decimal.NewFromInt(4))
	s.uow.SeedBackup(s.backup)
	s.payer = user.New("payer", "payer@example.com", "hash", nil)
	s.uow.SeedUser(s.payer)
}

func (s *PaymentSuite) stored() *backup.Backup {
	b, err := s.uow.Backups().Get(context.Background(), s.backup.ID)
	s.Require().NoError(err)
	return b
}

func (s *PaymentSuite) TestMarksBackupPaidAndRecordsPayment() {
	p, err := s.svc.CreatePayment(context.Background(), &s.payer.ID, billingsvc.PaymentInput{
		CardNumber: "4111111111111111",
		Amount:     decimal.RequireFromString("4.00"),
		BackupID:   s.backup.ID,
	})
	s.Require().NoError(err)
	s.Equal("4111111111111111", p.CardNumber)
	s.True(decimal.NewFromInt(4).Equal(p.Amount))
	s.Equal(backup.StatusPaid, s.stored().Status)
	s.Equal(1, s.uow.PaymentCount())
	s.Equal(1, s.uow.AuditCount())
}

func (s *PaymentSuite) TestUnknownBackupChangesNothing() {
	_, err := s.svc.CreatePayment(context.Background(), &s.payer.ID, billingsvc.PaymentInput{
		CardNumber: "4111111111111111",
		Amount:     decimal.NewFromInt(4),
		BackupID:   uuid.New(),
	})
	var verr *validation.Error
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"Backup with this ID does not exist."}, verr.Messages("backup_id"))
	s.Equal(backup.StatusPending, s.stored().Status)
	s.Zero(s.uow.PaymentCount())
	s.Zero(s.uow.AuditCount())
}

func (s *PaymentSuite) TestFailedPaymentRollsBackStatus() {
	boom := errors.New("insert failed")
	s.uow.FailOn("payments.create", boom)

	_, err := s.svc.CreatePayment(context.Background(), nil, billingsvc.PaymentInput{
		Amount:   decimal.NewFromInt(4),
		BackupID: s.backup.ID,
	})
	s.Require().ErrorIs(err, boom)
	s.Equal(backup.StatusPending, s.stored().Status)
	s.Zero(s.uow.PaymentCount())
}

func (s *PaymentSuite) TestPayingTwiceRecordsTwoPayments() {
	in := billingsvc.PaymentInput{Amount: decimal.NewFromInt(1), BackupID: s.backup.ID}
	_, err := s.svc.CreatePayment(context.Background(), nil, in)
	s.Require().NoError(err)
	_, err = s.svc.CreatePayment(context.Background(), nil, in)
	s.Require().NoError(err)
	s.Equal(backup.StatusPaid, s.stored().Status)
	s.Equal(2, s.uow.PaymentCount())
}

// Card numbers are only length-checked: no digit or exact-length rule.
func (s *PaymentSuite) TestCardNumberIsPermissive() {
	ctx := context.Background()

	p, err := s.svc.CreatePayment(ctx, nil, billingsvc.PaymentInput{Amount: decimal.NewFromInt(1), BackupID: s.backup.ID})
	s.Require().NoError(err)
	s.Equal(billing.DefaultCardNumber, p.CardNumber)

	p, err = s.svc.CreatePayment(ctx, nil, billingsvc.PaymentInput{
		CardNumber: "not-a-card", Amount: decimal.NewFromInt(1), BackupID: s.backup.ID,
	})
	s.Require().NoError(err)
	s.Equal("not-a-card", p.CardNumber)

	_, err = s.svc.CreatePayment(ctx, nil, billingsvc.PaymentInput{
		CardNumber: "41111111111111112", Amount: decimal.NewFromInt(1), BackupID: s.backup.ID,
	})
	s.True(validation.Is(err, "card_number"))
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentSuite))
}

func TestSubscribeAndBilling(t *testing.T) {
	uow := memory.New()
	svc := billingsvc.New(uow, slog.Default())
	ctx := context.Background()
	u := user.New("sub", "sub@example.com", "hash", nil)
	uow.SeedUser(u)

	plan, err := svc.CreatePlan(ctx, billingsvc.PlanInput{
		Name: "Pro", MaxVMs: 10, MaxBackups: 5, Cost: decimal.NewFromInt(20), Duration: 30,
	})
	require.NoError(t, err)

	_, err = svc.CreatePlan(ctx, billingsvc.PlanInput{Name: "Pro"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	lines, err := svc.Billing(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	sub, err := svc.Subscribe(ctx, u.ID, plan.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, sub.StartedAt.Add(30*24*time.Hour), sub.ExpiresAt, time.Second)

	b := backup.New(uuid.New(), 1, decimal.Zero)
	uow.SeedBackup(b)
	_, err = svc.CreatePayment(ctx, &u.ID, billingsvc.PaymentInput{Amount: decimal.NewFromInt(20), BackupID: b.ID})
	require.NoError(t, err)

	lines, err = svc.Billing(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Plan)
	assert.Equal(t, "Pro", lines[0].Plan.Name)
}

func TestSubscribe_Validation(t *testing.T) {
	svc := billingsvc.New(memory.New(), slog.Default())
	userID, planID := uuid.New(), uuid.New()

	_, err := svc.Subscribe(context.Background(), userID, planID)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages("user"), 1)
	assert.Contains(t, verr.Messages("subscription_plan")[0], planID.String())
}

func TestGetPlan_NotFound(t *testing.T) {
	svc := billingsvc.New(memory.New(), slog.Default())
	_, err := svc.GetPlan(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
