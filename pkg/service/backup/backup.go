// Package backup validates and stores machine backups and snapshots.
package backup

import (
	"context"
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// messages differ between the plain and billed create paths.
type messages struct {
	vmMissing    string
	sizeNotPos   string
	billNegative string
}

var (
	createMessages = messages{
		vmMissing:  "The specified virtual machine does not exist.",
		sizeNotPos: "Backup size must be greater than zero.",
	}
	billedMessages = messages{
		vmMissing:    "Virtual Machine does not exist.",
		sizeNotPos:   "Size must be greater than zero.",
		billNegative: "Bill cannot be negative.",
	}
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput is a backup request without a bill.
type CreateInput struct {
	VMID uuid.UUID
	Size float64
}

// BilledInput is a backup request carrying its bill.
type BilledInput struct {
	VMID uuid.UUID
	Size float64
	Bill decimal.Decimal
}

func vmExists(uow repository.UnitOfWork, id uuid.UUID, msg string) validation.Rule {
	return func(ctx context.Context) error {
		ok, err := uow.VirtualMachines().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return validation.Fail(msg)
		}
		return nil
	}
}

func positive(size float64, msg string) validation.Rule {
	return func(context.Context) error {
		if size <= 0 {
			return validation.Fail(msg)
		}
		return nil
	}
}

// Create stores a pending backup with a zero bill.
func (s *Service) Create(ctx context.Context, in CreateInput) (*backup.Backup, error) {
	return s.create(ctx, in.VMID, in.Size, decimal.Zero, createMessages)
}

// CreateBilled stores a pending backup with in.Bill.
func (s *Service) CreateBilled(ctx context.Context, in BilledInput) (*backup.Backup, error) {
	return s.create(ctx, in.VMID, in.Size, in.Bill, billedMessages)
}

func (s *Service) create(
	ctx context.Context,
	vmID uuid.UUID,
	size float64,
	bill decimal.Decimal,
	msgs messages,
) (b *backup.Backup, err error) {
	log := s.logger.With("context", "CreateBackup", "vmID", vmID)
	log.Debug("CreateBackup called", "size", size)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		v := validation.New().
			Field("vm", vmExists(uow, vmID, msgs.vmMissing)).
			Field("size", positive(size, msgs.sizeNotPos))
		if msgs.billNegative != "" {
			v.Field("bill", func(context.Context) error {
				if bill.IsNegative() {
					return validation.Fail(msgs.billNegative)
				}
				return nil
			})
		}
		if err := v.Validate(ctx); err != nil {
			return err
		}
		b = backup.New(vmID, size, bill)
		return uow.Backups().Create(ctx, b)
	})
	if err != nil {
		log.Error("CreateBackup failed", "error", err)
		return nil, err
	}
	log.Info("CreateBackup successful", "backupID", b.ID)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*backup.Backup, error) {
	return s.uow.Backups().Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*backup.Backup, error) {
	return s.uow.Backups().List(ctx)
}

// SnapshotInput describes a new snapshot.
type SnapshotInput struct {
	VMID uuid.UUID
	Name string
	Size float64
}

// CreateSnapshot stores a snapshot of an existing machine.
func (s *Service) CreateSnapshot(ctx context.Context, in SnapshotInput) (*backup.Snapshot, error) {
	err := validation.New().
		Field("vm", vmExists(s.uow, in.VMID, billedMessages.vmMissing)).
		Field("name", validation.Required(in.Name)).
		Field("name", validation.MaxLength(in.Name, 100)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}
	snap := backup.NewSnapshot(in.VMID, in.Name, in.Size)
	if err := s.uow.Snapshots().Create(ctx, snap); err != nil {
		s.logger.Error("CreateSnapshot failed", "vmID", in.VMID, "error", err)
		return nil, err
	}
	return snap, nil
}

func (s *Service) ListSnapshots(ctx context.Context, vmID uuid.UUID) ([]*backup.Snapshot, error) {
	return s.uow.Snapshots().ListByVM(ctx, vmID)
}
