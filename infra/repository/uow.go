package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Outside Do, repositories use the root connection.
type UoW struct {
	db *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction, handing it a UoW bound to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

func (u *UoW) Users() repository.UserRepository { return NewUserRepository(u.db) }

func (u *UoW) Roles() repository.RoleRepository { return NewRoleRepository(u.db) }

func (u *UoW) VirtualMachines() repository.VirtualMachineRepository {
	return NewVirtualMachineRepository(u.db)
}

func (u *UoW) Assignments() repository.AssignmentRepository {
	return NewAssignmentRepository(u.db)
}

func (u *UoW) SubUsers() repository.SubUserRepository { return NewSubUserRepository(u.db) }

func (u *UoW) Backups() repository.BackupRepository { return NewBackupRepository(u.db) }

func (u *UoW) Snapshots() repository.SnapshotRepository { return NewSnapshotRepository(u.db) }

func (u *UoW) Payments() repository.PaymentRepository { return NewPaymentRepository(u.db) }

func (u *UoW) Plans() repository.PlanRepository { return NewPlanRepository(u.db) }

func (u *UoW) Subscriptions() repository.SubscriptionRepository {
	return NewSubscriptionRepository(u.db)
}

func (u *UoW) AuditLogs() repository.AuditLogRepository { return NewAuditLogRepository(u.db) }
