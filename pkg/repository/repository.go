package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/google/uuid"
)

// Get methods return domain.ErrNotFound when no row matches.

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	// GetByEmail returns the oldest user with email. Emails are not unique.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RoleRepository defines data access for roles.
type RoleRepository interface {
	Create(ctx context.Context, r *user.Role) error
	Get(ctx context.Context, id uuid.UUID) (*user.Role, error)
	GetByName(ctx context.Context, name string) (*user.Role, error)
	// GetDefault returns the role flagged as default.
	GetDefault(ctx context.Context) (*user.Role, error)
	List(ctx context.Context) ([]*user.Role, error)
}

// VirtualMachineRepository defines data access for virtual machines.
type VirtualMachineRepository interface {
	Create(ctx context.Context, m *vm.VirtualMachine) error
	Update(ctx context.Context, m *vm.VirtualMachine) error
	Get(ctx context.Context, id uuid.UUID) (*vm.VirtualMachine, error)
	List(ctx context.Context) ([]*vm.VirtualMachine, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// AssignmentRepository records VM ownership assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *vm.Assignment) error
	// CountByOwner counts assignment records naming ownerID as new owner.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// SubUserRepository defines data access for sub-users.
type SubUserRepository interface {
	Create(ctx context.Context, s *vm.SubUser) error
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]*vm.SubUser, error)
}

// BackupRepository defines data access for backups.
type BackupRepository interface {
	Create(ctx context.Context, b *backup.Backup) error
	Update(ctx context.Context, b *backup.Backup) error
	Get(ctx context.Context, id uuid.UUID) (*backup.Backup, error)
	List(ctx context.Context) ([]*backup.Backup, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SnapshotRepository defines data access for snapshots.
type SnapshotRepository interface {
	Create(ctx context.Context, s *backup.Snapshot) error
	ListByVM(ctx context.Context, vmID uuid.UUID) ([]*backup.Snapshot, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *billing.Payment) error
	List(ctx context.Context) ([]*billing.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*billing.Payment, error)
}

// PlanRepository defines data access for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, p *billing.SubscriptionPlan) error
	Get(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error)
	List(ctx context.Context) ([]*billing.SubscriptionPlan, error)
}

// SubscriptionRepository defines data access for user subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *billing.UserSubscription) error
	List(ctx context.Context) ([]*billing.UserSubscription, error)
	// GetActiveByUser returns the latest subscription of userID that has
	// not expired at the call time.
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*billing.UserSubscription, error)
}

// AuditLogRepository defines data access for audit records.
type AuditLogRepository interface {
	Create(ctx context.Context, l *audit.Log) error
	List(ctx context.Context) ([]*audit.Log, error)
}
