package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to fn share fn's transaction.
// Repositories obtained outside Do run without one.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Users() UserRepository
	Roles() RoleRepository
	VirtualMachines() VirtualMachineRepository
	Assignments() AssignmentRepository
	SubUsers() SubUserRepository
	Backups() BackupRepository
	Snapshots() SnapshotRepository
	Payments() PaymentRepository
	Plans() PlanRepository
	Subscriptions() SubscriptionRepository
	AuditLogs() AuditLogRepository
}
