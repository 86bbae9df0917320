// Package mocks holds testify mocks of the repository contracts.
package mocks

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork records Do calls and hands itself to fn when Do is
// configured to return nil.
type MockUnitOfWork struct {
	mock.Mock
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)

// NewMockUnitOfWork creates a mock and asserts its expectations on cleanup.
func NewMockUnitOfWork(t testingT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	track(t, &m.Mock)
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockUnitOfWork) Users() repository.UserRepository {
	return m.MethodCalled("Users").Get(0).(repository.UserRepository)
}

func (m *MockUnitOfWork) Roles() repository.RoleRepository {
	return m.MethodCalled("Roles").Get(0).(repository.RoleRepository)
}

func (m *MockUnitOfWork) VirtualMachines() repository.VirtualMachineRepository {
	return m.MethodCalled("VirtualMachines").Get(0).(repository.VirtualMachineRepository)
}

func (m *MockUnitOfWork) Assignments() repository.AssignmentRepository {
	return m.MethodCalled("Assignments").Get(0).(repository.AssignmentRepository)
}

func (m *MockUnitOfWork) SubUsers() repository.SubUserRepository {
	return m.MethodCalled("SubUsers").Get(0).(repository.SubUserRepository)
}

func (m *MockUnitOfWork) Backups() repository.BackupRepository {
	return m.MethodCalled("Backups").Get(0).(repository.BackupRepository)
}

func (m *MockUnitOfWork) Snapshots() repository.SnapshotRepository {
	return m.MethodCalled("Snapshots").Get(0).(repository.SnapshotRepository)
}

func (m *MockUnitOfWork) Payments() repository.PaymentRepository {
	return m.MethodCalled("Payments").Get(0).(repository.PaymentRepository)
}

func (m *MockUnitOfWork) Plans() repository.PlanRepository {
	return m.MethodCalled("Plans").Get(0).(repository.PlanRepository)
}

func (m *MockUnitOfWork) Subscriptions() repository.SubscriptionRepository {
	return m.MethodCalled("Subscriptions").Get(0).(repository.SubscriptionRepository)
}

func (m *MockUnitOfWork) AuditLogs() repository.AuditLogRepository {
	return m.MethodCalled("AuditLogs").Get(0).(repository.AuditLogRepository)
}
