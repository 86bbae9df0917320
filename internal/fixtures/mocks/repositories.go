package mocks

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func track(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct{ mock.Mock }

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockRoleRepository mocks repository.RoleRepository.
type MockRoleRepository struct{ mock.Mock }

var _ repository.RoleRepository = (*MockRoleRepository)(nil)

func NewMockRoleRepository(t testingT) *MockRoleRepository {
	m := &MockRoleRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockRoleRepository) Create(ctx context.Context, r *user.Role) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRoleRepository) Get(ctx context.Context, id uuid.UUID) (*user.Role, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*user.Role)
	return r, args.Error(1)
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*user.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*user.Role)
	return r, args.Error(1)
}

func (m *MockRoleRepository) GetDefault(ctx context.Context) (*user.Role, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*user.Role)
	return r, args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*user.Role, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]*user.Role)
	return rs, args.Error(1)
}

// MockVirtualMachineRepository mocks repository.VirtualMachineRepository.
type MockVirtualMachineRepository struct{ mock.Mock }

var _ repository.VirtualMachineRepository = (*MockVirtualMachineRepository)(nil)

func NewMockVirtualMachineRepository(t testingT) *MockVirtualMachineRepository {
	m := &MockVirtualMachineRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockVirtualMachineRepository) Create(ctx context.Context, v *vm.VirtualMachine) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVirtualMachineRepository) Update(ctx context.Context, v *vm.VirtualMachine) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVirtualMachineRepository) Get(ctx context.Context, id uuid.UUID) (*vm.VirtualMachine, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vm.VirtualMachine)
	return v, args.Error(1)
}

func (m *MockVirtualMachineRepository) List(ctx context.Context) ([]*vm.VirtualMachine, error) {
	args := m.Called(ctx)
	vs, _ := args.Get(0).([]*vm.VirtualMachine)
	return vs, args.Error(1)
}

func (m *MockVirtualMachineRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAssignmentRepository mocks repository.AssignmentRepository.
type MockAssignmentRepository struct{ mock.Mock }

var _ repository.AssignmentRepository = (*MockAssignmentRepository)(nil)

func NewMockAssignmentRepository(t testingT) *MockAssignmentRepository {
	m := &MockAssignmentRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockAssignmentRepository) Create(ctx context.Context, a *vm.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// MockBackupRepository mocks repository.BackupRepository.
type MockBackupRepository struct{ mock.Mock }

var _ repository.BackupRepository = (*MockBackupRepository)(nil)

func NewMockBackupRepository(t testingT) *MockBackupRepository {
	m := &MockBackupRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockBackupRepository) Create(ctx context.Context, b *backup.Backup) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBackupRepository) Update(ctx context.Context, b *backup.Backup) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBackupRepository) Get(ctx context.Context, id uuid.UUID) (*backup.Backup, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*backup.Backup)
	return b, args.Error(1)
}

func (m *MockBackupRepository) List(ctx context.Context) ([]*backup.Backup, error) {
	args := m.Called(ctx)
	bs, _ := args.Get(0).([]*backup.Backup)
	return bs, args.Error(1)
}

func (m *MockBackupRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepository mocks repository.PaymentRepository.
type MockPaymentRepository struct{ mock.Mock }

var _ repository.PaymentRepository = (*MockPaymentRepository)(nil)

func NewMockPaymentRepository(t testingT) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *billing.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]*billing.Payment, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*billing.Payment)
	return ps, args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*billing.Payment, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*billing.Payment)
	return ps, args.Error(1)
}

// MockAuditLogRepository mocks repository.AuditLogRepository.
type MockAuditLogRepository struct{ mock.Mock }

var _ repository.AuditLogRepository = (*MockAuditLogRepository)(nil)

func NewMockAuditLogRepository(t testingT) *MockAuditLogRepository {
	m := &MockAuditLogRepository{}
	track(t, &m.Mock)
	return m
}

func (m *MockAuditLogRepository) Create(ctx context.Context, l *audit.Log) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context) ([]*audit.Log, error) {
	args := m.Called(ctx)
	ls, _ := args.Get(0).([]*audit.Log)
	return ls, args.Error(1)
}
