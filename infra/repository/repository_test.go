package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	u := user.New("alice", "alice@example.com", "hash", nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(repo.Create(context.Background(), u))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()
	err := repo.Create(context.Background(), u)
	require.ErrorIs(err, domain.ErrAlreadyExists)
	require.NoError(mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoleRepository_GetDefault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE is_default = \$1 (.+) LIMIT \$2`).
		WithArgs(true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_default", "created_at"}).
			AddRow(id, user.StandardRoleName, true, time.Now()))

	role, err := repo.GetDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, role.ID)
	assert.True(t, role.IsStandard())

	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE is_default = \$1 (.+) LIMIT \$2`).
		WithArgs(true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetDefault(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVirtualMachineRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVirtualMachineRepository(db)
	id := uuid.New()
	owner := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "name", "cpu", "ram", "cost", "status", "owner_id", "unbacked_data", "created_at", "updated_at",
	}).AddRow(id, "web-1", 2, 4096, "12.50", "running", owner, 1.5, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "virtual_machines" WHERE id = \$1 (.+) LIMIT \$2`).
		WithArgs(id, 1).WillReturnRows(rows)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "web-1", got.Name)
	assert.Equal(t, vm.StatusRunning, got.Status)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Cost))
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, owner, *got.OwnerID)

	mock.ExpectQuery(`SELECT \* FROM "virtual_machines" WHERE id = \$1 (.+) LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)
	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignmentRepository_CountByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)
	owner := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "vm_assignments" WHERE new_owner_id = \$1`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	n, err := repo.CountByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.EqualValues(t, 20, n)
}

func TestBackupRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBackupRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "backups" WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaymentRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)
	userID := uuid.New()
	p := billing.NewPayment(&userID, "", decimal.NewFromInt(10))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "payments" (.+) VALUES (.+)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), billing.DefaultCardNumber, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoCommitsAndRollsBack(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		return tx.AuditLogs().Create(ctx, audit.New(nil, audit.ActionVMMoved, map[string]any{"vm": "x"}))
	})
	require.NoError(err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "backups" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err = uow.Do(ctx, func(tx repository.UnitOfWork) error {
		if err := tx.Backups().Create(ctx, backup.New(uuid.New(), 1, decimal.Zero)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(err, boom)
	require.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesOutsideTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	assert.NotNil(t, uow.Users())
	assert.NotNil(t, uow.Roles())
	assert.NotNil(t, uow.VirtualMachines())
	assert.NotNil(t, uow.Assignments())
	assert.NotNil(t, uow.SubUsers())
	assert.NotNil(t, uow.Backups())
	assert.NotNil(t, uow.Snapshots())
	assert.NotNil(t, uow.Payments())
	assert.NotNil(t, uow.Plans())
	assert.NotNil(t, uow.Subscriptions())
	assert.NotNil(t, uow.AuditLogs())
}
