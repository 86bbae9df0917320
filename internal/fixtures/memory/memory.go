// Package memory is an in-process UnitOfWork for tests. Do snapshots the
// store and restores it when fn fails, so rollbacks are observable.
// Do calls run one at a time. A write made outside Do while a failing Do
// runs is rolled back with it.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
)

type store struct {
	users         map[uuid.UUID]user.User
	roles         map[uuid.UUID]user.Role
	vms           map[uuid.UUID]vm.VirtualMachine
	assignments   map[uuid.UUID]vm.Assignment
	subUsers      map[uuid.UUID]vm.SubUser
	backups       map[uuid.UUID]backup.Backup
	snapshots     map[uuid.UUID]backup.Snapshot
	payments      map[uuid.UUID]billing.Payment
	plans         map[uuid.UUID]billing.SubscriptionPlan
	subscriptions map[uuid.UUID]billing.UserSubscription
	auditLogs     map[uuid.UUID]audit.Log
}

func newStore() *store {
	return &store{
		users:         map[uuid.UUID]user.User{},
		roles:         map[uuid.UUID]user.Role{},
		vms:           map[uuid.UUID]vm.VirtualMachine{},
		assignments:   map[uuid.UUID]vm.Assignment{},
		subUsers:      map[uuid.UUID]vm.SubUser{},
		backups:       map[uuid.UUID]backup.Backup{},
		snapshots:     map[uuid.UUID]backup.Snapshot{},
		payments:      map[uuid.UUID]billing.Payment{},
		plans:         map[uuid.UUID]billing.SubscriptionPlan{},
		subscriptions: map[uuid.UUID]billing.UserSubscription{},
		auditLogs:     map[uuid.UUID]audit.Log{},
	}
}

func (s *store) clone() *store {
	return &store{
		users:         maps.Clone(s.users),
		roles:         maps.Clone(s.roles),
		vms:           maps.Clone(s.vms),
		assignments:   maps.Clone(s.assignments),
		subUsers:      maps.Clone(s.subUsers),
		backups:       maps.Clone(s.backups),
		snapshots:     maps.Clone(s.snapshots),
		payments:      maps.Clone(s.payments),
		plans:         maps.Clone(s.plans),
		subscriptions: maps.Clone(s.subscriptions),
		auditLogs:     maps.Clone(s.auditLogs),
	}
}

// UoW implements repository.UnitOfWork over maps.
type UoW struct {
	tx       sync.Mutex
	mu       sync.Mutex
	data     *store
	failures map[string]error
	// Now is used to decide whether a subscription is active.
	Now func() time.Time
}

var _ repository.UnitOfWork = (*UoW)(nil)

// New returns an empty UoW.
func New() *UoW {
	return &UoW{data: newStore(), failures: map[string]error{}, Now: time.Now}
}

// FailOn makes the named operation (e.g. "payments.create") return err.
func (u *UoW) FailOn(op string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[op] = err
}

func (u *UoW) fail(op string) error {
	return u.failures[op]
}

// Do runs fn and restores the previous state if fn returns an error.
// fn must not call Do.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.tx.Lock()
	defer u.tx.Unlock()
	u.mu.Lock()
	saved := u.data.clone()
	u.mu.Unlock()
	if err := fn(u); err != nil {
		u.mu.Lock()
		u.data = saved
		u.mu.Unlock()
		return err
	}
	return nil
}

func (u *UoW) Users() repository.UserRepository                     { return users{u} }
func (u *UoW) Roles() repository.RoleRepository                     { return roles{u} }
func (u *UoW) VirtualMachines() repository.VirtualMachineRepository { return machines{u} }
func (u *UoW) Assignments() repository.AssignmentRepository         { return assignments{u} }
func (u *UoW) SubUsers() repository.SubUserRepository               { return subUsers{u} }
func (u *UoW) Backups() repository.BackupRepository                 { return backups{u} }
func (u *UoW) Snapshots() repository.SnapshotRepository             { return snapshots{u} }
func (u *UoW) Payments() repository.PaymentRepository               { return payments{u} }
func (u *UoW) Plans() repository.PlanRepository                     { return plans{u} }
func (u *UoW) Subscriptions() repository.SubscriptionRepository     { return subscriptions{u} }
func (u *UoW) AuditLogs() repository.AuditLogRepository             { return auditLogs{u} }

// Seed helpers write directly to the store.

func (u *UoW) SeedRole(r *user.Role) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.data.roles[r.ID] = *r
}

func (u *UoW) SeedUser(usr *user.User) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.data.users[usr.ID] = *usr
}

func (u *UoW) SeedVM(m *vm.VirtualMachine) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.data.vms[m.ID] = *m
}

func (u *UoW) SeedBackup(b *backup.Backup) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.data.backups[b.ID] = *b
}

func (u *UoW) SeedPlan(p *billing.SubscriptionPlan) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.data.plans[p.ID] = *p
}

func (u *UoW) SeedAssignments(ownerID uuid.UUID, n int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for range n {
		a := vm.NewAssignment(uuid.New(), ownerID)
		u.data.assignments[a.ID] = *a
	}
}

// Counts used by assertions.

func (u *UoW) PaymentCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data.payments)
}

func (u *UoW) AuditCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data.auditLogs)
}

func (u *UoW) AssignmentCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data.assignments)
}

func sortedValues[T any](m map[uuid.UUID]T, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func get[T any](m map[uuid.UUID]T, id uuid.UUID) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}
