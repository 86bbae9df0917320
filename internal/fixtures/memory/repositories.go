package memory

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/google/uuid"
)

type users struct{ u *UoW }

func (r users) Create(_ context.Context, usr *user.User) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("users.create"); err != nil {
		return err
	}
	for _, existing := range r.u.data.users {
		if existing.Username == usr.Username {
			return domain.ErrAlreadyExists
		}
	}
	r.u.data.users[usr.ID] = *usr
	return nil
}

func (r users) withRole(usr *user.User) *user.User {
	if usr.RoleID != nil {
		if role, ok := r.u.data.roles[*usr.RoleID]; ok {
			usr.Role = &role
		}
	}
	return usr
}

func (r users) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	usr, err := get(r.u.data.users, id)
	if err != nil {
		return nil, err
	}
	return r.withRole(usr), nil
}

func (r users) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, usr := range r.u.data.users {
		if usr.Username == username {
			return r.withRole(&usr), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r users) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	all, _ := r.List(ctx)
	var found *user.User
	for _, usr := range all {
		if usr.Email == email && (found == nil || usr.CreatedAt.Before(found.CreatedAt)) {
			found = usr
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r users) List(context.Context) ([]*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	out := sortedValues(r.u.data.users, func(a, b *user.User) bool { return a.Username < b.Username })
	for _, usr := range out {
		r.withRole(usr)
	}
	return out, nil
}

func (r users) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	_, ok := r.u.data.users[id]
	return ok, r.u.fail("users.exists")
}

func (r users) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, usr := range r.u.data.users {
		if usr.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type roles struct{ u *UoW }

func (r roles) Create(_ context.Context, role *user.Role) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, existing := range r.u.data.roles {
		if existing.Name == role.Name {
			return domain.ErrAlreadyExists
		}
	}
	r.u.data.roles[role.ID] = *role
	return nil
}

func (r roles) Get(_ context.Context, id uuid.UUID) (*user.Role, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return get(r.u.data.roles, id)
}

func (r roles) find(match func(user.Role) bool) (*user.Role, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, role := range r.u.data.roles {
		if match(role) {
			return &role, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r roles) GetByName(_ context.Context, name string) (*user.Role, error) {
	return r.find(func(role user.Role) bool { return role.Name == name })
}

func (r roles) GetDefault(context.Context) (*user.Role, error) {
	return r.find(func(role user.Role) bool { return role.IsDefault })
}

func (r roles) List(context.Context) ([]*user.Role, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.roles, func(a, b *user.Role) bool { return a.Name < b.Name }), nil
}

type machines struct{ u *UoW }

func (r machines) Create(_ context.Context, m *vm.VirtualMachine) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.data.vms[m.ID] = *m
	return nil
}

func (r machines) Update(_ context.Context, m *vm.VirtualMachine) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("vms.update"); err != nil {
		return err
	}
	if _, ok := r.u.data.vms[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.data.vms[m.ID] = *m
	return nil
}

func (r machines) Get(_ context.Context, id uuid.UUID) (*vm.VirtualMachine, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return get(r.u.data.vms, id)
}

func (r machines) List(context.Context) ([]*vm.VirtualMachine, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.vms, func(a, b *vm.VirtualMachine) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r machines) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	_, ok := r.u.data.vms[id]
	return ok, nil
}

type assignments struct{ u *UoW }

func (r assignments) Create(_ context.Context, a *vm.Assignment) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("assignments.create"); err != nil {
		return err
	}
	r.u.data.assignments[a.ID] = *a
	return nil
}

func (r assignments) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var n int64
	for _, a := range r.u.data.assignments {
		if a.NewOwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type subUsers struct{ u *UoW }

func (r subUsers) Create(_ context.Context, s *vm.SubUser) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.data.subUsers[s.ID] = *s
	return nil
}

func (r subUsers) ListByParent(_ context.Context, parentID uuid.UUID) ([]*vm.SubUser, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	all := sortedValues(r.u.data.subUsers, func(a, b *vm.SubUser) bool { return a.CreatedAt.Before(b.CreatedAt) })
	out := make([]*vm.SubUser, 0, len(all))
	for _, s := range all {
		if s.ParentID == parentID {
			out = append(out, s)
		}
	}
	return out, nil
}

type backups struct{ u *UoW }

func (r backups) Create(_ context.Context, b *backup.Backup) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.data.backups[b.ID] = *b
	return nil
}

func (r backups) Update(_ context.Context, b *backup.Backup) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("backups.update"); err != nil {
		return err
	}
	if _, ok := r.u.data.backups[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.data.backups[b.ID] = *b
	return nil
}

func (r backups) Get(_ context.Context, id uuid.UUID) (*backup.Backup, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return get(r.u.data.backups, id)
}

func (r backups) List(context.Context) ([]*backup.Backup, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.backups, func(a, b *backup.Backup) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r backups) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	_, ok := r.u.data.backups[id]
	return ok, r.u.fail("backups.exists")
}

type snapshots struct{ u *UoW }

func (r snapshots) Create(_ context.Context, s *backup.Snapshot) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.data.snapshots[s.ID] = *s
	return nil
}

func (r snapshots) ListByVM(_ context.Context, vmID uuid.UUID) ([]*backup.Snapshot, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	all := sortedValues(r.u.data.snapshots, func(a, b *backup.Snapshot) bool { return a.CreatedAt.Before(b.CreatedAt) })
	out := make([]*backup.Snapshot, 0, len(all))
	for _, s := range all {
		if s.VMID == vmID {
			out = append(out, s)
		}
	}
	return out, nil
}

type payments struct{ u *UoW }

func (r payments) Create(_ context.Context, p *billing.Payment) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("payments.create"); err != nil {
		return err
	}
	r.u.data.payments[p.ID] = *p
	return nil
}

func (r payments) List(context.Context) ([]*billing.Payment, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.payments, func(a, b *billing.Payment) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r payments) ListByUser(ctx context.Context, userID uuid.UUID) ([]*billing.Payment, error) {
	all, _ := r.List(ctx)
	out := make([]*billing.Payment, 0, len(all))
	for _, p := range all {
		if p.UserID != nil && *p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type plans struct{ u *UoW }

func (r plans) Create(_ context.Context, p *billing.SubscriptionPlan) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, existing := range r.u.data.plans {
		if existing.Name == p.Name {
			return domain.ErrAlreadyExists
		}
	}
	r.u.data.plans[p.ID] = *p
	return nil
}

func (r plans) Get(_ context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return get(r.u.data.plans, id)
}

func (r plans) List(context.Context) ([]*billing.SubscriptionPlan, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.plans, func(a, b *billing.SubscriptionPlan) bool { return a.Name < b.Name }), nil
}

type subscriptions struct{ u *UoW }

func (r subscriptions) Create(_ context.Context, s *billing.UserSubscription) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.data.subscriptions[s.ID] = *s
	return nil
}

func (r subscriptions) List(context.Context) ([]*billing.UserSubscription, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.subscriptions, func(a, b *billing.UserSubscription) bool {
		return a.StartedAt.Before(b.StartedAt)
	}), nil
}

func (r subscriptions) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*billing.UserSubscription, error) {
	all, _ := r.List(ctx)
	now := r.u.Now()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID == userID && all[i].ExpiresAt.After(now) {
			return all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type auditLogs struct{ u *UoW }

func (r auditLogs) Create(_ context.Context, l *audit.Log) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if err := r.u.fail("audit.create"); err != nil {
		return err
	}
	r.u.data.auditLogs[l.ID] = *l
	return nil
}

func (r auditLogs) List(context.Context) ([]*audit.Log, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return sortedValues(r.u.data.auditLogs, func(a, b *audit.Log) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}
