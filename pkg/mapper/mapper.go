// Package mapper turns domain entities into API projections.
package mapper

import (
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/domain/billing"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/dto"
)

// MapSlice applies fn to every element of in.
func MapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func MapUserToRead(u *user.User) dto.UserRead {
	r := dto.UserRead{ID: u.ID, Username: u.Username, Email: u.Email}
	if u.Role != nil {
		name := u.Role.Name
		r.Role = &name
	}
	return r
}

func MapRegistration(u *user.User, token string) dto.Registration {
	return dto.Registration{User: MapUserToRead(u), Token: token}
}

func MapSubUserToRead(s *vm.SubUser) dto.SubUserRead {
	return dto.SubUserRead{
		ID:            s.ID,
		Parent:        s.ParentID,
		SubUsername:   s.SubUsername,
		AssignedModel: s.AssignedModel,
		CreatedAt:     s.CreatedAt,
	}
}

func MapVMToListItem(m *vm.VirtualMachine) dto.VMListItem {
	return dto.VMListItem{
		ID:           m.ID,
		Name:         m.Name,
		CPU:          m.CPU,
		RAM:          m.RAM,
		Cost:         m.Cost,
		Status:       string(m.Status),
		UnbackedData: m.UnbackedData,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func MapVMToDetail(m *vm.VirtualMachine) dto.VMDetail {
	return dto.VMDetail{
		Name:      m.Name,
		CPU:       m.CPU,
		RAM:       m.RAM,
		Cost:      m.Cost,
		Status:    string(m.Status),
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		Owner:     m.OwnerID,
	}
}

func MapAssignmentToRead(a *vm.Assignment) dto.AssignmentRead {
	return dto.AssignmentRead{ID: a.ID, VM: a.VMID, NewOwner: a.NewOwnerID, AssignedAt: a.AssignedAt}
}

func MapBackupToRead(b *backup.Backup) dto.BackupRead {
	return dto.BackupRead{
		ID:        b.ID,
		VM:        b.VMID,
		Size:      b.Size,
		Bill:      b.Bill,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func MapSnapshotToRead(s *backup.Snapshot) dto.SnapshotRead {
	return dto.SnapshotRead{ID: s.ID, VM: s.VMID, Name: s.Name, Size: s.Size, CreatedAt: s.CreatedAt}
}

func MapPaymentToRead(p *billing.Payment) dto.PaymentRead {
	return dto.PaymentRead{
		ID:         p.ID,
		User:       p.UserID,
		CardNumber: p.CardNumber,
		Amount:     p.Amount,
		CreatedAt:  p.CreatedAt,
	}
}

func MapPlanToRead(p *billing.SubscriptionPlan) dto.PlanRead {
	return dto.PlanRead{
		ID:         p.ID,
		Name:       p.Name,
		MaxVMs:     p.MaxVMs,
		MaxBackups: p.MaxBackups,
		Cost:       p.Cost,
		Duration:   p.Duration,
	}
}

// MapPlanToSummary returns nil for a nil plan.
func MapPlanToSummary(p *billing.SubscriptionPlan) *dto.PlanSummary {
	if p == nil {
		return nil
	}
	return &dto.PlanSummary{Name: p.Name, MaxVMs: p.MaxVMs, MaxBackups: p.MaxBackups, Cost: p.Cost}
}

// MapBillingLine projects a payment with the payer's plan, which may be nil.
func MapBillingLine(p *billing.Payment, plan *billing.SubscriptionPlan) dto.BillingLine {
	return dto.BillingLine{
		Amount:           p.Amount,
		CreatedAt:        p.CreatedAt,
		SubscriptionPlan: MapPlanToSummary(plan),
	}
}

func MapSubscriptionToRead(s *billing.UserSubscription) dto.SubscriptionRead {
	return dto.SubscriptionRead{
		User:             s.UserID,
		SubscriptionPlan: s.PlanID,
		StartedAt:        s.StartedAt,
		ExpiresAt:        s.ExpiresAt,
	}
}

func MapAuditLogToRead(l *audit.Log) dto.AuditLogRead {
	return dto.AuditLogRead{
		ID:        l.ID,
		User:      l.UserID,
		Action:    l.Action,
		Details:   l.Details,
		CreatedAt: l.CreatedAt,
	}
}
