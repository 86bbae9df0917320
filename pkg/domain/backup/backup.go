// Package backup holds machine backups and snapshots.
package backup

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status tracks whether a backup has been paid for.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Backup is a stored copy of a machine's data with its bill.
type Backup struct {
	ID        uuid.UUID
	VMID      uuid.UUID
	Size      float64
	Bill      decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// New returns a pending backup of vmID.
func New(vmID uuid.UUID, size float64, bill decimal.Decimal) *Backup {
	return &Backup{
		ID:        uuid.New(),
		VMID:      vmID,
		Size:      size,
		Bill:      bill,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkPaid moves the backup to paid. There is no way back.
func (b *Backup) MarkPaid() {
	b.Status = StatusPaid
}

// IsPaid reports whether the backup was paid for.
func (b *Backup) IsPaid() bool {
	return b.Status == StatusPaid
}

// Snapshot is a point-in-time image of a machine.
type Snapshot struct {
	ID        uuid.UUID
	VMID      uuid.UUID
	Name      string
	Size      float64
	CreatedAt time.Time
}

// NewSnapshot returns a snapshot of vmID taken now.
func NewSnapshot(vmID uuid.UUID, name string, size float64) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		VMID:      vmID,
		Name:      name,
		Size:      size,
		CreatedAt: time.Now().UTC(),
	}
}
