package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Role represents a role record in the database.
type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null;size:50"`
	IsDefault bool      `gorm:"not null"`
	CreatedAt time.Time
}

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username  string     `gorm:"uniqueIndex;not null;size:150"`
	Email     string     `gorm:"not null;size:254"`
	Password  string     `gorm:"not null;size:128"`
	FirstName string     `gorm:"size:150"`
	LastName  string     `gorm:"size:150"`
	RoleID    *uuid.UUID `gorm:"type:uuid"`
	Role      *Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VirtualMachine represents a virtual_machines record.
type VirtualMachine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"not null;size:100"`
	CPU          int             `gorm:"column:cpu;not null"`
	RAM          int             `gorm:"column:ram;not null"`
	Cost         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status       string          `gorm:"not null;size:10"`
	OwnerID      *uuid.UUID      `gorm:"type:uuid"`
	UnbackedData float64         `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Assignment represents a vm_assignments record.
type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VMID       uuid.UUID `gorm:"column:vm_id;type:uuid;not null"`
	NewOwnerID uuid.UUID `gorm:"type:uuid;not null"`
	AssignedAt time.Time
}

func (Assignment) TableName() string { return "vm_assignments" }

// SubUser represents a sub_users record.
type SubUser struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParentID      uuid.UUID `gorm:"type:uuid;not null"`
	SubUsername   string    `gorm:"not null;size:150"`
	AssignedModel string    `gorm:"not null;size:100"`
	CreatedAt     time.Time
}

// Backup represents a backups record.
type Backup struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VMID      uuid.UUID       `gorm:"column:vm_id;type:uuid;not null"`
	Size      float64         `gorm:"not null"`
	Bill      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status    string          `gorm:"not null;size:10"`
	CreatedAt time.Time
}

// Snapshot represents a snapshots record.
type Snapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VMID      uuid.UUID `gorm:"column:vm_id;type:uuid;not null"`
	Name      string    `gorm:"not null;size:100"`
	Size      float64   `gorm:"not null"`
	CreatedAt time.Time
}

// Payment represents a payments record.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     *uuid.UUID      `gorm:"type:uuid"`
	CardNumber string          `gorm:"not null;size:16"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time
}

// SubscriptionPlan represents a subscription_plans record.
type SubscriptionPlan struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"uniqueIndex;not null;size:100"`
	MaxVMs     int             `gorm:"column:max_vms;not null"`
	MaxBackups int             `gorm:"not null"`
	Cost       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Duration   int             `gorm:"not null"`
}

// UserSubscription represents a user_subscriptions record.
type UserSubscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	PlanID    uuid.UUID `gorm:"type:uuid;not null"`
	StartedAt time.Time
	ExpiresAt time.Time
}

// AuditLog represents an audit_logs record.
type AuditLog struct {
	ID        uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID                         `gorm:"type:uuid"`
	Action    string                             `gorm:"not null;size:100"`
	Details   datatypes.JSONType[map[string]any] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}
