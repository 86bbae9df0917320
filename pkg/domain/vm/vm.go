// Package vm holds virtual machine records, their assignment to users and
// the sub-users that operate them.
package vm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the power state of a virtual machine.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// MaxAssignedVMs caps how many assignments a single user may hold.
const MaxAssignedVMs = 20

// ParseStatus accepts only "running" and "stopped".
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusRunning, StatusStopped:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid vm status %q", s)
	}
}

// VirtualMachine is a provisioned machine owned by a user.
type VirtualMachine struct {
	ID           uuid.UUID
	Name         string
	CPU          int
	RAM          int
	Cost         decimal.Decimal
	Status       Status
	OwnerID      *uuid.UUID
	UnbackedData float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New returns a machine with fresh id and timestamps.
func New(name string, status Status, cpu, ram int, cost decimal.Decimal, owner *uuid.UUID) *VirtualMachine {
	now := time.Now().UTC()
	return &VirtualMachine{
		ID:        uuid.New(),
		Name:      name,
		CPU:       cpu,
		RAM:       ram,
		Cost:      cost,
		Status:    status,
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Changes is a partial update. Nil fields keep their current value.
type Changes struct {
	Name   *string
	CPU    *int
	RAM    *int
	Cost   *decimal.Decimal
	Status *Status
}

// Apply copies the set fields of c onto v and bumps UpdatedAt.
func (v *VirtualMachine) Apply(c Changes) {
	if c.Name != nil {
		v.Name = *c.Name
	}
	if c.CPU != nil {
		v.CPU = *c.CPU
	}
	if c.RAM != nil {
		v.RAM = *c.RAM
	}
	if c.Cost != nil {
		v.Cost = *c.Cost
	}
	if c.Status != nil {
		v.Status = *c.Status
	}
	v.UpdatedAt = time.Now().UTC()
}

// Assignment links a machine to the user it was handed to.
type Assignment struct {
	ID         uuid.UUID
	VMID       uuid.UUID
	NewOwnerID uuid.UUID
	AssignedAt time.Time
}

// NewAssignment records vmID as assigned to ownerID now.
func NewAssignment(vmID, ownerID uuid.UUID) *Assignment {
	return &Assignment{
		ID:         uuid.New(),
		VMID:       vmID,
		NewOwnerID: ownerID,
		AssignedAt: time.Now().UTC(),
	}
}

// SubUser is a secondary login created under a parent account.
type SubUser struct {
	ID            uuid.UUID
	ParentID      uuid.UUID
	SubUsername   string
	AssignedModel string
	CreatedAt     time.Time
}

// NewSubUser returns a sub-user of parentID.
func NewSubUser(parentID uuid.UUID, username, model string) *SubUser {
	return &SubUser{
		ID:            uuid.New(),
		ParentID:      parentID,
		SubUsername:   username,
		AssignedModel: model,
		CreatedAt:     time.Now().UTC(),
	}
}
