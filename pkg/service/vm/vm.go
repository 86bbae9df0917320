// Package vm validates and persists virtual machines, their assignment to
// users, ownership moves and sub-users.
package vm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgInvalidStatus = "Status must be either 'running' or 'stopped'."
	msgUserMissing   = "User does not exist."
	msgVMMissing     = "Virtual Machine does not exist."
	msgTooManyVMs    = "This user already has the maximum allowed number of virtual machines assigned."
	msgOwnerMissing  = "The specified user does not exist."
	msgOwnerNotStd   = "The new owner must be a Standard User."
	msgInvalidOwner  = "Invalid pk %q - object does not exist."
	nameMaxLength    = 100
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput holds the fields accepted when creating a machine.
type CreateInput struct {
	Name    string
	Status  string
	CPU     int
	RAM     int
	Cost    decimal.Decimal
	OwnerID *uuid.UUID
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name   *string
	CPU    *int
	RAM    *int
	Cost   *decimal.Decimal
	Status *string
}

func statusRule(status string) validation.Rule {
	return func(context.Context) error {
		if _, err := vm.ParseStatus(status); err != nil {
			return validation.Fail(msgInvalidStatus)
		}
		return nil
	}
}

func ownerRule(uow repository.UnitOfWork, ownerID *uuid.UUID) validation.Rule {
	return func(ctx context.Context) error {
		if ownerID == nil {
			return nil
		}
		ok, err := uow.Users().Exists(ctx, *ownerID)
		if err != nil {
			return err
		}
		if !ok {
			return validation.Failf(msgInvalidOwner, ownerID.String())
		}
		return nil
	}
}

// costRule accepts any cost. Negative costs are allowed on purpose.
func costRule(decimal.Decimal) validation.Rule {
	return func(context.Context) error { return nil }
}

// Create validates in and stores a new machine.
func (s *Service) Create(ctx context.Context, in CreateInput) (*vm.VirtualMachine, error) {
	log := s.logger.With("context", "CreateVM", "name", in.Name)
	log.Debug("CreateVM called")
	err := validation.New().
		Field("name", validation.Required(in.Name)).
		Field("name", validation.MaxLength(in.Name, nameMaxLength)).
		Field("status", statusRule(in.Status)).
		Field("cost", costRule(in.Cost)).
		Field("owner", ownerRule(s.uow, in.OwnerID)).
		Validate(ctx)
	if err != nil {
		log.Error("CreateVM validation failed", "error", err)
		return nil, err
	}
	m := vm.New(in.Name, vm.Status(in.Status), in.CPU, in.RAM, in.Cost, in.OwnerID)
	if err := s.uow.VirtualMachines().Create(ctx, m); err != nil {
		log.Error("CreateVM failed", "error", err)
		return nil, err
	}
	log.Info("CreateVM successful", "vmID", m.ID)
	return m, nil
}

// Update applies the set fields of in to machine id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (m *vm.VirtualMachine, err error) {
	log := s.logger.With("context", "UpdateVM", "vmID", id)
	log.Debug("UpdateVM called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		m, err = uow.VirtualMachines().Get(ctx, id)
		if err != nil {
			return err
		}
		v := validation.New()
		if in.Name != nil {
			v.Field("name", validation.Required(*in.Name)).
				Field("name", validation.MaxLength(*in.Name, nameMaxLength))
		}
		if in.Status != nil {
			v.Field("status", statusRule(*in.Status))
		}
		if in.Cost != nil {
			v.Field("cost", costRule(*in.Cost))
		}
		if err := v.Validate(ctx); err != nil {
			return err
		}
		changes := vm.Changes{Name: in.Name, CPU: in.CPU, RAM: in.RAM, Cost: in.Cost}
		if in.Status != nil {
			st := vm.Status(*in.Status)
			changes.Status = &st
		}
		m.Apply(changes)
		return uow.VirtualMachines().Update(ctx, m)
	})
	if err != nil {
		log.Error("UpdateVM failed", "error", err)
		return nil, err
	}
	log.Info("UpdateVM successful")
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*vm.VirtualMachine, error) {
	return s.uow.VirtualMachines().Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*vm.VirtualMachine, error) {
	return s.uow.VirtualMachines().List(ctx)
}

// ValidateAssignment checks that userID and vmID exist and that the user
// holds fewer than vm.MaxAssignedVMs assignments. It writes nothing.
func ValidateAssignment(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, vmID uuid.UUID,
) error {
	return validation.New().
		Object(func(ctx context.Context) error {
			ok, err := uow.Users().Exists(ctx, userID)
			if err != nil {
				return err
			}
			if !ok {
				return validation.Fail(msgUserMissing)
			}
			return nil
		}).
		Object(func(ctx context.Context) error {
			ok, err := uow.VirtualMachines().Exists(ctx, vmID)
			if err != nil {
				return err
			}
			if !ok {
				return validation.Fail(msgVMMissing)
			}
			return nil
		}).
		Object(func(ctx context.Context) error {
			n, err := uow.Assignments().CountByOwner(ctx, userID)
			if err != nil {
				return err
			}
			if n >= vm.MaxAssignedVMs {
				return validation.Fail(msgTooManyVMs)
			}
			return nil
		}).
		Validate(ctx)
}

// ValidateAssignment runs the assignment checks outside a transaction.
func (s *Service) ValidateAssignment(ctx context.Context, userID, vmID uuid.UUID) error {
	return ValidateAssignment(ctx, s.uow, userID, vmID)
}

// Assign validates and records vmID as assigned to userID. The cap check and
// the insert share a transaction but two concurrent requests can still both
// pass the count.
func (s *Service) Assign(
	ctx context.Context,
	actorID *uuid.UUID,
	userID, vmID uuid.UUID,
) (a *vm.Assignment, err error) {
	log := s.logger.With("context", "AssignVM", "userID", userID, "vmID", vmID)
	log.Debug("AssignVM called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := ValidateAssignment(ctx, uow, userID, vmID); err != nil {
			return err
		}
		a = vm.NewAssignment(vmID, userID)
		if err := uow.Assignments().Create(ctx, a); err != nil {
			return err
		}
		return uow.AuditLogs().Create(ctx, audit.New(actorID, audit.ActionVMAssigned, map[string]any{
			"vm_id":   vmID.String(),
			"user_id": userID.String(),
		}))
	})
	if err != nil {
		log.Error("AssignVM failed", "error", err)
		return nil, err
	}
	log.Info("AssignVM successful", "assignmentID", a.ID)
	return a, nil
}

// ValidateMove resolves newOwner to a user holding the Standard User role.
func ValidateMove(
	ctx context.Context,
	uow repository.UnitOfWork,
	newOwner string,
) (owner *user.User, err error) {
	err = validation.New().
		Field("new_owner", validation.Required(newOwner)).
		Field("new_owner", func(ctx context.Context) error {
			owner, err = uow.Users().GetByUsername(ctx, newOwner)
			if errors.Is(err, domain.ErrNotFound) {
				return validation.Fail(msgOwnerMissing)
			}
			if err != nil {
				return err
			}
			if !owner.Role.IsStandard() {
				return validation.Fail(msgOwnerNotStd)
			}
			return nil
		}).
		Validate(ctx)
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// ValidateMove runs the move checks outside a transaction.
func (s *Service) ValidateMove(ctx context.Context, newOwner string) (*user.User, error) {
	return ValidateMove(ctx, s.uow, newOwner)
}

// Move hands machine id to the user named newOwner.
func (s *Service) Move(
	ctx context.Context,
	actorID *uuid.UUID,
	id uuid.UUID,
	newOwner string,
) (m *vm.VirtualMachine, err error) {
	log := s.logger.With("context", "MoveVM", "vmID", id, "newOwner", newOwner)
	log.Debug("MoveVM called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		m, err = uow.VirtualMachines().Get(ctx, id)
		if err != nil {
			return err
		}
		owner, err := ValidateMove(ctx, uow, newOwner)
		if err != nil {
			return err
		}
		details := map[string]any{"vm_id": id.String(), "new_owner_id": owner.ID.String()}
		if m.OwnerID != nil {
			details["previous_owner_id"] = m.OwnerID.String()
		}
		m.OwnerID = &owner.ID
		m.Apply(vm.Changes{})
		if err := uow.VirtualMachines().Update(ctx, m); err != nil {
			return fmt.Errorf("update owner: %w", err)
		}
		return uow.AuditLogs().Create(ctx, audit.New(actorID, audit.ActionVMMoved, details))
	})
	if err != nil {
		log.Error("MoveVM failed", "error", err)
		return nil, err
	}
	log.Info("MoveVM successful")
	return m, nil
}

// SubUserInput holds a new sub-user.
type SubUserInput struct {
	SubUsername   string
	AssignedModel string
}

// CreateSubUser stores a sub-user under parentID.
func (s *Service) CreateSubUser(ctx context.Context, parentID uuid.UUID, in SubUserInput) (*vm.SubUser, error) {
	err := validation.New().
		Field("sub_username", validation.Required(in.SubUsername)).
		Field("sub_username", validation.MaxLength(in.SubUsername, 150)).
		Field("assigned_model", validation.Required(in.AssignedModel)).
		Field("assigned_model", validation.MaxLength(in.AssignedModel, nameMaxLength)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}
	sub := vm.NewSubUser(parentID, in.SubUsername, in.AssignedModel)
	if err := s.uow.SubUsers().Create(ctx, sub); err != nil {
		s.logger.Error("CreateSubUser failed", "parentID", parentID, "error", err)
		return nil, err
	}
	return sub, nil
}

func (s *Service) ListSubUsers(ctx context.Context, parentID uuid.UUID) ([]*vm.SubUser, error) {
	return s.uow.SubUsers().ListByParent(ctx, parentID)
}
