package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type vmRepository struct {
	db *gorm.DB
}

// NewVirtualMachineRepository creates a gorm backed machine repository.
func NewVirtualMachineRepository(db *gorm.DB) repository.VirtualMachineRepository {
	return &vmRepository{db: db}
}

func (r *vmRepository) Create(ctx context.Context, m *vm.VirtualMachine) error {
	row := mapVMToModel(m)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Update writes every column of m.
func (r *vmRepository) Update(ctx context.Context, m *vm.VirtualMachine) error {
	row := mapVMToModel(m)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Save(&row).Error
	})
}

func (r *vmRepository) Get(ctx context.Context, id uuid.UUID) (*vm.VirtualMachine, error) {
	var row VirtualMachine
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapVMToDomain(&row), nil
}

func (r *vmRepository) List(ctx context.Context) ([]*vm.VirtualMachine, error) {
	var rows []VirtualMachine
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*vm.VirtualMachine, 0, len(rows))
	for i := range rows {
		out = append(out, mapVMToDomain(&rows[i]))
	}
	return out, nil
}

func (r *vmRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&VirtualMachine{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func mapVMToModel(m *vm.VirtualMachine) VirtualMachine {
	return VirtualMachine{
		ID:           m.ID,
		Name:         m.Name,
		CPU:          m.CPU,
		RAM:          m.RAM,
		Cost:         m.Cost,
		Status:       string(m.Status),
		OwnerID:      m.OwnerID,
		UnbackedData: m.UnbackedData,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func mapVMToDomain(row *VirtualMachine) *vm.VirtualMachine {
	return &vm.VirtualMachine{
		ID:           row.ID,
		Name:         row.Name,
		CPU:          row.CPU,
		RAM:          row.RAM,
		Cost:         row.Cost,
		Status:       vm.Status(row.Status),
		OwnerID:      row.OwnerID,
		UnbackedData: row.UnbackedData,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a gorm backed assignment repository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, a *vm.Assignment) error {
	row := Assignment{
		ID:         a.ID,
		VMID:       a.VMID,
		NewOwnerID: a.NewOwnerID,
		AssignedAt: a.AssignedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *assignmentRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Assignment{}).
		Where("new_owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

type subUserRepository struct {
	db *gorm.DB
}

// NewSubUserRepository creates a gorm backed sub-user repository.
func NewSubUserRepository(db *gorm.DB) repository.SubUserRepository {
	return &subUserRepository{db: db}
}

func (r *subUserRepository) Create(ctx context.Context, s *vm.SubUser) error {
	row := SubUser{
		ID:            s.ID,
		ParentID:      s.ParentID,
		SubUsername:   s.SubUsername,
		AssignedModel: s.AssignedModel,
		CreatedAt:     s.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *subUserRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*vm.SubUser, error) {
	var rows []SubUser
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).
		Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*vm.SubUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, &vm.SubUser{
			ID:            row.ID,
			ParentID:      row.ParentID,
			SubUsername:   row.SubUsername,
			AssignedModel: row.AssignedModel,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}
