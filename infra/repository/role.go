package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a gorm backed role repository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *user.Role) error {
	m := Role{ID: role.ID, Name: role.Name, IsDefault: role.IsDefault}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *roleRepository) Get(ctx context.Context, id uuid.UUID) (*user.Role, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*user.Role, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *roleRepository) GetDefault(ctx context.Context) (*user.Role, error) {
	return r.first(ctx, "is_default = ?", true)
}

func (r *roleRepository) List(ctx context.Context) ([]*user.Role, error) {
	var ms []Role
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*user.Role, 0, len(ms))
	for i := range ms {
		out = append(out, mapRoleToDomain(&ms[i]))
	}
	return out, nil
}

func (r *roleRepository) first(ctx context.Context, query string, arg any) (*user.Role, error) {
	var m Role
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapRoleToDomain(&m), nil
}

func mapRoleToDomain(m *Role) *user.Role {
	return &user.Role{ID: m.ID, Name: m.Name, IsDefault: m.IsDefault}
}
