package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm backed user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := mapUserToModel(u)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Omit("Role").Create(&m).Error
	})
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Joins("Role").First(&m, `"users"."id" = ?`, id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDomain(&m), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Joins("Role").
		Where(`"users"."username" = ?`, username).
		First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Joins("Role").
		Where(`"users"."email" = ?`, email).
		Order(`"users"."created_at"`).
		First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDomain(&m), nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var ms []User
	if err := r.db.WithContext(ctx).Joins("Role").
		Order(`"users"."created_at"`).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*user.User, 0, len(ms))
	for i := range ms {
		out = append(out, mapUserToDomain(&ms[i]))
	}
	return out, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func mapUserToModel(u *user.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func mapUserToDomain(m *User) *user.User {
	u := &user.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		RoleID:    m.RoleID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Role != nil && m.Role.ID != uuid.Nil {
		u.Role = mapRoleToDomain(m.Role)
	}
	return u
}
