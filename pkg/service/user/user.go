// Package user provides signup, registration and lookup of user accounts.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/amirasaad/vmadmin/pkg/utils"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/google/uuid"
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgInvalidEmail  = "Enter a valid email address."
	nameMaxLength    = 150
)

// TokenIssuer mints an access token for a user.
type TokenIssuer interface {
	GenerateToken(ctx context.Context, u *user.User) (string, error)
}

// Service provides business logic for user accounts.
type Service struct {
	uow    repository.UnitOfWork
	tokens TokenIssuer
	logger *slog.Logger
}

// New creates a new Service. tokens may be nil when Register is unused.
func New(
	uow repository.UnitOfWork,
	tokens TokenIssuer,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, tokens: tokens, logger: logger}
}

// SignupInput is the role-assigning signup payload.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// RegisterInput is the token-issuing registration payload.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Registration is the result of Register.
type Registration struct {
	User  *user.User
	Token string
}

func credentialRules(uow repository.UnitOfWork, username, email, password string) *validation.Validator {
	return validation.New().
		Field("username", validation.Required(username)).
		Field("username", validation.MaxLength(username, nameMaxLength)).
		Field("username", func(ctx context.Context) error {
			taken, err := uow.Users().ExistsByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if taken {
				return validation.Fail(msgUsernameTaken)
			}
			return nil
		}).
		Field("email", validation.Required(email)).
		Field("email", func(context.Context) error {
			if !utils.IsEmail(email) {
				return validation.Fail(msgInvalidEmail)
			}
			return nil
		}).
		Field("password", validation.Required(password))
}

// Signup creates a user holding the current default role. The password is
// hashed before it is stored.
func (s *Service) Signup(ctx context.Context, in SignupInput) (u *user.User, err error) {
	log := s.logger.With("context", "Signup", "username", in.Username)
	log.Debug("Signup called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := credentialRules(uow, in.Username, in.Email, in.Password).Validate(ctx); err != nil {
			return err
		}
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		role, err := uow.Roles().GetDefault(ctx)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Warn("No default role configured, user created without role")
			role = nil
		case err != nil:
			return fmt.Errorf("resolve default role: %w", err)
		}
		u = user.New(in.Username, in.Email, hash, role)
		return uow.Users().Create(ctx, u)
	})
	if err != nil {
		log.Error("Signup failed", "error", err)
		return nil, err
	}
	log.Info("Signup successful", "userID", u.ID, "role", u.RoleName())
	return u, nil
}

// Register creates a user without a role and returns it with a fresh
// access token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (r *Registration, err error) {
	log := s.logger.With("context", "Register", "username", in.Username)
	log.Debug("Register called")
	if s.tokens == nil {
		return nil, errors.New("register: no token issuer configured")
	}
	var u *user.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		v := credentialRules(uow, in.Username, in.Email, in.Password).
			Field("first_name", validation.MaxLength(in.FirstName, nameMaxLength)).
			Field("last_name", validation.MaxLength(in.LastName, nameMaxLength))
		if err := v.Validate(ctx); err != nil {
			return err
		}
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u = user.New(in.Username, in.Email, hash, nil)
		u.FirstName = in.FirstName
		u.LastName = in.LastName
		return uow.Users().Create(ctx, u)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	token, err := s.tokens.GenerateToken(ctx, u)
	if err != nil {
		log.Error("Register token failed", "userID", u.ID, "error", err)
		return nil, err
	}
	log.Info("Register successful", "userID", u.ID)
	return &Registration{User: u, Token: token}, nil
}

// GetUser returns the user with id, role loaded.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	log := s.logger.With("context", "GetUser", "userID", id)
	log.Debug("GetUser called")
	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		log.Error("GetUser failed", "error", err)
		return nil, err
	}
	return u, nil
}

// ListUsers returns every user.
func (s *Service) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.uow.Users().List(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, err
	}
	return users, nil
}

// EnsureDefaultRole creates name as the default role unless a default role
// already exists, in which case that role is returned unchanged.
func (s *Service) EnsureDefaultRole(ctx context.Context, name string) (role *user.Role, created bool, err error) {
	log := s.logger.With("context", "EnsureDefaultRole", "name", name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		role, err = uow.Roles().GetDefault(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := validation.New().Field("name", validation.Required(name)).Validate(ctx); err != nil {
			return err
		}
		if existing, err := uow.Roles().GetByName(ctx, name); err == nil {
			return fmt.Errorf("role %q exists but is not the default: %w", existing.Name, domain.ErrAlreadyExists)
		}
		role = &user.Role{ID: uuid.New(), Name: name, IsDefault: true}
		created = true
		return uow.Roles().Create(ctx, role)
	})
	if err != nil {
		log.Error("EnsureDefaultRole failed", "error", err)
		return nil, false, err
	}
	log.Info("EnsureDefaultRole done", "roleID", role.ID, "created", created)
	return role, created, nil
}
