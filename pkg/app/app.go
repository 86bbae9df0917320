// Package app wires the services together.
package app

import (
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/amirasaad/vmadmin/pkg/service/audit"
	"github.com/amirasaad/vmadmin/pkg/service/auth"
	"github.com/amirasaad/vmadmin/pkg/service/backup"
	"github.com/amirasaad/vmadmin/pkg/service/billing"
	"github.com/amirasaad/vmadmin/pkg/service/user"
	"github.com/amirasaad/vmadmin/pkg/service/vm"
)

// Deps contains what the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	UserService    *user.Service
	VMService      *vm.Service
	BackupService  *backup.Service
	BillingService *billing.Service
	AuditService   *audit.Service
}

func New(deps *Deps, cfg *config.App) *App {
	a := &App{
		Deps:   deps,
		Config: cfg,
	}
	a.AuthService = auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	a.UserService = user.New(deps.Uow, a.AuthService, deps.Logger)
	a.VMService = vm.New(deps.Uow, deps.Logger)
	a.BackupService = backup.New(deps.Uow, deps.Logger)
	a.BillingService = billing.New(deps.Uow, deps.Logger)
	a.AuditService = audit.New(deps.Uow, deps.Logger)
	return a
}
