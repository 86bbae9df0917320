// Package audit exposes the audit trail written by the other services.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/repository"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns every entry, newest first.
func (s *Service) List(ctx context.Context) ([]*audit.Log, error) {
	logs, err := s.uow.AuditLogs().List(ctx)
	if err != nil {
		s.logger.Error("List audit logs failed", "error", err)
		return nil, err
	}
	return logs, nil
}
