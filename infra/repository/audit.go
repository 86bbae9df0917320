package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/audit"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a gorm backed audit log repository.
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, l *audit.Log) error {
	details := l.Details
	if details == nil {
		details = map[string]any{}
	}
	row := AuditLog{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   datatypes.NewJSONType(details),
		CreatedAt: l.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// List returns entries newest first.
func (r *auditLogRepository) List(ctx context.Context) ([]*audit.Log, error) {
	var rows []AuditLog
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*audit.Log, 0, len(rows))
	for _, row := range rows {
		out = append(out, &audit.Log{
			ID:        row.ID,
			UserID:    row.UserID,
			Action:    row.Action,
			Details:   row.Details.Data(),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
