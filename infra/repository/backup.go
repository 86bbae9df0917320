package repository

import (
	"context"

	"github.com/amirasaad/vmadmin/pkg/domain/backup"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a gorm backed backup repository.
func NewBackupRepository(db *gorm.DB) repository.BackupRepository {
	return &backupRepository{db: db}
}

func (r *backupRepository) Create(ctx context.Context, b *backup.Backup) error {
	row := mapBackupToModel(b)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *backupRepository) Update(ctx context.Context, b *backup.Backup) error {
	row := mapBackupToModel(b)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Save(&row).Error
	})
}

func (r *backupRepository) Get(ctx context.Context, id uuid.UUID) (*backup.Backup, error) {
	var row Backup
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapBackupToDomain(&row), nil
}

func (r *backupRepository) List(ctx context.Context) ([]*backup.Backup, error) {
	var rows []Backup
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*backup.Backup, 0, len(rows))
	for i := range rows {
		out = append(out, mapBackupToDomain(&rows[i]))
	}
	return out, nil
}

func (r *backupRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Backup{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func mapBackupToModel(b *backup.Backup) Backup {
	return Backup{
		ID:        b.ID,
		VMID:      b.VMID,
		Size:      b.Size,
		Bill:      b.Bill,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func mapBackupToDomain(row *Backup) *backup.Backup {
	return &backup.Backup{
		ID:        row.ID,
		VMID:      row.VMID,
		Size:      row.Size,
		Bill:      row.Bill,
		Status:    backup.Status(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a gorm backed snapshot repository.
func NewSnapshotRepository(db *gorm.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, s *backup.Snapshot) error {
	row := Snapshot{ID: s.ID, VMID: s.VMID, Name: s.Name, Size: s.Size, CreatedAt: s.CreatedAt}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *snapshotRepository) ListByVM(ctx context.Context, vmID uuid.UUID) ([]*backup.Snapshot, error) {
	var rows []Snapshot
	if err := r.db.WithContext(ctx).Where("vm_id = ?", vmID).
		Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*backup.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, &backup.Snapshot{
			ID:        row.ID,
			VMID:      row.VMID,
			Name:      row.Name,
			Size:      row.Size,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
