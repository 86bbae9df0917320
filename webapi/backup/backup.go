package backup

import (
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/mapper"
	"github.com/amirasaad/vmadmin/pkg/middleware"
	backupsvc "github.com/amirasaad/vmadmin/pkg/service/backup"
	"github.com/amirasaad/vmadmin/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, backupSvc *backupsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/backups", protected, Create(backupSvc))
	app.Post("/backups/billed", protected, CreateBilled(backupSvc))
	app.Get("/backups", protected, List(backupSvc))
	app.Get("/backups/:id", protected, Get(backupSvc))
	app.Post("/snapshots", protected, CreateSnapshot(backupSvc))
	app.Get("/snapshots", protected, ListSnapshots(backupSvc))
}

// Create stores a pending backup with no bill.
func Create(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		b, err := backupSvc.Create(c.Context(), backupsvc.CreateInput{VMID: input.VM, Size: input.Size})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create backup", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created backup", mapper.MapBackupToRead(b))
	}
}

// CreateBilled stores a pending backup with its bill.
func CreateBilled(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BilledInput](c)
		if input == nil {
			return err
		}
		b, err := backupSvc.CreateBilled(c.Context(), backupsvc.BilledInput{
			VMID: input.VM,
			Size: input.Size,
			Bill: input.Bill,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create backup", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created backup", mapper.MapBackupToRead(b))
	}
}

func List(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backups, err := backupSvc.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list backups", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Backups fetched", mapper.MapSlice(backups, mapper.MapBackupToRead))
	}
}

func Get(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		b, err := backupSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Backup not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Backup found", mapper.MapBackupToRead(b))
	}
}

func CreateSnapshot(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SnapshotInput](c)
		if input == nil {
			return err
		}
		s, err := backupSvc.CreateSnapshot(c.Context(), backupsvc.SnapshotInput{
			VMID: input.VM,
			Name: input.Name,
			Size: input.Size,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create snapshot", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created snapshot", mapper.MapSnapshotToRead(s))
	}
}

// ListSnapshots lists the snapshots of the machine given by the vm query
// parameter.
func ListSnapshots(backupSvc *backupsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vmID, err := uuid.Parse(c.Query("vm"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid ID", nil, "vm must be a valid UUID", fiber.StatusBadRequest)
		}
		snaps, err := backupSvc.ListSnapshots(c.Context(), vmID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list snapshots", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Snapshots fetched", mapper.MapSlice(snaps, mapper.MapSnapshotToRead))
	}
}
