package audit

import (
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/mapper"
	"github.com/amirasaad/vmadmin/pkg/middleware"
	auditsvc "github.com/amirasaad/vmadmin/pkg/service/audit"
	"github.com/amirasaad/vmadmin/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, auditSvc *auditsvc.Service, cfg *config.App) {
	app.Get("/audit-logs", middleware.JwtProtected(cfg.Auth.Jwt), List(auditSvc))
}

// List returns the audit trail, newest first.
func List(auditSvc *auditsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := auditSvc.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list audit logs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Audit logs fetched", mapper.MapSlice(logs, mapper.MapAuditLogToRead))
	}
}
