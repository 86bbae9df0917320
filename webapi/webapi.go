// Package webapi builds the HTTP application. Route groups live in
// sub-packages:
//   - auth: signup, registration and login
//   - user: users and sub-users
//   - vm: virtual machines, assignment and ownership transfer
//   - backup: backups and snapshots
//   - billing: payments, plans and subscriptions
//   - audit: audit trail
package webapi

import (
	"errors"

	"github.com/amirasaad/vmadmin/pkg/app"
	auditweb "github.com/amirasaad/vmadmin/webapi/audit"
	authweb "github.com/amirasaad/vmadmin/webapi/auth"
	backupweb "github.com/amirasaad/vmadmin/webapi/backup"
	billingweb "github.com/amirasaad/vmadmin/webapi/billing"
	"github.com/amirasaad/vmadmin/webapi/common"
	userweb "github.com/amirasaad/vmadmin/webapi/user"
	vmweb "github.com/amirasaad/vmadmin/webapi/vm"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp builds the fiber app with middleware and every route group.
func SetupApp(a *app.App) *fiber.App {
	var proxyHeader string
	var trusted []string
	if srv := a.Config.Server; srv != nil {
		proxyHeader, trusted = srv.ProxyHeader, srv.TrustedProxies
	}
	fiberApp := fiber.New(fiber.Config{
		ProxyHeader:             proxyHeader,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trusted,
		EnableIPValidation:      true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:          a.Config.RateLimit.MaxRequests,
		Expiration:   a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("VM Admin API is running")
	})

	authweb.Routes(fiberApp, a.AuthService, a.UserService)
	userweb.Routes(fiberApp, a.UserService, a.VMService, a.AuthService, a.Config)
	vmweb.Routes(fiberApp, a.VMService, a.AuthService, a.Config)
	backupweb.Routes(fiberApp, a.BackupService, a.Config)
	billingweb.Routes(fiberApp, a.BillingService, a.AuthService, a.Config)
	auditweb.Routes(fiberApp, a.AuditService, a.Config)
	return fiberApp
}
