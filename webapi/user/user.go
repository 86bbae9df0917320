package user

import (
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/mapper"
	"github.com/amirasaad/vmadmin/pkg/middleware"
	authsvc "github.com/amirasaad/vmadmin/pkg/service/auth"
	usersvc "github.com/amirasaad/vmadmin/pkg/service/user"
	vmsvc "github.com/amirasaad/vmadmin/pkg/service/vm"
	"github.com/amirasaad/vmadmin/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	userSvc *usersvc.Service,
	vmSvc *vmsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/users", protected, ListUsers(userSvc))
	app.Get("/users/:id", protected, GetUser(userSvc))
	app.Post("/subusers", protected, CreateSubUser(vmSvc, authSvc))
	app.Get("/subusers", protected, ListSubUsers(vmSvc, authSvc))
}

// ListUsers returns every user.
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.ListUsers(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users fetched", mapper.MapSlice(users, mapper.MapUserToRead))
	}
}

// GetUser returns a single user.
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		u, err := userSvc.GetUser(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", mapper.MapUserToRead(u))
	}
}

// CreateSubUser adds a sub-user under the caller.
func CreateSubUser(vmSvc *vmsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SubUserInput](c)
		if input == nil {
			return err
		}
		parentID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		s, err := vmSvc.CreateSubUser(c.Context(), parentID, vmsvc.SubUserInput{
			SubUsername:   input.SubUsername,
			AssignedModel: input.AssignedModel,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create sub-user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created sub-user", mapper.MapSubUserToRead(s))
	}
}

// ListSubUsers returns the caller's sub-users.
func ListSubUsers(vmSvc *vmsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parentID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		subs, err := vmSvc.ListSubUsers(c.Context(), parentID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list sub-users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sub-users fetched", mapper.MapSlice(subs, mapper.MapSubUserToRead))
	}
}
