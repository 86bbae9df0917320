package vm

import (
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/mapper"
	"github.com/amirasaad/vmadmin/pkg/middleware"
	authsvc "github.com/amirasaad/vmadmin/pkg/service/auth"
	vmsvc "github.com/amirasaad/vmadmin/pkg/service/vm"
	"github.com/amirasaad/vmadmin/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, vmSvc *vmsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/vms", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", Create(vmSvc, authSvc))
	g.Get("/", List(vmSvc))
	g.Post("/assign", Assign(vmSvc, authSvc))
	g.Get("/:id", Get(vmSvc))
	g.Patch("/:id", Update(vmSvc))
	g.Post("/:id/move", Move(vmSvc, authSvc))
}

// Create provisions a machine record owned by the caller.
func Create(vmSvc *vmsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		ownerID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		m, err := vmSvc.Create(c.Context(), vmsvc.CreateInput{
			Name:    input.Name,
			Status:  input.Status,
			CPU:     input.CPU,
			RAM:     input.RAM,
			Cost:    input.Cost,
			OwnerID: &ownerID,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create virtual machine", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created virtual machine", mapper.MapVMToDetail(m))
	}
}

// List returns every machine.
func List(vmSvc *vmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		machines, err := vmSvc.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list virtual machines", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Virtual machines fetched", mapper.MapSlice(machines, mapper.MapVMToListItem))
	}
}

// Get returns one machine with its owner.
func Get(vmSvc *vmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		m, err := vmSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Virtual machine not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Virtual machine found", mapper.MapVMToDetail(m))
	}
}

// Update applies a partial update.
func Update(vmSvc *vmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateInput](c)
		if input == nil {
			return err
		}
		m, err := vmSvc.Update(c.Context(), id, vmsvc.UpdateInput{
			Name:   input.Name,
			CPU:    input.CPU,
			RAM:    input.RAM,
			Cost:   input.Cost,
			Status: input.Status,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update virtual machine", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Updated virtual machine", mapper.MapVMToDetail(m))
	}
}

// Assign hands a machine to a user, up to the per-user cap.
func Assign(vmSvc *vmsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AssignInput](c)
		if input == nil {
			return err
		}
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		a, err := vmSvc.Assign(c.Context(), &actorID, input.User, input.VM)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't assign virtual machine", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Assigned virtual machine", mapper.MapAssignmentToRead(a))
	}
}

// Move transfers ownership to a Standard User.
func Move(vmSvc *vmsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[MoveInput](c)
		if input == nil {
			return err
		}
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		m, err := vmSvc.Move(c.Context(), &actorID, id, input.NewOwner)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't move virtual machine", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Moved virtual machine", mapper.MapVMToDetail(m))
	}
}
