package billing

import (
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/dto"
	"github.com/amirasaad/vmadmin/pkg/mapper"
	"github.com/amirasaad/vmadmin/pkg/middleware"
	authsvc "github.com/amirasaad/vmadmin/pkg/service/auth"
	billingsvc "github.com/amirasaad/vmadmin/pkg/service/billing"
	"github.com/amirasaad/vmadmin/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, billingSvc *billingsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/payments", protected, CreatePayment(billingSvc, authSvc))
	app.Get("/payments", protected, ListPayments(billingSvc))
	app.Get("/billing", protected, Billing(billingSvc, authSvc))
	app.Post("/plans", protected, CreatePlan(billingSvc))
	app.Get("/plans", protected, ListPlans(billingSvc))
	app.Get("/plans/:id", protected, GetPlan(billingSvc))
	app.Post("/subscriptions", protected, Subscribe(billingSvc, authSvc))
	app.Get("/subscriptions", protected, ListSubscriptions(billingSvc))
}

// CreatePayment pays for a backup and marks it paid.
func CreatePayment(billingSvc *billingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PaymentInput](c)
		if input == nil {
			return err
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		p, err := billingSvc.CreatePayment(c.Context(), &userID, billingsvc.PaymentInput{
			CardNumber: input.CardNumber,
			Amount:     input.Amount,
			BackupID:   input.BackupID,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created payment", mapper.MapPaymentToRead(p))
	}
}

func ListPayments(billingSvc *billingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := billingSvc.ListPayments(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payments fetched", mapper.MapSlice(payments, mapper.MapPaymentToRead))
	}
}

// Billing lists the caller's payments with their current plan.
func Billing(billingSvc *billingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		lines, err := billingSvc.Billing(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load billing", err)
		}
		out := mapper.MapSlice(lines, func(l billingsvc.Line) dto.BillingLine {
			return mapper.MapBillingLine(l.Payment, l.Plan)
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Billing fetched", out)
	}
}

func CreatePlan(billingSvc *billingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PlanInput](c)
		if input == nil {
			return err
		}
		p, err := billingSvc.CreatePlan(c.Context(), billingsvc.PlanInput{
			Name:       input.Name,
			MaxVMs:     input.MaxVMs,
			MaxBackups: input.MaxBackups,
			Cost:       input.Cost,
			Duration:   input.Duration,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create plan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created plan", mapper.MapPlanToRead(p))
	}
}

func ListPlans(billingSvc *billingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plans, err := billingSvc.ListPlans(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list plans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Plans fetched", mapper.MapSlice(plans, mapper.MapPlanToRead))
	}
}

func GetPlan(billingSvc *billingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParamUUID(c, "id")
		if !ok {
			return err
		}
		p, err := billingSvc.GetPlan(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Plan not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Plan found", mapper.MapPlanToRead(p))
	}
}

// Subscribe starts a subscription for the caller.
func Subscribe(billingSvc *billingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SubscribeInput](c)
		if input == nil {
			return err
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		sub, err := billingSvc.Subscribe(c.Context(), userID, input.SubscriptionPlan)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't subscribe", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Subscribed", mapper.MapSubscriptionToRead(sub))
	}
}

func ListSubscriptions(billingSvc *billingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subs, err := billingSvc.ListSubscriptions(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list subscriptions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Subscriptions fetched", mapper.MapSlice(subs, mapper.MapSubscriptionToRead))
	}
}
