package purchase

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/propvest/propvest/pkg/config"
	"github.com/propvest/propvest/pkg/middleware"
	authsvc "github.com/propvest/propvest/pkg/service/auth"
	purchasesvc "github.com/propvest/propvest/pkg/service/purchase"
	"github.com/propvest/propvest/webapi/common"
)

// Routes registers the purchase flow endpoints. Every route is scoped to one
// project's flow and protected by authentication.
//
// Routes:
//   - POST   /purchase/:projectId/resume          : Restore or start the flow, optionally at a step.
//   - GET    /purchase/:projectId                 : Current flow state.
//   - PUT    /purchase/:projectId/plan            : Select scheme and units.
//   - PUT    /purchase/:projectId/payment-amount  : Set the custom payment amount.
//   - PUT    /purchase/:projectId/accounts        : Replace the purchase's parties.
//   - PUT    /purchase/:projectId/kyc             : KYC acceptance flags and document uploads.
//   - GET    /purchase/:projectId/profiles        : Existing verified profiles (fast-path check).
//   - POST   /purchase/:projectId/next            : Advance one step.
//   - POST   /purchase/:projectId/back            : Step back.
//   - POST   /purchase/:projectId/confirm-payment : Confirm payment and finalize the purchase.
//   - DELETE /purchase/:projectId                 : Abandon the in-progress flow.
func Routes(
	app *fiber.App,
	purchaseSvc *purchasesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwtGuard := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/purchase/:projectId/resume", jwtGuard, Resume(purchaseSvc))
	app.Get("/purchase/:projectId", jwtGuard, Get(purchaseSvc))
	app.Put("/purchase/:projectId/plan", jwtGuard, SelectPlan(purchaseSvc))
	app.Put("/purchase/:projectId/payment-amount", jwtGuard, SetPaymentAmount(purchaseSvc))
	app.Put("/purchase/:projectId/accounts", jwtGuard, SetAccounts(purchaseSvc))
	app.Put("/purchase/:projectId/kyc", jwtGuard, UpdateKYC(purchaseSvc))
	app.Get("/purchase/:projectId/profiles", jwtGuard, ExistingProfiles(purchaseSvc, authSvc))
	app.Post("/purchase/:projectId/next", jwtGuard, Next(purchaseSvc, authSvc))
	app.Post("/purchase/:projectId/back", jwtGuard, Back(purchaseSvc))
	app.Post("/purchase/:projectId/confirm-payment", jwtGuard, ConfirmPayment(purchaseSvc, authSvc))
	app.Delete("/purchase/:projectId", jwtGuard, Abandon(purchaseSvc))
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, authsvc.ErrUnauthorized
	}
	return authSvc.GetCurrentUserID(token)
}

// Resume returns a Fiber handler restoring the project's flow, optionally
// placing it at the step the client's URL pointed at.
func Resume(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID := c.Params("projectId")
		var stepHint string
		if len(c.Body()) > 0 {
			input, err := common.BindAndValidate[ResumeRequest](c)
			if input == nil {
				return err
			}
			stepHint = input.Step
		}
		st, err := purchaseSvc.Resume(c.Context(), projectID, stepHint)
		if err != nil {
			log.Errorf("Failed to resume flow for %s: %v", projectID, err)
			return common.ProblemDetailsJSON(c, "Failed to resume purchase flow", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase flow resumed", st)
	}
}

// Get returns a Fiber handler reading the current flow state.
func Get(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := purchaseSvc.Get(c.Context(), c.Params("projectId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load purchase flow", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase flow", st)
	}
}

// SelectPlan returns a Fiber handler selecting a scheme and unit count.
func SelectPlan(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SelectPlanRequest](c)
		if input == nil {
			return err
		}
		schemeID, err := uuid.Parse(input.SchemeID)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid scheme id", err, fiber.StatusBadRequest)
		}
		st, err := purchaseSvc.SelectPlan(
			c.Context(), c.Params("projectId"), schemeID, input.Units)
		if err != nil {
			log.Errorf("Failed to select plan: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to select plan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Plan selected", st)
	}
}

// SetPaymentAmount returns a Fiber handler setting the custom payment amount.
func SetPaymentAmount(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PaymentAmountRequest](c)
		if input == nil {
			return err
		}
		st, err := purchaseSvc.SetPaymentAmount(
			c.Context(), c.Params("projectId"), input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set payment amount", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment amount set", st)
	}
}

// SetAccounts returns a Fiber handler replacing the purchase's parties.
func SetAccounts(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AccountsRequest](c)
		if input == nil {
			return err
		}
		st, err := purchaseSvc.SetAccounts(
			c.Context(), c.Params("projectId"), input.Accounts)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts updated", st)
	}
}

// UpdateKYC returns a Fiber handler applying declaration flags and document
// uploads.
func UpdateKYC(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[KYCRequest](c)
		if input == nil {
			return err
		}
		st, err := purchaseSvc.UpdateKYC(c.Context(), c.Params("projectId"),
			purchasesvc.KYCUpdate{
				KYCAccepted:      input.KYCAccepted,
				JointKYCAccepted: input.JointKYCAccepted,
				Documents:        input.Documents,
			})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update KYC", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "KYC updated", st)
	}
}

// ExistingProfiles returns a Fiber handler checking for previously verified
// profiles of the investor and arming the fast path when any exist.
func ExistingProfiles(
	purchaseSvc *purchasesvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		st, profiles, err := purchaseSvc.CheckExistingProfiles(
			c.Context(), c.Params("projectId"), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to check profiles", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Existing profiles",
			fiber.Map{"state": st, "profiles": profiles})
	}
}

// Next returns a Fiber handler advancing the flow one step.
func Next(
	purchaseSvc *purchasesvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		st, err := purchaseSvc.Next(c.Context(), c.Params("projectId"), userID)
		if err != nil {
			log.Errorf("Failed to advance flow for %s: %v", c.Params("projectId"), err)
			return common.ProblemDetailsJSON(c, "Failed to advance purchase flow", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase flow advanced", st)
	}
}

// Back returns a Fiber handler stepping the flow back.
func Back(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := purchaseSvc.Back(c.Context(), c.Params("projectId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to step back", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase flow stepped back", st)
	}
}

// ConfirmPayment returns a Fiber handler confirming the payment and
// finalizing the purchase.
func ConfirmPayment(
	purchaseSvc *purchasesvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[ConfirmPaymentRequest](c)
		if input == nil {
			return err
		}
		st, err := purchaseSvc.ConfirmPayment(
			c.Context(), c.Params("projectId"), userID, input.PaymentRef)
		if err != nil {
			log.Errorf("Failed to confirm payment for %s: %v", c.Params("projectId"), err)
			return common.ProblemDetailsJSON(c, "Failed to confirm payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase confirmed", st)
	}
}

// Abandon returns a Fiber handler clearing the in-progress flow.
func Abandon(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := purchaseSvc.Abandon(c.Context(), c.Params("projectId")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to abandon purchase flow", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Purchase flow abandoned", nil)
	}
}
