package portfolio

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/propvest/propvest/pkg/config"
	"github.com/propvest/propvest/pkg/middleware"
	authsvc "github.com/propvest/propvest/pkg/service/auth"
	portfoliosvc "github.com/propvest/propvest/pkg/service/portfolio"
	"github.com/propvest/propvest/webapi/common"
)

// Routes registers the portfolio endpoints.
//
// Routes:
//   - GET /portfolio                          : The investor's purchased units.
//   - GET /portfolio/units/:unitId/payments   : Payment history and SIP
//     progress of one unit.
func Routes(
	app *fiber.App,
	portfolioSvc *portfoliosvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Get("/portfolio",
		middleware.JwtProtected(cfg.Auth.Jwt), Items(portfolioSvc, authSvc))
	app.Get("/portfolio/units/:unitId/payments",
		middleware.JwtProtected(cfg.Auth.Jwt), UnitPayments(portfolioSvc))
}

// Items returns a Fiber handler listing the investor's purchased units.
func Items(
	portfolioSvc *portfoliosvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		items, err := portfolioSvc.Items(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to load portfolio for %s: %v", userID, err)
			return common.ProblemDetailsJSON(c, "Failed to load portfolio", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolio", items)
	}
}

// UnitPayments returns a Fiber handler with one unit's payment history and
// SIP progress summary.
func UnitPayments(portfolioSvc *portfoliosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := uuid.Parse(c.Params("unitId"))
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid unit id", err, fiber.StatusBadRequest)
		}
		payments, err := portfolioSvc.UnitPayments(c.Context(), unitID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load payments", err)
		}
		summary, err := portfolioSvc.Summary(c.Context(), unitID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to summarize payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Unit payments",
			fiber.Map{"payments": payments, "summary": summary})
	}
}
