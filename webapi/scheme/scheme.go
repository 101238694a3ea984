package scheme

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/propvest/propvest/pkg/config"
	"github.com/propvest/propvest/pkg/middleware"
	authsvc "github.com/propvest/propvest/pkg/service/auth"
	schemesvc "github.com/propvest/propvest/pkg/service/scheme"
	"github.com/propvest/propvest/webapi/common"
)

// Routes registers the payment scheme catalogue endpoints.
//
// Routes:
//   - GET /projects/:projectId/schemes      : List the schemes of a project.
//   - GET /schemes/:id/plan                 : Preview the plan a scheme yields
//     for a unit count (?units=N).
func Routes(
	app *fiber.App,
	schemeSvc *schemesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Get("/projects/:projectId/schemes",
		middleware.JwtProtected(cfg.Auth.Jwt), ListByProject(schemeSvc))
	app.Get("/schemes/:id/plan",
		middleware.JwtProtected(cfg.Auth.Jwt), PreviewPlan(schemeSvc))
}

// ListByProject returns a Fiber handler listing the schemes of a project.
func ListByProject(schemeSvc *schemesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID := c.Params("projectId")
		rows, err := schemeSvc.ListByProject(c.Context(), projectID)
		if err != nil {
			log.Errorf("Failed to list schemes for %s: %v", projectID, err)
			return common.ProblemDetailsJSON(c, "Failed to list schemes", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Schemes", mapSchemes(rows))
	}
}

// PreviewPlan returns a Fiber handler deriving a plan for a scheme and unit
// count without touching any purchase flow.
func PreviewPlan(schemeSvc *schemesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		schemeID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid scheme id", err, fiber.StatusBadRequest)
		}
		units := c.QueryInt("units", 1)
		plan, err := schemeSvc.PreviewPlan(c.Context(), schemeID, units)
		if err != nil {
			log.Errorf("Failed to preview plan for scheme %s: %v", schemeID, err)
			return common.ProblemDetailsJSON(c, "Failed to derive plan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Plan", plan)
	}
}
