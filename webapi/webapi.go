// Package webapi provides the HTTP surface of the investment API. It is
// organized into sub-packages per domain:
// - scheme: payment scheme catalogue endpoints
// - purchase: purchase flow endpoints
// - portfolio: purchased units and SIP progress endpoints
// - verification: document verification endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/propvest/propvest/pkg/app"
	"github.com/propvest/propvest/webapi/common"
	portfolioweb "github.com/propvest/propvest/webapi/portfolio"
	purchaseweb "github.com/propvest/propvest/webapi/purchase"
	schemeweb "github.com/propvest/propvest/webapi/scheme"
	verificationweb "github.com/propvest/propvest/webapi/verification"
)

// SetupApp initializes Fiber with custom configuration and registers all
// routes.
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed by client IP. Uses X-Forwarded-For when behind a
	// proxy, falling back to X-Real-IP, then the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Propvest API is running! 🚀")
		},
	)

	schemeweb.Routes(fiberApp, app.SchemeService, app.AuthService, app.Config)
	purchaseweb.Routes(fiberApp, app.PurchaseService, app.AuthService, app.Config)
	verificationweb.Routes(fiberApp, app.PurchaseService, app.AuthService, app.Config)
	portfolioweb.Routes(fiberApp, app.PortfolioService, app.AuthService, app.Config)
	return fiberApp
}
