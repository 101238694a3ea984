// Package common holds the response envelope, problem details and request
// binding helpers shared by all API routes.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	domainflow "github.com/propvest/propvest/pkg/domain/flow"
	domainkyc "github.com/propvest/propvest/pkg/domain/kyc"
	domainscheme "github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/service/auth"
	"github.com/propvest/propvest/pkg/service/portfolio"
	"github.com/propvest/propvest/pkg/service/purchase"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. The status is
// derived from the error unless an explicit one is passed.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, status ...int) error {
	code := ErrorToStatusCode(err)
	if len(status) > 0 {
		code = status[0]
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   code,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(code).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domainscheme.ErrSchemeNotFound),
		errors.Is(err, portfolio.ErrUnitNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, auth.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domainflow.ErrPaymentBelowMinimum),
		errors.Is(err, domainflow.ErrNoPlanSelected),
		errors.Is(err, domainflow.ErrKYCNotAccepted),
		errors.Is(err, domainflow.ErrJointKYCNotAccepted),
		errors.Is(err, domainflow.ErrMissingDocument),
		errors.Is(err, domainflow.ErrFastPathUnavailable),
		errors.Is(err, domainflow.ErrTerminalStep),
		errors.Is(err, domainflow.ErrCannotStepBack),
		errors.Is(err, domainkyc.ErrNoPrimaryAccount),
		errors.Is(err, domainkyc.ErrMultiplePrimaryAccounts),
		errors.Is(err, domainkyc.ErrIdentityMismatch),
		errors.Is(err, domainkyc.ErrUnknownUserType),
		errors.Is(err, domainkyc.ErrTermsNotAccepted),
		errors.Is(err, purchase.ErrNotAtPayment),
		errors.Is(err, purchase.ErrDocumentRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domainscheme.ErrInvalidUnits):
		return fiber.StatusBadRequest
	case errors.Is(err, purchase.ErrProfileCreation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure the error response is already written
// and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}
