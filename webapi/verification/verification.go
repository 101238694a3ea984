// Package verification exposes the document verification endpoint of the
// KYC step.
package verification

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/propvest/propvest/pkg/config"
	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/middleware"
	authsvc "github.com/propvest/propvest/pkg/service/auth"
	purchasesvc "github.com/propvest/propvest/pkg/service/purchase"
	"github.com/propvest/propvest/webapi/common"
)

// VerifyRequest names the flow, party and document number to verify.
type VerifyRequest struct {
	ProjectID    string `json:"project_id" validate:"required"`
	AccountIndex int    `json:"account_index" validate:"gte=0"`
	Number       string `json:"number" validate:"required"`
}

// Routes registers the document verification endpoint.
//
// Routes:
//   - POST /verify/:docType : Verify one identity document (pan, aadhar,
//     gst or passport) and set the party's verification flag on success.
func Routes(
	app *fiber.App,
	purchaseSvc *purchasesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Post("/verify/:docType",
		middleware.JwtProtected(cfg.Auth.Jwt), Verify(purchaseSvc))
}

var verifiableDocs = map[string]kyc.DocumentType{
	"pan":      kyc.DocumentPAN,
	"aadhar":   kyc.DocumentAadhaar,
	"gst":      kyc.DocumentGST,
	"passport": kyc.DocumentPassport,
}

// Verify returns a Fiber handler running one document through the external
// verification service.
func Verify(purchaseSvc *purchasesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok := verifiableDocs[c.Params("docType")]
		if !ok {
			return common.ProblemDetailsJSON(
				c, "Unknown document type", nil, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[VerifyRequest](c)
		if input == nil {
			return err
		}
		st, err := purchaseSvc.VerifyDocument(
			c.Context(), input.ProjectID, input.AccountIndex, doc, input.Number)
		if err != nil {
			log.Errorf("Verification of %s failed: %v", doc, err)
			return common.ProblemDetailsJSON(c, "Document verification failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Document verified", st)
	}
}
