package purchase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/webapi/testutils"
)

func seedScheme(t *testing.T, ta *testutils.TestApp) uuid.UUID {
	t.Helper()
	id := uuid.New()
	installments := 60
	monthly := int64(25000)
	require.NoError(t, ta.Uow.Schemes().Create(context.Background(), dto.SchemeCreate{
		ID:                 id,
		ProjectID:          "P123",
		SchemeType:         "installment",
		AreaSqft:           600,
		TotalInstallments:  &installments,
		MonthlyInstallment: &monthly,
	}))
	return id
}

func verifiedAccount(role kyc.Role) kyc.Account {
	return kyc.Account{
		Role:    role,
		Surname: "Sharma",
		Name:    "Priya",
		DOB:     "1988-04-02",
		Email:   "priya@example.com",
		Phone:   "9876543210",
		PresentAddress: kyc.Address{
			Street: "12 MG Road",
			City:   "Pune",
		},
		Occupation:    "engineer",
		AnnualIncome:  "10-25L",
		UserType:      kyc.UserTypeIndividual,
		PANNumber:     "ABCDE1234F",
		AadhaarNumber: "234567890123",
		Bank: kyc.BankDetails{
			AccountNumber: "123456789012",
			IFSCCode:      "HDFC0001234",
		},
		TermsAccepted: true,
		Verified:      kyc.Verification{PAN: true, Aadhaar: true},
	}
}

type stateEnvelope struct {
	Data struct {
		CurrentStep   string `json:"current_step"`
		CustomPayment int64  `json:"custom_payment"`
		SelectedPlan  *struct {
			MinPayment int64 `json:"min_payment"`
			Price      int64 `json:"price"`
		} `json:"selected_plan"`
		UserProfileIDs []string `json:"user_profile_ids"`
	} `json:"data"`
}

func decodeState(t *testing.T, resp *http.Response) stateEnvelope {
	t.Helper()
	var env stateEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestPurchaseFlowEndToEnd(t *testing.T) {
	ta := testutils.NewTestApp(t)
	schemeID := seedScheme(t, ta)
	token := ta.Token(t, uuid.New())

	// fresh flow starts at plan selection
	resp := ta.MakeRequest(t, "GET", "/purchase/P123", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "plan-selection", decodeState(t, resp).Data.CurrentStep)

	// select plan
	resp = ta.MakeRequest(t, "PUT", "/purchase/P123/plan",
		fmt.Sprintf(`{"scheme_id":%q,"units":1}`, schemeID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, resp)
	require.NotNil(t, st.Data.SelectedPlan)
	assert.Equal(t, int64(50_000), st.Data.SelectedPlan.MinPayment)

	// advance to user info
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/next", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-info", decodeState(t, resp).Data.CurrentStep)

	// submit accounts
	accounts, err := json.Marshal(map[string]any{
		"accounts": []kyc.Account{verifiedAccount(kyc.RolePrimary)},
	})
	require.NoError(t, err)
	resp = ta.MakeRequest(t, "PUT", "/purchase/P123/accounts", string(accounts), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// advance to kyc
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/next", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kyc", decodeState(t, resp).Data.CurrentStep)

	// declaration and uploads
	resp = ta.MakeRequest(t, "PUT", "/purchase/P123/kyc", `{
		"kyc_accepted": true,
		"documents": {
			"pan": "s3://docs/pan.pdf",
			"aadhar": "s3://docs/aadhar.pdf",
			"photo": "s3://docs/photo.jpg"
		}
	}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// advance to payment; profile creation runs here
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/next", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st = decodeState(t, resp)
	assert.Equal(t, "payment", st.Data.CurrentStep)
	assert.Len(t, st.Data.UserProfileIDs, 1)
	assert.Len(t, ta.Uow.ProfileRows, 1)

	// confirm
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/confirm-payment",
		`{"payment_ref":"pay_abc123"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmation", decodeState(t, resp).Data.CurrentStep)
	assert.Len(t, ta.Uow.UnitRows, 1)
	assert.Len(t, ta.Uow.PaymentRows, 1)

	// the slot is cleared: mounting again starts fresh
	resp = ta.MakeRequest(t, "GET", "/purchase/P123", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "plan-selection", decodeState(t, resp).Data.CurrentStep)
}

func TestPaymentAmountBelowMinimum(t *testing.T) {
	ta := testutils.NewTestApp(t)
	schemeID := seedScheme(t, ta)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "PUT", "/purchase/P123/plan",
		fmt.Sprintf(`{"scheme_id":%q,"units":1}`, schemeID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.MakeRequest(t, "PUT", "/purchase/P123/payment-amount",
		`{"amount":49999}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ta.MakeRequest(t, "PUT", "/purchase/P123/payment-amount",
		`{"amount":80000}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(80_000), decodeState(t, resp).Data.CustomPayment)
}

func TestNextWithoutPlanRejected(t *testing.T) {
	ta := testutils.NewTestApp(t)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "POST", "/purchase/P123/next", "", token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestResumeWithStepHint(t *testing.T) {
	ta := testutils.NewTestApp(t)
	schemeID := seedScheme(t, ta)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "PUT", "/purchase/P123/plan",
		fmt.Sprintf(`{"scheme_id":%q,"units":1}`, schemeID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the selected plan makes user-info reachable on a fresh mount
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/resume",
		`{"step":"user-info"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-info", decodeState(t, resp).Data.CurrentStep)

	// a premature step falls back to the current one
	resp = ta.MakeRequest(t, "POST", "/purchase/P123/resume",
		`{"step":"payment"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-info", decodeState(t, resp).Data.CurrentStep)
}

func TestAbandonFlow(t *testing.T) {
	ta := testutils.NewTestApp(t)
	schemeID := seedScheme(t, ta)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "PUT", "/purchase/P123/plan",
		fmt.Sprintf(`{"scheme_id":%q,"units":1}`, schemeID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.MakeRequest(t, "DELETE", "/purchase/P123", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.MakeRequest(t, "GET", "/purchase/P123", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "plan-selection", decodeState(t, resp).Data.CurrentStep)
}

func TestPurchaseUnauthorized(t *testing.T) {
	ta := testutils.NewTestApp(t)

	resp := ta.MakeRequest(t, "GET", "/purchase/P123", "", "")
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}
