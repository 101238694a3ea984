package verification_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/webapi/testutils"
)

func submitAccounts(t *testing.T, ta *testutils.TestApp, token string) {
	t.Helper()
	account := kyc.Account{
		Role:    kyc.RolePrimary,
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
	}
	body, err := json.Marshal(map[string]any{"accounts": []kyc.Account{account}})
	require.NoError(t, err)
	resp := ta.MakeRequest(t, "PUT", "/purchase/P123/accounts", string(body), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVerifyPAN(t *testing.T) {
	ta := testutils.NewTestApp(t)
	token := ta.Token(t, uuid.New())
	submitAccounts(t, ta, token)

	resp := ta.MakeRequest(t, "POST", "/verify/pan",
		`{"project_id":"P123","account_index":0,"number":"ABCDE1234F"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Accounts []struct {
				Verified struct {
					PAN bool `json:"pan"`
				} `json:"verified"`
			} `json:"accounts"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Accounts, 1)
	assert.True(t, body.Data.Accounts[0].Verified.PAN)
}

func TestVerifyMalformedNumberRejected(t *testing.T) {
	ta := testutils.NewTestApp(t)
	token := ta.Token(t, uuid.New())
	submitAccounts(t, ta, token)

	resp := ta.MakeRequest(t, "POST", "/verify/pan",
		`{"project_id":"P123","account_index":0,"number":"abcde1234f"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestVerifyUnknownDocumentType(t *testing.T) {
	ta := testutils.NewTestApp(t)
	token := ta.Token(t, uuid.New())

	resp := ta.MakeRequest(t, "POST", "/verify/photo",
		`{"project_id":"P123","account_index":0,"number":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
