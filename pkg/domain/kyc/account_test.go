package kyc_test

import (
	"testing"

	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIndividual(role kyc.Role) kyc.Account {
	return kyc.Account{
		Role:     role,
		Surname:  "Sharma",
		Name:     "Priya",
		DOB:      "1988-04-02",
		Email:    "priya@example.com",
		Phone:    "9876543210",
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

func TestAccountValidate(t *testing.T) {
	t.Parallel()
	acc := validIndividual(kyc.RolePrimary)
	require.NoError(t, acc.Validate())

	t.Run("missing phone fails", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		a.Phone = ""
		assert.Error(t, a.Validate())
	})

	t.Run("terms not accepted fails", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		a.TermsAccepted = false
		assert.ErrorIs(t, a.Validate(), kyc.ErrTermsNotAccepted)
	})

	t.Run("verification flag must match user type", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		// GST verified but PAN not: wrong flag for an individual.
		a.Verified = kyc.Verification{GST: true, Aadhaar: true}
		assert.Error(t, a.Validate())
	})

	t.Run("identity fields inconsistent with user type", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		a.GSTNumber = "29ABCDE1234F1Z5"
		assert.ErrorIs(t, a.Validate(), kyc.ErrIdentityMismatch)
	})

	t.Run("business requires gst", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		a.UserType = kyc.UserTypeBusiness
		a.PANNumber, a.AadhaarNumber = "", ""
		assert.ErrorIs(t, a.Validate(), kyc.ErrIdentityMismatch)

		a.GSTNumber = "29ABCDE1234F1Z5"
		a.Verified = kyc.Verification{GST: true}
		assert.NoError(t, a.Validate())
	})

	t.Run("nri requires passport", func(t *testing.T) {
		a := validIndividual(kyc.RolePrimary)
		a.UserType = kyc.UserTypeNRI
		a.PANNumber, a.AadhaarNumber = "", ""
		a.PassportNumber = "A1234567"
		a.Verified = kyc.Verification{Passport: true}
		assert.NoError(t, a.Validate())
	})
}

func TestRequiredDocuments(t *testing.T) {
	t.Parallel()
	a := validIndividual(kyc.RolePrimary)
	assert.Equal(t,
		[]kyc.DocumentType{kyc.DocumentPAN, kyc.DocumentAadhaar, kyc.DocumentPhoto},
		a.RequiredDocuments())

	a.UserType = kyc.UserTypeBusiness
	assert.Equal(t,
		[]kyc.DocumentType{kyc.DocumentGST, kyc.DocumentPhoto},
		a.RequiredDocuments())

	a.UserType = kyc.UserTypeNRI
	assert.Equal(t,
		[]kyc.DocumentType{kyc.DocumentPassport, kyc.DocumentPhoto},
		a.RequiredDocuments())
}

func TestValidateParties(t *testing.T) {
	t.Parallel()
	primary := validIndividual(kyc.RolePrimary)
	joint := validIndividual(kyc.RoleJoint)

	assert.NoError(t, kyc.ValidateParties([]kyc.Account{primary}))
	assert.NoError(t, kyc.ValidateParties([]kyc.Account{primary, joint, joint}))
	assert.ErrorIs(t,
		kyc.ValidateParties([]kyc.Account{joint}),
		kyc.ErrNoPrimaryAccount)
	assert.ErrorIs(t,
		kyc.ValidateParties([]kyc.Account{primary, primary}),
		kyc.ErrMultiplePrimaryAccounts)
}

func TestPartyAccessors(t *testing.T) {
	t.Parallel()
	primary := validIndividual(kyc.RolePrimary)
	joint := validIndividual(kyc.RoleJoint)
	joint.Name = "Rahul"

	accounts := []kyc.Account{joint, primary}
	got := kyc.Primary(accounts)
	require.NotNil(t, got)
	assert.Equal(t, "Priya", got.Name)
	assert.Len(t, kyc.Joints(accounts), 1)
	assert.Nil(t, kyc.Primary([]kyc.Account{joint}))
}
