// Package kyc models the parties to a purchase and the identity checks they
// must clear before a transaction can move past the KYC step.
package kyc

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNoPrimaryAccount is returned when a purchase has no primary party.
	ErrNoPrimaryAccount = errors.New("purchase must have exactly one primary account")

	// ErrMultiplePrimaryAccounts is returned when more than one party claims
	// the primary role.
	ErrMultiplePrimaryAccounts = errors.New("purchase cannot have more than one primary account")

	// ErrIdentityMismatch is returned when the identity documents supplied do
	// not match the declared user type.
	ErrIdentityMismatch = errors.New("identity documents do not match declared user type")

	// ErrUnknownUserType is returned for a user type outside the supported set.
	ErrUnknownUserType = errors.New("unknown user type")

	// ErrTermsNotAccepted is returned when a party has not accepted the terms.
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
)

// Role discriminates the parties of a purchase. Exactly one account carries
// RolePrimary; any number of joint holders may be attached to the same
// purchase.
type Role string

const (
	RolePrimary Role = "primary"
	RoleJoint   Role = "joint"
)

// UserType decides which identity documents a party must provide.
type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeBusiness   UserType = "business"
	UserTypeNRI        UserType = "nri"
)

// DocumentType identifies one verifiable identity document.
type DocumentType string

const (
	DocumentPAN      DocumentType = "pan"
	DocumentAadhaar  DocumentType = "aadhar"
	DocumentGST      DocumentType = "gst"
	DocumentPassport DocumentType = "passport"
	DocumentPhoto    DocumentType = "photo"
)

// Address is a postal address; only Street and City gate step transitions.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// BankDetails holds the settlement account for rental payouts and refunds.
type BankDetails struct {
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

// Verification carries the per-document outcome of the external verification
// calls. A flag is only set after the provider confirmed the document.
type Verification struct {
	PAN      bool `json:"pan"`
	Aadhaar  bool `json:"aadhar"`
	GST      bool `json:"gst"`
	Passport bool `json:"passport"`
}

// Account is one KYC-bearing party in a purchase: the primary investor or a
// joint holder. Both roles share the same identity shape; Role is the
// discriminant.
type Account struct {
	ID             uuid.UUID    `json:"id"`
	Role           Role         `json:"role"`
	Surname        string       `json:"surname"`
	Name           string       `json:"name"`
	DOB            string       `json:"dob"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	PresentAddress Address      `json:"present_address"`
	Occupation     string       `json:"occupation"`
	AnnualIncome   string       `json:"annual_income"`
	UserType       UserType     `json:"user_type"`
	PANNumber      string       `json:"pan_number,omitempty"`
	AadhaarNumber  string       `json:"aadhar_number,omitempty"`
	GSTNumber      string       `json:"gst_number,omitempty"`
	PassportNumber string       `json:"passport_number,omitempty"`
	Bank           BankDetails  `json:"bank"`
	TermsAccepted  bool         `json:"terms_accepted"`
	Verified       Verification `json:"verified"`
}

// RequiredDocuments returns the identity documents a party of this user type
// must upload during KYC, photo included.
func (a *Account) RequiredDocuments() []DocumentType {
	switch a.UserType {
	case UserTypeIndividual:
		return []DocumentType{DocumentPAN, DocumentAadhaar, DocumentPhoto}
	case UserTypeBusiness:
		return []DocumentType{DocumentGST, DocumentPhoto}
	case UserTypeNRI:
		return []DocumentType{DocumentPassport, DocumentPhoto}
	default:
		return nil
	}
}

// IdentityVerified reports whether the verification flags matching the
// declared user type are set. Flags for documents the user type does not
// require are ignored: an individual with only verified.gst set fails.
func (a *Account) IdentityVerified() bool {
	switch a.UserType {
	case UserTypeIndividual:
		return a.Verified.PAN && a.Verified.Aadhaar
	case UserTypeBusiness:
		return a.Verified.GST
	case UserTypeNRI:
		return a.Verified.Passport
	default:
		return false
	}
}

// ValidateIdentity rejects identity fields inconsistent with the declared
// user type, e.g. an individual supplying a GST number instead of PAN.
func (a *Account) ValidateIdentity() error {
	switch a.UserType {
	case UserTypeIndividual:
		if a.PANNumber == "" || a.AadhaarNumber == "" {
			return fmt.Errorf("%w: individual requires PAN and Aadhaar", ErrIdentityMismatch)
		}
		if a.GSTNumber != "" || a.PassportNumber != "" {
			return fmt.Errorf("%w: individual cannot supply GST or passport", ErrIdentityMismatch)
		}
	case UserTypeBusiness:
		if a.GSTNumber == "" {
			return fmt.Errorf("%w: business requires GST number", ErrIdentityMismatch)
		}
		if a.PassportNumber != "" {
			return fmt.Errorf("%w: business cannot supply passport", ErrIdentityMismatch)
		}
	case UserTypeNRI:
		if a.PassportNumber == "" {
			return fmt.Errorf("%w: NRI requires passport number", ErrIdentityMismatch)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUserType, a.UserType)
	}
	return nil
}

// Validate checks the completeness and format rules that gate the
// user-info -> kyc transition for one party. It returns the first violation
// found; nil means the party may proceed.
func (a *Account) Validate() error {
	required := map[string]string{
		"surname":        a.Surname,
		"name":           a.Name,
		"dob":            a.DOB,
		"email":          a.Email,
		"street":         a.PresentAddress.Street,
		"city":           a.PresentAddress.City,
		"occupation":     a.Occupation,
		"annual_income":  a.AnnualIncome,
		"account_number": a.Bank.AccountNumber,
		"ifsc_code":      a.Bank.IFSCCode,
	}
	for _, field := range []string{
		"surname", "name", "dob", "email", "street", "city",
		"occupation", "annual_income", "account_number", "ifsc_code",
	} {
		if required[field] == "" {
			return fmt.Errorf("%s account: missing %s", a.Role, field)
		}
	}
	if !IsValidPhone(a.Phone) {
		return fmt.Errorf("%s account: invalid phone %q", a.Role, a.Phone)
	}
	if msg := FieldError("account_number", a.Bank.AccountNumber); msg != "" {
		return fmt.Errorf("%s account: %s", a.Role, msg)
	}
	if msg := FieldError("ifsc_code", a.Bank.IFSCCode); msg != "" {
		return fmt.Errorf("%s account: %s", a.Role, msg)
	}
	if !a.TermsAccepted {
		return fmt.Errorf("%s account: %w", a.Role, ErrTermsNotAccepted)
	}
	if err := a.ValidateIdentity(); err != nil {
		return fmt.Errorf("%s account: %w", a.Role, err)
	}
	if !a.IdentityVerified() {
		return fmt.Errorf(
			"%s account: identity documents not verified for user type %s",
			a.Role, a.UserType,
		)
	}
	return nil
}

// ValidateParties enforces the one-primary invariant over the full set of
// accounts attached to a purchase.
func ValidateParties(accounts []Account) error {
	primaries := 0
	for i := range accounts {
		if accounts[i].Role == RolePrimary {
			primaries++
		}
	}
	if primaries == 0 {
		return ErrNoPrimaryAccount
	}
	if primaries > 1 {
		return ErrMultiplePrimaryAccounts
	}
	return nil
}

// Primary returns the primary account, or nil when the invariant is broken.
func Primary(accounts []Account) *Account {
	for i := range accounts {
		if accounts[i].Role == RolePrimary {
			return &accounts[i]
		}
	}
	return nil
}

// Joints returns the joint holders in declaration order.
func Joints(accounts []Account) []Account {
	var joints []Account
	for i := range accounts {
		if accounts[i].Role == RoleJoint {
			joints = append(joints, accounts[i])
		}
	}
	return joints
}
