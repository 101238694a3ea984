package kyc

import (
	"fmt"
	"regexp"
)

// Format rules for Indian identity and banking fields. These are syntax checks
// only; whether a document actually exists and belongs to the investor is
// decided by the verification provider, not here.
//
// All checks are case-sensitive. Callers are expected to uppercase input
// before validating; "abcde1234f" is not a valid PAN.
var (
	panPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern  = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	gstPattern      = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	passportPattern = regexp.MustCompile(`^[A-PR-WY][1-9][0-9]{6}$`)
	phonePattern    = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	accountPattern  = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscPattern     = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// IsValidPAN reports whether s is a syntactically valid permanent account
// number (five letters, four digits, one letter).
func IsValidPAN(s string) bool {
	return panPattern.MatchString(s)
}

// IsValidAadhaar reports whether s is a syntactically valid Aadhaar number
// (twelve digits, first digit 2-9).
func IsValidAadhaar(s string) bool {
	return aadhaarPattern.MatchString(s)
}

// IsValidGST reports whether s is a syntactically valid GSTIN.
func IsValidGST(s string) bool {
	return gstPattern.MatchString(s)
}

// IsValidPassport reports whether s is a syntactically valid Indian passport
// number: one letter (Q, X and Z are never issued) followed by seven digits,
// the first of which is non-zero.
func IsValidPassport(s string) bool {
	return passportPattern.MatchString(s)
}

// IsValidPhone reports whether s is a ten-digit Indian mobile number.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidAccountNumber reports whether s looks like a bank account number
// (9 to 18 digits).
func IsValidAccountNumber(s string) bool {
	return accountPattern.MatchString(s)
}

// IsValidIFSC reports whether s is a syntactically valid IFSC code.
func IsValidIFSC(s string) bool {
	return ifscPattern.MatchString(s)
}

// FieldError validates value against the named field's format rule and
// returns a human-readable message, or "" when the value is acceptable.
// Unknown field names are treated as free-form and never produce an error.
func FieldError(field, value string) string {
	switch field {
	case "pan":
		if !IsValidPAN(value) {
			return "PAN must be 10 characters: 5 letters, 4 digits, 1 letter (e.g. ABCDE1234F)"
		}
	case "aadhar", "aadhaar":
		if !IsValidAadhaar(value) {
			return "Aadhaar must be a 12 digit number not starting with 0 or 1"
		}
	case "gst":
		if !IsValidGST(value) {
			return "GST number must be a valid 15 character GSTIN"
		}
	case "passport":
		if !IsValidPassport(value) {
			return "Passport number must be 1 letter followed by 7 digits (e.g. A1234567)"
		}
	case "phone":
		if !IsValidPhone(value) {
			return "Phone must be a 10 digit mobile number starting with 6-9"
		}
	case "account_number":
		if !IsValidAccountNumber(value) {
			return "Account number must be 9 to 18 digits"
		}
	case "ifsc_code":
		if !IsValidIFSC(value) {
			return fmt.Sprintf("%q is not a valid IFSC code", value)
		}
	}
	return ""
}
