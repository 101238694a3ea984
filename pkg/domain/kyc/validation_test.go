package kyc_test

import (
	"testing"

	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/stretchr/testify/assert"
)

func TestIsValidPAN(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input string
		want  bool
	}{
		{"ABCDE1234F", true},
		{"abcde1234f", false}, // case-sensitive, callers uppercase first
		{"ABCDE12345", false},
		{"ABCD1234FF", false},
		{"ABCDE1234F1", false},
		{"", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, kyc.IsValidPAN(tc.input), "pan %q", tc.input)
	}
}

func TestIsValidAadhaar(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input string
		want  bool
	}{
		{"234567890123", true},
		{"123456789012", false}, // cannot start with 0 or 1
		{"23456789012", false},
		{"2345678901234", false},
		{"23456789012a", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, kyc.IsValidAadhaar(tc.input), "aadhaar %q", tc.input)
	}
}

func TestIsValidGST(t *testing.T) {
	t.Parallel()
	assert.True(t, kyc.IsValidGST("29ABCDE1234F1Z5"))
	assert.False(t, kyc.IsValidGST("29ABCDE1234F1X5")) // 14th char must be Z
	assert.False(t, kyc.IsValidGST("29abcde1234f1z5"))
	assert.False(t, kyc.IsValidGST("29ABCDE1234F1Z"))
}

func TestIsValidPassport(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input string
		want  bool
	}{
		{"A1234567", true},
		{"W9876543", true},
		{"Q1234567", false}, // Q never issued
		{"A0234567", false}, // first digit non-zero
		{"A123456", false},
		{"a1234567", false},
		{"AB123456", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, kyc.IsValidPassport(tc.input), "passport %q", tc.input)
	}
}

func TestIsValidPhone(t *testing.T) {
	t.Parallel()
	assert.True(t, kyc.IsValidPhone("9876543210"))
	assert.True(t, kyc.IsValidPhone("6000000000"))
	assert.False(t, kyc.IsValidPhone("5876543210"))
	assert.False(t, kyc.IsValidPhone("98765432100"))
	assert.False(t, kyc.IsValidPhone("98765-4321"))
}

func TestIsValidBankFields(t *testing.T) {
	t.Parallel()
	assert.True(t, kyc.IsValidAccountNumber("123456789"))
	assert.True(t, kyc.IsValidAccountNumber("123456789012345678"))
	assert.False(t, kyc.IsValidAccountNumber("12345678"))
	assert.False(t, kyc.IsValidAccountNumber("1234567890123456789"))

	assert.True(t, kyc.IsValidIFSC("HDFC0001234"))
	assert.False(t, kyc.IsValidIFSC("HDFC1001234")) // fifth char is always 0
	assert.False(t, kyc.IsValidIFSC("HDF00012345"))
}

func TestFieldError(t *testing.T) {
	t.Parallel()
	assert.Empty(t, kyc.FieldError("pan", "ABCDE1234F"))
	assert.NotEmpty(t, kyc.FieldError("pan", "nope"))
	assert.NotEmpty(t, kyc.FieldError("aadhar", "12"))
	assert.Empty(t, kyc.FieldError("aadhaar", "234567890123"))
	assert.NotEmpty(t, kyc.FieldError("ifsc_code", "bad"))
	// unknown fields are free-form
	assert.Empty(t, kyc.FieldError("occupation", "anything"))
}
