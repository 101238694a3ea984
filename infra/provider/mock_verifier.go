package provider

import (
	"context"
	"sync"

	"github.com/propvest/propvest/pkg/domain/kyc"
)

// MockDocumentVerifier simulates the external document verification service
// for tests and local development. By default every well-formed number
// passes; specific numbers can be marked as rejected.
//
// NOT for production use; the real verifier is a remote KYC API.
type MockDocumentVerifier struct {
	mu       sync.Mutex
	rejected map[string]bool
}

// NewMockDocumentVerifier creates a verifier that accepts every document
// whose number passes the format check for its type.
func NewMockDocumentVerifier() *MockDocumentVerifier {
	return &MockDocumentVerifier{rejected: make(map[string]bool)}
}

// Reject marks a document number so subsequent verifications refuse it.
func (m *MockDocumentVerifier) Reject(number string) {
	m.mu.Lock()
	m.rejected[number] = true
	m.mu.Unlock()
}

// VerifyDocument implements provider.DocumentVerifier.
func (m *MockDocumentVerifier) VerifyDocument(
	ctx context.Context,
	doc kyc.DocumentType,
	number string,
) (bool, error) {
	m.mu.Lock()
	rejected := m.rejected[number]
	m.mu.Unlock()
	if rejected {
		return false, nil
	}
	switch doc {
	case kyc.DocumentPAN:
		return kyc.IsValidPAN(number), nil
	case kyc.DocumentAadhaar:
		return kyc.IsValidAadhaar(number), nil
	case kyc.DocumentGST:
		return kyc.IsValidGST(number), nil
	case kyc.DocumentPassport:
		return kyc.IsValidPassport(number), nil
	default:
		return false, nil
	}
}
