package provider

import (
	"context"
	"errors"
	"sync"
)

// ErrPaymentNotConfirmed is returned by the mock confirmer for references
// marked as failing.
var ErrPaymentNotConfirmed = errors.New("payment not confirmed by provider")

// MockPaymentConfirmer simulates the payment gateway's confirmation call for
// tests and local development. Every reference confirms unless marked as
// failing.
//
// NOT for production use. The real gateway confirms asynchronously via
// webhooks; this mock answers inline.
type MockPaymentConfirmer struct {
	mu        sync.Mutex
	failing   map[string]bool
	confirmed map[string]int64
}

// NewMockPaymentConfirmer creates a confirmer that accepts every reference.
func NewMockPaymentConfirmer() *MockPaymentConfirmer {
	return &MockPaymentConfirmer{
		failing:   make(map[string]bool),
		confirmed: make(map[string]int64),
	}
}

// Fail marks a payment reference so its confirmation is refused.
func (m *MockPaymentConfirmer) Fail(paymentRef string) {
	m.mu.Lock()
	m.failing[paymentRef] = true
	m.mu.Unlock()
}

// Confirmed reports whether a reference was confirmed and for what amount.
func (m *MockPaymentConfirmer) Confirmed(paymentRef string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	amount, ok := m.confirmed[paymentRef]
	return amount, ok
}

// ConfirmPayment implements provider.PaymentConfirmer.
func (m *MockPaymentConfirmer) ConfirmPayment(
	ctx context.Context,
	paymentRef string,
	amount int64,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing[paymentRef] {
		return ErrPaymentNotConfirmed
	}
	m.confirmed[paymentRef] = amount
	return nil
}
