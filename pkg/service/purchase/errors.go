package purchase

import "errors"

var (
	// ErrProfileCreation is returned when creating an investor profile fails
	// mid-sequence. The flow stays on kyc; profiles already created in the
	// same attempt are kept, not rolled back.
	ErrProfileCreation = errors.New("profile creation failed")

	// ErrDocumentRejected is returned when the verification service answers
	// and rejects a document. Retryable by the user.
	ErrDocumentRejected = errors.New("document rejected by verification service")

	// ErrNotAtPayment is returned when payment confirmation is requested
	// while the flow is not on the payment step.
	ErrNotAtPayment = errors.New("flow is not at the payment step")
)
