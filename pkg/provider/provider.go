// Package provider declares the ports to the external collaborators of the
// purchase flow: profile creation, document verification and payment
// confirmation. Implementations live under infra.
package provider

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/domain/kyc"
	"github.com/propvest/propvest/pkg/dto"
)

// ProfileCreator creates one investor profile per KYC-cleared party and
// returns its id. Calls are issued strictly one at a time, primary first,
// so ids attribute unambiguously to the right party and a failure stops the
// sequence deterministically.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, create dto.ProfileCreate) (uuid.UUID, error)
}

// DocumentVerifier checks one identity document against the external
// verification service. A false result with nil error means the service
// answered and rejected the document; the caller surfaces it and lets the
// user retry.
type DocumentVerifier interface {
	VerifyDocument(ctx context.Context, doc kyc.DocumentType, number string) (bool, error)
}

// PaymentConfirmer confirms an external payment reference. Confirmation is
// the gate of the payment -> confirmation transition.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, paymentRef string, amount int64) error
}
