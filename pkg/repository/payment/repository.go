// Package payment defines the persistence contract for unit payments.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
)

// Repository is the persistence port for payments against purchased units.
type Repository interface {
	Create(ctx context.Context, create dto.PaymentCreate) error
	ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*dto.PaymentRead, error)
}
