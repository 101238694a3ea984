// Package profile defines the persistence contract for investor profiles.
package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
)

// Repository is the persistence port for investor profiles created when a
// purchase clears KYC.
type Repository interface {
	Create(ctx context.Context, create dto.ProfileCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.ProfileRead, error)
	ListVerifiedByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ProfileRead, error)
}
