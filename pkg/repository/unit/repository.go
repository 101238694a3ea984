// Package unit defines the persistence contract for purchased units.
package unit

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
)

// Repository is the persistence port for purchased units.
type Repository interface {
	Create(ctx context.Context, create dto.UnitCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.UnitRead, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.UnitRead, error)
}
