// Package scheme defines the persistence contract for investment schemes.
package scheme

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
)

// Repository is the CQRS-style persistence port for schemes. Schemes are
// written only by backend seeding; the purchase flow just reads them.
type Repository interface {
	Create(ctx context.Context, create dto.SchemeCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.SchemeRead, error)
	ListByProject(ctx context.Context, projectID string) ([]*dto.SchemeRead, error)
}
