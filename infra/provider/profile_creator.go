// Package provider implements the purchase flow's external ports: profile
// creation against our own store, and mock verification and payment
// providers for tests and local development.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/repository"
)

// DBProfileCreator persists investor profiles through the profile
// repository. Each call is one insert; callers sequence the calls.
type DBProfileCreator struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewDBProfileCreator creates a profile creator backed by the service's own
// database.
func NewDBProfileCreator(uow repository.UnitOfWork, logger *slog.Logger) *DBProfileCreator {
	return &DBProfileCreator{uow: uow, logger: logger}
}

// CreateProfile implements provider.ProfileCreator.
func (p *DBProfileCreator) CreateProfile(
	ctx context.Context,
	create dto.ProfileCreate,
) (uuid.UUID, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if err := p.uow.Profiles().Create(ctx, create); err != nil {
		return uuid.Nil, fmt.Errorf("creating %s profile: %w", create.Role, err)
	}
	p.logger.Info("profile created",
		"profile_id", create.ID, "user_id", create.UserID, "role", create.Role)
	return create.ID, nil
}
