// Package scheme serves the payment scheme catalogue of a project: the plan
// options the purchase flow's first step chooses from.
package scheme

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	domain "github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/repository"
	"github.com/propvest/propvest/pkg/service/purchase"
)

// Service answers scheme queries and derives indicative plans without
// touching any purchase flow.
type Service struct {
	uow     repository.UnitOfWork
	planCfg domain.PlanConfig
	logger  *slog.Logger
}

// New wires a scheme service.
func New(uow repository.UnitOfWork, planCfg domain.PlanConfig, logger *slog.Logger) *Service {
	return &Service{uow: uow, planCfg: planCfg, logger: logger}
}

// ListByProject returns the schemes offered for a project.
func (s *Service) ListByProject(
	ctx context.Context,
	projectID string,
) ([]*dto.SchemeRead, error) {
	rows, err := s.uow.Schemes().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing schemes for project %s: %w", projectID, err)
	}
	return rows, nil
}

// Get returns one scheme by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.SchemeRead, error) {
	row, err := s.uow.Schemes().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrSchemeNotFound
	}
	return row, nil
}

// PreviewPlan derives the plan a scheme yields for a unit count, so the
// client can show amounts before anything is committed to a flow.
func (s *Service) PreviewPlan(
	ctx context.Context,
	schemeID uuid.UUID,
	units int,
) (*domain.PlanSelection, error) {
	row, err := s.uow.Schemes().Get(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	sch, err := purchase.HydrateScheme(row)
	if err != nil {
		return nil, err
	}
	return domain.BuildPlan(sch, units, s.planCfg)
}

// Seed inserts a scheme. Used by the seeding command, not the public API.
func (s *Service) Seed(ctx context.Context, create dto.SchemeCreate) error {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if err := s.uow.Schemes().Create(ctx, create); err != nil {
		return fmt.Errorf("seeding scheme: %w", err)
	}
	s.logger.Info("scheme seeded",
		"scheme_id", create.ID, "project_id", create.ProjectID, "type", create.SchemeType)
	return nil
}
