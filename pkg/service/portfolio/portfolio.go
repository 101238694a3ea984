// Package portfolio assembles the investor's purchased units and their SIP
// progress from persisted rows. Everything here is read-only.
package portfolio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	domain "github.com/propvest/propvest/pkg/domain/portfolio"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/repository"
)

// Service answers portfolio queries for one investor at a time.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New wires a portfolio service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Items lists the investor's purchased units as portfolio items.
func (s *Service) Items(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	rows, err := s.uow.Units().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing units for user %s: %w", userID, err)
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFrom(row))
	}
	return items, nil
}

// UnitPayments returns the payment history of one unit, oldest first as the
// repository orders it.
func (s *Service) UnitPayments(
	ctx context.Context,
	unitID uuid.UUID,
) ([]domain.Payment, error) {
	rows, err := s.uow.Payments().ListByUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("listing payments for unit %s: %w", unitID, err)
	}
	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, domain.Payment{
			ID:                row.ID,
			UnitID:            row.UnitID,
			Amount:            row.Amount,
			Status:            domain.PaymentStatus(row.Status),
			InstallmentNumber: row.InstallmentNumber,
			PenaltyAmount:     row.PenaltyAmount,
			RebateAmount:      row.RebateAmount,
			PaidAt:            row.CreatedAt,
		})
	}
	return payments, nil
}

// Summary aggregates one unit's payment history into its SIP progress.
func (s *Service) Summary(
	ctx context.Context,
	unitID uuid.UUID,
) (*domain.Summary, error) {
	row, err := s.uow.Units().Get(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("loading unit %s: %w", unitID, err)
	}
	if row == nil {
		return nil, ErrUnitNotFound
	}
	payments, err := s.UnitPayments(ctx, unitID)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(itemFrom(row), payments)
	return &summary, nil
}

func itemFrom(row *dto.UnitRead) domain.Item {
	item := domain.Item{
		UnitID:          row.ID,
		ProjectID:       row.ProjectID,
		TotalInvestment: row.TotalInvestment,
		PaymentStatus:   domain.UnitPaymentStatus(row.PaymentStatus),
		UnitStatus:      row.UnitStatus,
	}
	if row.NextInstallmentNo != nil && row.NextInstallmentAt != nil && row.NextInstallmentDue != nil {
		item.NextInstallment = &domain.NextInstallment{
			Number:  *row.NextInstallmentNo,
			Amount:  *row.NextInstallmentDue,
			DueDate: *row.NextInstallmentAt,
		}
	}
	return item
}
