package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
	repo "github.com/propvest/propvest/pkg/repository/payment"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a payment repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements payment.Repository.
func (r *repository) Create(ctx context.Context, create dto.PaymentCreate) error {
	row := Payment{
		ID:                create.ID,
		UnitID:            create.UnitID,
		Amount:            create.Amount,
		Status:            create.Status,
		InstallmentNumber: create.InstallmentNumber,
		PenaltyAmount:     create.PenaltyAmount,
		RebateAmount:      create.RebateAmount,
		PaymentRef:        create.PaymentRef,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// ListByUnit implements payment.Repository. History is returned oldest
// first, matching installment order.
func (r *repository) ListByUnit(
	ctx context.Context,
	unitID uuid.UUID,
) ([]*dto.PaymentRead, error) {
	var rows []Payment
	if err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.PaymentRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapModelToDTO(row *Payment) *dto.PaymentRead {
	return &dto.PaymentRead{
		ID:                row.ID,
		UnitID:            row.UnitID,
		Amount:            row.Amount,
		Status:            row.Status,
		InstallmentNumber: row.InstallmentNumber,
		PenaltyAmount:     row.PenaltyAmount,
		RebateAmount:      row.RebateAmount,
		PaymentRef:        row.PaymentRef,
		CreatedAt:         row.CreatedAt,
	}
}
