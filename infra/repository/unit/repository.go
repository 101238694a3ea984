package unit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
	repo "github.com/propvest/propvest/pkg/repository/unit"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a unit repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements unit.Repository.
func (r *repository) Create(ctx context.Context, create dto.UnitCreate) error {
	row := Unit{
		ID:              create.ID,
		UserID:          create.UserID,
		ProjectID:       create.ProjectID,
		SchemeID:        create.SchemeID,
		Units:           create.Units,
		TotalInvestment: create.TotalInvestment,
		PaymentStatus:   create.PaymentStatus,
		UnitStatus:      create.UnitStatus,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Get implements unit.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UnitRead, error) {
	var row Unit
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// ListByUser implements unit.Repository.
func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.UnitRead, error) {
	var rows []Unit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.UnitRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapModelToDTO(row *Unit) *dto.UnitRead {
	return &dto.UnitRead{
		ID:                 row.ID,
		UserID:             row.UserID,
		ProjectID:          row.ProjectID,
		SchemeID:           row.SchemeID,
		Units:              row.Units,
		TotalInvestment:    row.TotalInvestment,
		PaymentStatus:      row.PaymentStatus,
		UnitStatus:         row.UnitStatus,
		NextInstallmentNo:  row.NextInstallmentNo,
		NextInstallmentAt:  row.NextInstallmentAt,
		NextInstallmentDue: row.NextInstallmentDue,
		CreatedAt:          row.CreatedAt,
	}
}
