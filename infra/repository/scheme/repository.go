package scheme

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domain "github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
	repo "github.com/propvest/propvest/pkg/repository/scheme"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style scheme repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements scheme.Repository.
func (r *repository) Create(ctx context.Context, create dto.SchemeCreate) error {
	row := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Get implements scheme.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.SchemeRead, error) {
	var row Scheme
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSchemeNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// ListByProject implements scheme.Repository.
func (r *repository) ListByProject(
	ctx context.Context,
	projectID string,
) ([]*dto.SchemeRead, error) {
	var rows []Scheme
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.SchemeRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapCreateDTOToModel(create dto.SchemeCreate) Scheme {
	return Scheme{
		ID:                 create.ID,
		ProjectID:          create.ProjectID,
		SchemeType:         create.SchemeType,
		AreaSqft:           create.AreaSqft,
		BookingAdvance:     create.BookingAdvance,
		TotalInstallments:  create.TotalInstallments,
		MonthlyInstallment: create.MonthlyInstallment,
		RentalStartMonth:   create.RentalStartMonth,
		MonthlyRental:      create.MonthlyRental,
	}
}

func mapModelToDTO(row *Scheme) *dto.SchemeRead {
	return &dto.SchemeRead{
		ID:                 row.ID,
		ProjectID:          row.ProjectID,
		SchemeType:         row.SchemeType,
		AreaSqft:           row.AreaSqft,
		BookingAdvance:     row.BookingAdvance,
		TotalInstallments:  row.TotalInstallments,
		MonthlyInstallment: row.MonthlyInstallment,
		RentalStartMonth:   row.RentalStartMonth,
		MonthlyRental:      row.MonthlyRental,
	}
}
