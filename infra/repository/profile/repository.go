package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/dto"
	repo "github.com/propvest/propvest/pkg/repository/profile"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a profile repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements profile.Repository.
func (r *repository) Create(ctx context.Context, create dto.ProfileCreate) error {
	row := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Get implements profile.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.ProfileRead, error) {
	var row Profile
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// ListVerifiedByUser implements profile.Repository. Only verified profiles
// qualify for the existing-profiles fast path.
func (r *repository) ListVerifiedByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.ProfileRead, error) {
	var rows []Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = ?", userID, true).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.ProfileRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapCreateDTOToModel(create dto.ProfileCreate) Profile {
	return Profile{
		ID:             create.ID,
		UserID:         create.UserID,
		ProjectID:      create.ProjectID,
		Role:           create.Role,
		Surname:        create.Surname,
		Name:           create.Name,
		DOB:            create.DOB,
		Email:          create.Email,
		Phone:          create.Phone,
		Street:         create.Street,
		City:           create.City,
		Occupation:     create.Occupation,
		AnnualIncome:   create.AnnualIncome,
		UserType:       create.UserType,
		PANNumber:      create.PANNumber,
		AadhaarNumber:  create.AadhaarNumber,
		GSTNumber:      create.GSTNumber,
		PassportNumber: create.PassportNumber,
		AccountNumber:  create.AccountNumber,
		IFSCCode:       create.IFSCCode,
		Verified:       create.Verified,
	}
}

func mapModelToDTO(row *Profile) *dto.ProfileRead {
	return &dto.ProfileRead{
		ID:        row.ID,
		UserID:    row.UserID,
		Role:      row.Role,
		Surname:   row.Surname,
		Name:      row.Name,
		UserType:  row.UserType,
		Verified:  row.Verified,
		CreatedAt: row.CreatedAt,
	}
}
