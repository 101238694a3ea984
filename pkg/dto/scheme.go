package dto

import (
	"github.com/google/uuid"
)

// SchemeRead is a read-optimized DTO for scheme queries and API responses.
// Nullable columns surface as pointers.
type SchemeRead struct {
	ID                 uuid.UUID
	ProjectID          string
	SchemeType         string
	AreaSqft           float64
	BookingAdvance     *int64
	TotalInstallments  *int
	MonthlyInstallment *int64
	RentalStartMonth   *int
	MonthlyRental      *int64
}

// SchemeCreate is a DTO for seeding a new scheme.
type SchemeCreate struct {
	ID                 uuid.UUID
	ProjectID          string
	SchemeType         string
	AreaSqft           float64
	BookingAdvance     *int64
	TotalInstallments  *int
	MonthlyInstallment *int64
	RentalStartMonth   *int
	MonthlyRental      *int64
}
