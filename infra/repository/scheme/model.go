package scheme

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scheme represents a payment scheme record in the database. Columns that
// only apply to one scheme type are nullable.
type Scheme struct {
	gorm.Model
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	ProjectID          string    `gorm:"type:varchar(64);index;not null"`
	SchemeType         string    `gorm:"type:varchar(32);not null"`
	AreaSqft           float64
	BookingAdvance     *int64
	TotalInstallments  *int
	MonthlyInstallment *int64
	RentalStartMonth   *int
	MonthlyRental      *int64
}

// TableName specifies the table name for the Scheme model.
func (Scheme) TableName() string {
	return "schemes"
}
