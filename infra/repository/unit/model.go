package unit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	paymentmodel "github.com/propvest/propvest/infra/repository/payment"
)

// Unit represents one purchased unit. The next-installment columns are
// written by the backend's billing job; this service only reads them.
type Unit struct {
	gorm.Model
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID             uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectID          string    `gorm:"type:varchar(64);index;not null"`
	SchemeID           uuid.UUID `gorm:"type:uuid;not null"`
	Units              int
	TotalInvestment    int64
	PaymentStatus      string `gorm:"type:varchar(16);not null;default:'ongoing'"`
	UnitStatus         string `gorm:"type:varchar(16);not null;default:'booked'"`
	NextInstallmentNo  *int
	NextInstallmentAt  *time.Time
	NextInstallmentDue *int64
	Payments           []paymentmodel.Payment `gorm:"foreignKey:UnitID"`
}

// TableName specifies the table name for the Unit model.
func (Unit) TableName() string {
	return "units"
}
