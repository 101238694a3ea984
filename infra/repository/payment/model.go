package payment

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents one installment payment against a purchased unit.
type Payment struct {
	gorm.Model
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	UnitID            uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount            int64
	Status            string `gorm:"type:varchar(16);not null"`
	InstallmentNumber int
	PenaltyAmount     int64
	RebateAmount      int64
	PaymentRef        string `gorm:"type:varchar(64)"`
}

// TableName specifies the table name for the Payment model.
func (Payment) TableName() string {
	return "payments"
}
