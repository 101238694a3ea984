package dto

import (
	"time"

	"github.com/google/uuid"
)

// PaymentCreate is a DTO for recording one payment against a purchased unit.
type PaymentCreate struct {
	ID                uuid.UUID
	UnitID            uuid.UUID
	Amount            int64
	Status            string
	InstallmentNumber int
	PenaltyAmount     int64
	RebateAmount      int64
	PaymentRef        string
}

// PaymentRead is a read-optimized DTO for payment history queries.
type PaymentRead struct {
	ID                uuid.UUID
	UnitID            uuid.UUID
	Amount            int64
	Status            string
	InstallmentNumber int
	PenaltyAmount     int64
	RebateAmount      int64
	PaymentRef        string
	CreatedAt         time.Time
}
