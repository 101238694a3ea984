package dto

import (
	"time"

	"github.com/google/uuid"
)

// UnitCreate is a DTO for finalizing a purchase into a purchased unit.
type UnitCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ProjectID       string
	SchemeID        uuid.UUID
	Units           int
	TotalInvestment int64
	PaymentStatus   string
	UnitStatus      string
}

// UnitRead is a read-optimized DTO for portfolio queries.
type UnitRead struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ProjectID         string
	SchemeID          uuid.UUID
	Units             int
	TotalInvestment   int64
	PaymentStatus     string
	UnitStatus        string
	NextInstallmentNo *int
	NextInstallmentAt *time.Time
	NextInstallmentDue *int64
	CreatedAt         time.Time
}
