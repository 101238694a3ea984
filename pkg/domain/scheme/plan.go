package scheme

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// PlanType is the payment shape of a selection, derived from the scheme type.
type PlanType string

const (
	PlanSingle      PlanType = "single"
	PlanInstallment PlanType = "installment"
)

// PlanConfig carries the business constants of plan derivation. The floor and
// the rental fallback factors are commercial policy, not arithmetic, so they
// are injected rather than hard-coded.
type PlanConfig struct {
	// MinPaymentFloor is the smallest first payment accepted regardless of
	// unit count, in whole currency units.
	MinPaymentFloor int64
	// InstallmentRentalFactor estimates monthly rental for installment
	// schemes that state none, as a fraction of the monthly installment.
	InstallmentRentalFactor float64
	// SinglePaymentRentalFactor estimates monthly rental for single-payment
	// schemes that state none, as a fraction of the booking advance.
	SinglePaymentRentalFactor float64
}

// DefaultPlanConfig returns the stock commercial policy.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		MinPaymentFloor:           50000,
		InstallmentRentalFactor:   0.30,
		SinglePaymentRentalFactor: 0.01,
	}
}

// PlanSelection is the investor's concrete choice: a scheme applied to a unit
// count. It is ephemeral and recomputed whenever the scheme or unit count
// changes; only PaymentAmount is user-editable afterwards.
type PlanSelection struct {
	Type          PlanType  `json:"type"`
	PlanID        uuid.UUID `json:"plan_id"`
	Area          float64   `json:"area"`
	Price         int64     `json:"price"`
	MonthlyAmount int64     `json:"monthly_amount,omitempty"`
	Installments  int       `json:"installments,omitempty"`
	RentalStart   string    `json:"rental_start,omitempty"`
	MonthlyRental int64     `json:"monthly_rental"`
	Units         int       `json:"units"`
	MinPayment    int64     `json:"min_payment"`
	PaymentAmount int64     `json:"payment_amount"`
}

// BuildPlan derives a PlanSelection from a scheme and a positive unit count.
//
// Price totals across units: units x booking advance for single payment,
// units x installments x monthly amount otherwise. The minimum payment is the
// larger of the per-unit base scaled by units and the configured floor, and
// PaymentAmount starts there. Monthly rental scales the scheme's stated
// income by units, estimating it from the configured factors when the scheme
// states none.
func BuildPlan(s *Scheme, units int, cfg PlanConfig) (*PlanSelection, error) {
	if s == nil {
		return nil, ErrSchemeNotFound
	}
	if units <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidUnits, units)
	}

	p := &PlanSelection{
		PlanID: s.ID,
		Area:   s.AreaSqft,
		Units:  units,
	}

	var basePerUnit int64
	switch s.Type {
	case TypeSinglePayment:
		p.Type = PlanSingle
		p.Price = int64(units) * *s.BookingAdvance
	case TypeInstallment:
		p.Type = PlanInstallment
		p.MonthlyAmount = *s.MonthlyInstallment
		p.Installments = *s.TotalInstallments
		p.Price = int64(units) * int64(*s.TotalInstallments) * *s.MonthlyInstallment
	default:
		return nil, ErrUnknownSchemeType
	}

	switch {
	case s.BookingAdvance != nil:
		basePerUnit = *s.BookingAdvance
	case s.Type == TypeInstallment:
		basePerUnit = *s.MonthlyInstallment
	}

	p.MinPayment = basePerUnit * int64(units)
	if p.MinPayment < cfg.MinPaymentFloor {
		p.MinPayment = cfg.MinPaymentFloor
	}
	p.PaymentAmount = p.MinPayment

	p.MonthlyRental = int64(units) * rentalPerUnit(s, cfg)
	if s.RentalStartMonth != nil {
		p.RentalStart = fmt.Sprintf("from month %d", *s.RentalStartMonth)
	}
	return p, nil
}

// rentalPerUnit prefers the scheme's stated income and falls back to the
// configured estimate factors.
func rentalPerUnit(s *Scheme, cfg PlanConfig) int64 {
	if s.MonthlyRental != nil {
		return *s.MonthlyRental
	}
	if s.Type == TypeInstallment {
		return int64(math.Round(cfg.InstallmentRentalFactor * float64(*s.MonthlyInstallment)))
	}
	return int64(math.Round(cfg.SinglePaymentRentalFactor * float64(*s.BookingAdvance)))
}
