// Package scheme models the investment plan templates a project offers and
// derives concrete plan selections from them.
package scheme

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrMissingInstallmentTerms is returned when an installment scheme lacks
	// a positive installment count or monthly amount.
	ErrMissingInstallmentTerms = errors.New(
		"installment scheme requires positive total installments and monthly amount")

	// ErrMissingBookingAdvance is returned when a single-payment scheme has no
	// booking advance.
	ErrMissingBookingAdvance = errors.New("single payment scheme requires a booking advance")

	// ErrUnknownSchemeType is returned for a scheme type outside the supported set.
	ErrUnknownSchemeType = errors.New("unknown scheme type")

	// ErrInvalidUnits is returned when a plan is requested for a non-positive
	// unit count.
	ErrInvalidUnits = errors.New("unit count must be positive")

	// ErrSchemeNotFound is returned when a scheme cannot be found.
	ErrSchemeNotFound = errors.New("scheme not found")
)

// Type distinguishes how a scheme is paid for.
type Type string

const (
	TypeSinglePayment Type = "single_payment"
	TypeInstallment   Type = "installment"
)

// Scheme is an investment plan template owned by a project. Schemes are
// created and destroyed entirely on the backend and are immutable once built.
//
// Invariants:
//   - An installment scheme always carries positive TotalInstallments and
//     MonthlyInstallment.
//   - A single-payment scheme always carries a positive BookingAdvance.
//
// Nil pointer fields mean "not offered" (e.g. no rental income).
// All amounts are whole currency units.
type Scheme struct {
	ID                 uuid.UUID
	ProjectID          string
	Type               Type
	AreaSqft           float64
	BookingAdvance     *int64
	TotalInstallments  *int
	MonthlyInstallment *int64
	RentalStartMonth   *int
	MonthlyRental      *int64
}

// Builder constructs Scheme values, rejecting any combination that violates
// the per-type invariants.
type Builder struct {
	s Scheme
}

// New returns a Builder with a fresh id.
func New() *Builder {
	return &Builder{s: Scheme{ID: uuid.New()}}
}

// WithID sets the scheme id, for hydrating an existing scheme from storage.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.s.ID = id
	return b
}

// WithProjectID sets the owning project.
func (b *Builder) WithProjectID(projectID string) *Builder {
	b.s.ProjectID = projectID
	return b
}

// WithType sets the scheme type. Mandatory.
func (b *Builder) WithType(t Type) *Builder {
	b.s.Type = t
	return b
}

// WithAreaSqft sets the unit area.
func (b *Builder) WithAreaSqft(area float64) *Builder {
	b.s.AreaSqft = area
	return b
}

// WithBookingAdvance sets the one-time booking advance per unit.
func (b *Builder) WithBookingAdvance(amount int64) *Builder {
	b.s.BookingAdvance = &amount
	return b
}

// WithInstallments sets the installment terms: total count and monthly amount
// per unit.
func (b *Builder) WithInstallments(total int, monthly int64) *Builder {
	b.s.TotalInstallments = &total
	b.s.MonthlyInstallment = &monthly
	return b
}

// WithRental sets the rental offer: the month rental income starts and the
// monthly amount per unit.
func (b *Builder) WithRental(startMonth int, monthly int64) *Builder {
	b.s.RentalStartMonth = &startMonth
	b.s.MonthlyRental = &monthly
	return b
}

// Build validates the per-type invariants and returns the scheme.
func (b *Builder) Build() (*Scheme, error) {
	s := b.s
	switch s.Type {
	case TypeInstallment:
		if s.TotalInstallments == nil || *s.TotalInstallments <= 0 ||
			s.MonthlyInstallment == nil || *s.MonthlyInstallment <= 0 {
			return nil, ErrMissingInstallmentTerms
		}
	case TypeSinglePayment:
		if s.BookingAdvance == nil || *s.BookingAdvance <= 0 {
			return nil, ErrMissingBookingAdvance
		}
	default:
		return nil, ErrUnknownSchemeType
	}
	return &s, nil
}
