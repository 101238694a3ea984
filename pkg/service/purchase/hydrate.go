package purchase

import (
	"github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
)

// HydrateScheme rebuilds a domain scheme from its persisted form, re-running
// the builder so stored rows that violate the per-type invariants are
// rejected rather than propagated.
func HydrateScheme(read *dto.SchemeRead) (*scheme.Scheme, error) {
	if read == nil {
		return nil, scheme.ErrSchemeNotFound
	}
	b := scheme.New().
		WithID(read.ID).
		WithProjectID(read.ProjectID).
		WithType(scheme.Type(read.SchemeType)).
		WithAreaSqft(read.AreaSqft)
	if read.BookingAdvance != nil {
		b = b.WithBookingAdvance(*read.BookingAdvance)
	}
	if read.TotalInstallments != nil && read.MonthlyInstallment != nil {
		b = b.WithInstallments(*read.TotalInstallments, *read.MonthlyInstallment)
	}
	if read.RentalStartMonth != nil && read.MonthlyRental != nil {
		b = b.WithRental(*read.RentalStartMonth, *read.MonthlyRental)
	}
	return b.Build()
}
