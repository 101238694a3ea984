package scheme

import "github.com/propvest/propvest/pkg/dto"

// SchemeDTO is the API response representation of one payment scheme.
type SchemeDTO struct {
	ID                 string  `json:"id"`
	ProjectID          string  `json:"project_id"`
	SchemeType         string  `json:"scheme_type"`
	AreaSqft           float64 `json:"area_sqft"`
	BookingAdvance     *int64  `json:"booking_advance,omitempty"`
	TotalInstallments  *int    `json:"total_installments,omitempty"`
	MonthlyInstallment *int64  `json:"monthly_installment,omitempty"`
	RentalStartMonth   *int    `json:"rental_start_month,omitempty"`
	MonthlyRental      *int64  `json:"monthly_rental,omitempty"`
}

func mapSchemes(rows []*dto.SchemeRead) []SchemeDTO {
	out := make([]SchemeDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, SchemeDTO{
			ID:                 row.ID.String(),
			ProjectID:          row.ProjectID,
			SchemeType:         row.SchemeType,
			AreaSqft:           row.AreaSqft,
			BookingAdvance:     row.BookingAdvance,
			TotalInstallments:  row.TotalInstallments,
			MonthlyInstallment: row.MonthlyInstallment,
			RentalStartMonth:   row.RentalStartMonth,
			MonthlyRental:      row.MonthlyRental,
		})
	}
	return out
}
