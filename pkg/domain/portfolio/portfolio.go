// Package portfolio provides read-only views over backend-confirmed purchase
// state and the SIP progress aggregation computed from them. Nothing here
// mutates; the client of this package only displays.
package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of one installment payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// UnitPaymentStatus is the overall payment state of a purchased unit.
type UnitPaymentStatus string

const (
	UnitPaymentOngoing   UnitPaymentStatus = "ongoing"
	UnitPaymentFullyPaid UnitPaymentStatus = "fully_paid"
	UnitPaymentOverdue   UnitPaymentStatus = "overdue"
)

// Payment is one historical installment payment against a purchased unit.
// Amounts are whole currency units.
type Payment struct {
	ID                uuid.UUID     `json:"id"`
	UnitID            uuid.UUID     `json:"unit_id"`
	Amount            int64         `json:"amount"`
	Status            PaymentStatus `json:"status"`
	InstallmentNumber int           `json:"installment_number"`
	PenaltyAmount     int64         `json:"penalty_amount"`
	RebateAmount      int64         `json:"rebate_amount"`
	PaidAt            time.Time     `json:"paid_at"`
}

// NextInstallment is the backend's statement of the next due installment.
// The client never computes this itself.
type NextInstallment struct {
	Number  int       `json:"number"`
	Amount  int64     `json:"amount"`
	DueDate time.Time `json:"due_date"`
}

// Item is one purchased unit as the portfolio view sees it.
type Item struct {
	UnitID          uuid.UUID         `json:"unit_id"`
	ProjectID       string            `json:"project_id"`
	TotalInvestment int64             `json:"total_investment"`
	PaymentStatus   UnitPaymentStatus `json:"payment_status"`
	UnitStatus      string            `json:"unit_status"`
	NextInstallment *NextInstallment  `json:"next_installment,omitempty"`
}

// Summary is the SIP progress of one unit derived from its payment history.
type Summary struct {
	TotalInvestment int64            `json:"total_investment"`
	TotalPaid       int64            `json:"total_paid"`
	TotalRebates    int64            `json:"total_rebates"`
	TotalPenalties  int64            `json:"total_penalties"`
	Balance         int64            `json:"balance"`
	ProgressPercent float64          `json:"progress_percent"`
	NextInstallment *NextInstallment `json:"next_installment,omitempty"`
}

// Summarize aggregates a unit's payment history into its SIP progress.
// Only completed payments count toward the paid total; rebates and penalties
// sum across all payments regardless of status. Progress is zero for a zero
// investment rather than dividing by it. The next installment is carried
// verbatim from the item when present and the unit is not fully paid.
func Summarize(item Item, payments []Payment) Summary {
	s := Summary{TotalInvestment: item.TotalInvestment}
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			s.TotalPaid += p.Amount
		}
		s.TotalRebates += p.RebateAmount
		s.TotalPenalties += p.PenaltyAmount
	}
	s.Balance = item.TotalInvestment - s.TotalPaid
	if item.TotalInvestment > 0 {
		s.ProgressPercent = 100 * float64(s.TotalPaid) / float64(item.TotalInvestment)
	}
	if item.PaymentStatus != UnitPaymentFullyPaid {
		s.NextInstallment = item.NextInstallment
	}
	return s
}
