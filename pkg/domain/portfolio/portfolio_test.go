package portfolio_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/domain/portfolio"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()
	item := portfolio.Item{
		UnitID:          uuid.New(),
		TotalInvestment: 1000000,
		PaymentStatus:   portfolio.UnitPaymentOngoing,
	}
	payments := []portfolio.Payment{
		{Amount: 300000, Status: portfolio.PaymentCompleted, InstallmentNumber: 1},
		{Amount: 200000, Status: portfolio.PaymentFailed, InstallmentNumber: 2},
	}

	s := portfolio.Summarize(item, payments)
	assert.Equal(t, int64(300000), s.TotalPaid)
	assert.Equal(t, int64(700000), s.Balance)
	assert.InDelta(t, 30.0, s.ProgressPercent, 1e-9)
}

func TestSummarizeRebatesAndPenalties(t *testing.T) {
	t.Parallel()
	item := portfolio.Item{TotalInvestment: 500000}
	payments := []portfolio.Payment{
		{Amount: 100000, Status: portfolio.PaymentCompleted, RebateAmount: 2000},
		{Amount: 100000, Status: portfolio.PaymentFailed, PenaltyAmount: 1500},
		{Amount: 100000, Status: portfolio.PaymentPending, RebateAmount: 500, PenaltyAmount: 250},
	}

	s := portfolio.Summarize(item, payments)
	// rebates and penalties count across all payments regardless of status
	assert.Equal(t, int64(2500), s.TotalRebates)
	assert.Equal(t, int64(1750), s.TotalPenalties)
	assert.Equal(t, int64(100000), s.TotalPaid)
}

func TestSummarizeZeroInvestment(t *testing.T) {
	t.Parallel()
	s := portfolio.Summarize(portfolio.Item{}, nil)
	assert.Zero(t, s.ProgressPercent)
	assert.Zero(t, s.Balance)
}

func TestSummarizeNextInstallment(t *testing.T) {
	t.Parallel()
	due := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	next := &portfolio.NextInstallment{Number: 13, Amount: 25000, DueDate: due}

	ongoing := portfolio.Item{
		TotalInvestment: 1500000,
		PaymentStatus:   portfolio.UnitPaymentOngoing,
		NextInstallment: next,
	}
	s := portfolio.Summarize(ongoing, nil)
	// taken verbatim from the backend, never computed here
	assert.Equal(t, next, s.NextInstallment)

	paid := ongoing
	paid.PaymentStatus = portfolio.UnitPaymentFullyPaid
	s = portfolio.Summarize(paid, nil)
	assert.Nil(t, s.NextInstallment)
}
