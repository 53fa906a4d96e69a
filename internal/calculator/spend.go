package calculator

import (
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// MonthlySpend is one calendar month's share of cost.
type MonthlySpend struct {
	Month time.Time // first instant of the month
	Total money.Cents
}

// SpendSummary is a user's share of cost over one calendar year.
type SpendSummary struct {
	Year   int
	Total  money.Cents
	Months [12]MonthlySpend
}

// AggregateSpend sums userID's own split share of every expense dated in
// year. Payer or debtor makes no difference: this counts cost, not cash flow.
// All twelve months are present even when empty.
func AggregateSpend(userID string, year int, loc *time.Location, expenses []*models.Expense) SpendSummary {
	if loc == nil {
		loc = time.UTC
	}
	summary := SpendSummary{Year: year}
	for i := range summary.Months {
		summary.Months[i].Month = time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, loc)
	}

	for _, e := range expenses {
		date := e.Date.In(loc)
		if date.Year() != year {
			continue
		}
		s, ok := e.SplitFor(userID)
		if !ok {
			continue
		}
		summary.Total += s.Amount
		summary.Months[date.Month()-1].Total += s.Amount
	}
	return summary
}
