package ledger

import (
	"context"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/money"
)

// GetMonthlySpend returns the caller's share of cost in each month of year.
func (s *Service) GetMonthlySpend(ctx context.Context, caller string, year int) ([12]calculator.MonthlySpend, error) {
	summary, err := s.spend(ctx, caller, year)
	if err != nil {
		return [12]calculator.MonthlySpend{}, err
	}
	return summary.Months, nil
}

// GetTotalSpend returns the caller's share of cost over year.
func (s *Service) GetTotalSpend(ctx context.Context, caller string, year int) (money.Cents, error) {
	summary, err := s.spend(ctx, caller, year)
	if err != nil {
		return 0, err
	}
	return summary.Total, nil
}

func (s *Service) spend(ctx context.Context, caller string, year int) (calculator.SpendSummary, error) {
	if err := requireCaller(caller); err != nil {
		return calculator.SpendSummary{}, err
	}
	if year < 1 || year > 9999 {
		return calculator.SpendSummary{}, errs.Validation("invalid year %d", year)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	expenses, err := s.store.ListExpensesInRange(ctx, caller, from, from.AddDate(1, 0, 0))
	if err != nil {
		return calculator.SpendSummary{}, err
	}
	return calculator.AggregateSpend(caller, year, s.loc, expenses), nil
}
