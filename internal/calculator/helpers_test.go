package calculator

import (
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

var day0 = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func onDay(n int) time.Time { return day0.AddDate(0, 0, n) }

// equalExpense builds an expense split evenly through CalculateSplit, so the
// tests exercise the same path expense creation does.
func equalExpense(payer, group string, amount money.Cents, date time.Time, participants ...string) *models.Expense {
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p}
	}
	res, err := CalculateSplit(amount, models.SplitEqual, shares, payer)
	if err != nil {
		panic(err)
	}
	return &models.Expense{
		Amount:       amount,
		Date:         date,
		PaidByUserID: payer,
		GroupID:      group,
		SplitType:    models.SplitEqual,
		Splits:       res.Splits,
	}
}

func settle(from, to, group string, amount money.Cents, date time.Time) *models.Settlement {
	return &models.Settlement{
		PaidByUserID:     from,
		ReceivedByUserID: to,
		GroupID:          group,
		Amount:           amount,
		Date:             date,
	}
}
