package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// Debt is one outstanding amount owed to a resolved counterparty.
type Debt struct {
	Counterparty *models.User
	Amount       money.Cents
	Since        time.Time
}

// Debtor is a user who still owes money through personal expenses.
type Debtor struct {
	User  *models.User
	Debts []Debt
}

// GetOutstandingDebts finds every user with unpaid personal debt. It is not
// scoped to a caller and backs the reminder job only.
func (s *Service) GetOutstandingDebts(ctx context.Context) ([]Debtor, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	expenses, settlements, err := s.personalHistory(ctx, "")
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.User, len(users))
	ids := make([]string, len(users))
	for i, u := range users {
		byID[u.ID] = u
		ids[i] = u.ID
	}

	var debtors []Debtor
	for _, ud := range calculator.ExtractOutstanding(ids, expenses, settlements) {
		debtor := Debtor{User: byID[ud.UserID]}
		for _, d := range ud.Debts {
			counterparty, ok := byID[d.CounterpartyID]
			if !ok {
				slog.Warn("Skipping debt to unknown user", "user_id", ud.UserID, "counterparty_id", d.CounterpartyID)
				continue
			}
			debtor.Debts = append(debtor.Debts, Debt{Counterparty: counterparty, Amount: d.Amount, Since: d.Since})
		}
		if len(debtor.Debts) > 0 {
			debtors = append(debtors, debtor)
		}
	}
	return debtors, nil
}
