package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DebtReminder asks the mail worker to remind one user about what they still
// owe through personal expenses.
type DebtReminder struct {
	UserID      string         `json:"userId"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Debts       []ReminderDebt `json:"debts"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// ReminderDebt is one counterparty the user owes.
type ReminderDebt struct {
	CounterpartyID   string          `json:"counterpartyId"`
	CounterpartyName string          `json:"counterpartyName"`
	Amount           decimal.Decimal `json:"amount"`
	Since            time.Time       `json:"since"`
}

// Total is the sum owed across all counterparties.
func (m *DebtReminder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range m.Debts {
		total = total.Add(d.Amount)
	}
	return total
}

func (m *DebtReminder) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DebtReminderFromJSON(data []byte) (*DebtReminder, error) {
	var msg DebtReminder
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
