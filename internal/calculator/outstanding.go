package calculator

import (
	"cmp"
	"slices"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// OutstandingDebt is money a user still owes one counterparty.
type OutstandingDebt struct {
	CounterpartyID string
	Amount         money.Cents
	Since          time.Time // earliest expense contributing to the entry
}

// UserDebts lists a user's outstanding debts.
type UserDebts struct {
	UserID string
	Debts  []OutstandingDebt
}

type debtEntry struct {
	amount money.Cents
	since  time.Time
}

// ExtractOutstanding finds, for every user, the counterparties they still
// owe money to across personal records. Users without a positive entry are
// left out.
//
// Settlements only adjust entries that already exist, and an entry that
// lands on exactly zero is dropped.
func ExtractOutstanding(userIDs []string, expenses []*models.Expense, settlements []*models.Settlement) []UserDebts {
	var personal []*models.Expense
	for _, e := range expenses {
		if e.IsPersonal() {
			personal = append(personal, e)
		}
	}
	var personalSettlements []*models.Settlement
	for _, st := range chronological(settlements) {
		if st.GroupID == "" {
			personalSettlements = append(personalSettlements, st)
		}
	}

	var out []UserDebts
	for _, u := range userIDs {
		debts := outstandingFor(u, personal, personalSettlements)
		if len(debts) > 0 {
			out = append(out, UserDebts{UserID: u, Debts: debts})
		}
	}
	return out
}

func outstandingFor(u string, expenses []*models.Expense, settlements []*models.Settlement) []OutstandingDebt {
	ledger := make(map[string]*debtEntry)
	touch := func(counterparty string, date time.Time) *debtEntry {
		entry, ok := ledger[counterparty]
		if !ok {
			entry = &debtEntry{since: date}
			ledger[counterparty] = entry
		}
		if date.Before(entry.since) {
			entry.since = date
		}
		return entry
	}

	for _, e := range expenses {
		if e.PaidByUserID != u {
			s, ok := e.SplitFor(u)
			if !ok || s.Paid {
				continue
			}
			touch(e.PaidByUserID, e.Date).amount += s.Amount
			continue
		}
		for _, s := range e.Splits {
			if s.UserID == u || s.Paid {
				continue
			}
			touch(s.UserID, e.Date).amount -= s.Amount
		}
	}

	for _, st := range settlements {
		var counterparty string
		var delta money.Cents
		switch u {
		case st.PaidByUserID:
			counterparty, delta = st.ReceivedByUserID, -st.Amount
		case st.ReceivedByUserID:
			counterparty, delta = st.PaidByUserID, st.Amount
		default:
			continue
		}
		entry, ok := ledger[counterparty]
		if !ok {
			continue
		}
		entry.amount += delta
		if entry.amount == 0 {
			delete(ledger, counterparty)
		}
	}

	var debts []OutstandingDebt
	for id, entry := range ledger {
		if entry.amount > 0 {
			debts = append(debts, OutstandingDebt{CounterpartyID: id, Amount: entry.amount, Since: entry.since})
		}
	}
	slices.SortFunc(debts, func(a, b OutstandingDebt) int {
		if c := a.Since.Compare(b.Since); c != 0 {
			return c
		}
		return cmp.Compare(a.CounterpartyID, b.CounterpartyID)
	})
	return debts
}
