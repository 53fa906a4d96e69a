package calculator

import (
	"maps"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// DebtKey identifies one direction of debt between two users.
type DebtKey struct {
	Debtor   string
	Creditor string
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount money.Cents
}

// MemberBalance is one member's view of a netted group ledger.
type MemberBalance struct {
	UserID       string
	TotalBalance money.Cents // Positive = owed money, Negative = owes money
	Owes         []DebtEdge  // Edges with From == UserID
	OwedBy       []DebtEdge  // Edges with To == UserID
}

// GroupLedger is the fully netted debt structure of one group.
// It is built once by NetGroup and never modified afterwards.
type GroupLedger struct {
	members      []string
	participants []string
	debts        map[DebtKey]money.Cents
	totals       map[string]money.Cents
}

// NetGroup computes who owes whom inside a group.
//
// Algorithm:
//   - For each expense: every unpaid split of a non-payer adds to debt[split][payer]
//   - For each settlement: subtract from debt[payer][receiver]
//   - Totals: payer side +amount, debtor/receiver side -amount, so totals sum to zero
//   - Cancellation: for each pair a < b, keep only the positive difference
//     of the two directions
//
// Users who appear in records but not on the roster still take part in the
// netting; they only lack an entry in Balances.
func NetGroup(members []string, expenses []*models.Expense, settlements []*models.Settlement) *GroupLedger {
	participants := slices.Clone(members)
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		seen[m] = true
	}
	track := func(id string) {
		if !seen[id] {
			seen[id] = true
			participants = append(participants, id)
		}
	}

	raw := make(map[DebtKey]money.Cents)
	totals := make(map[string]money.Cents, len(members))
	for _, m := range members {
		totals[m] = 0
	}

	for _, e := range expenses {
		payer := e.PaidByUserID
		track(payer)
		for _, s := range e.Splits {
			if s.UserID == payer || s.Paid {
				continue
			}
			track(s.UserID)
			raw[DebtKey{Debtor: s.UserID, Creditor: payer}] += s.Amount
			totals[payer] += s.Amount
			totals[s.UserID] -= s.Amount
		}
	}

	for _, st := range settlements {
		track(st.PaidByUserID)
		track(st.ReceivedByUserID)
		raw[DebtKey{Debtor: st.PaidByUserID, Creditor: st.ReceivedByUserID}] -= st.Amount
		totals[st.PaidByUserID] += st.Amount
		totals[st.ReceivedByUserID] -= st.Amount
	}

	return &GroupLedger{
		members:      slices.Clone(members),
		participants: participants,
		debts:        cancel(participants, raw),
		totals:       totals,
	}
}

// cancel collapses each pair into a single direction. The result only holds
// strictly positive entries.
func cancel(participants []string, raw map[DebtKey]money.Cents) map[DebtKey]money.Cents {
	netted := make(map[DebtKey]money.Cents)
	for _, a := range participants {
		for _, b := range participants {
			if a >= b {
				continue
			}
			diff := raw[DebtKey{a, b}] - raw[DebtKey{b, a}]
			switch {
			case diff > 0:
				netted[DebtKey{Debtor: a, Creditor: b}] = diff
			case diff < 0:
				netted[DebtKey{Debtor: b, Creditor: a}] = -diff
			}
		}
	}
	return netted
}

// Members returns the roster the ledger was built for.
func (l *GroupLedger) Members() []string {
	return slices.Clone(l.members)
}

// Debt returns the netted amount debtor owes creditor.
func (l *GroupLedger) Debt(debtor, creditor string) money.Cents {
	return l.debts[DebtKey{Debtor: debtor, Creditor: creditor}]
}

// Total returns userID's net position: positive when owed money.
func (l *GroupLedger) Total(userID string) money.Cents {
	return l.totals[userID]
}

// Totals returns a copy of every participant's net position.
func (l *GroupLedger) Totals() map[string]money.Cents {
	return maps.Clone(l.totals)
}

// Balances returns one MemberBalance per roster member, in roster order.
func (l *GroupLedger) Balances() []MemberBalance {
	out := make([]MemberBalance, 0, len(l.members))
	for _, m := range l.members {
		bal := MemberBalance{UserID: m, TotalBalance: l.totals[m]}
		for _, other := range l.participants {
			if amt := l.Debt(m, other); amt > 0 {
				bal.Owes = append(bal.Owes, DebtEdge{From: m, To: other, Amount: amt})
			}
			if amt := l.Debt(other, m); amt > 0 {
				bal.OwedBy = append(bal.OwedBy, DebtEdge{From: other, To: m, Amount: amt})
			}
		}
		out = append(out, bal)
	}
	return out
}

// Edges returns every netted debt, ordered by debtor then creditor in
// participant order.
func (l *GroupLedger) Edges() []DebtEdge {
	var edges []DebtEdge
	for _, a := range l.participants {
		for _, b := range l.participants {
			if amt := l.Debt(a, b); amt > 0 {
				edges = append(edges, DebtEdge{From: a, To: b, Amount: amt})
			}
		}
	}
	return edges
}
