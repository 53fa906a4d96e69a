package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// CounterpartyBalance is an absolute amount owed between the caller and one user.
type CounterpartyBalance struct {
	UserID string
	Amount money.Cents
}

// PersonalAggregate summarizes all of a user's personal (non-group) activity.
type PersonalAggregate struct {
	YouOwe       money.Cents
	YouAreOwed   money.Cents
	TotalBalance money.Cents // YouAreOwed - YouOwe

	OwedToYou []CounterpartyBalance // counterparties with a positive net
	YouOweTo  []CounterpartyBalance // counterparties with a negative net, as |net|
}

type bucket struct {
	owed  money.Cents
	owing money.Cents
}

// AggregatePersonal totals what me owes and is owed across every personal
// expense and settlement.
//
// Unlike ResolvePair, settlements are subtracted without a floor: an
// overpayment shows up as a balance in the other direction.
func AggregatePersonal(me string, expenses []*models.Expense, settlements []*models.Settlement) PersonalAggregate {
	var agg PersonalAggregate
	buckets := make(map[string]*bucket)
	get := func(id string) *bucket {
		b, ok := buckets[id]
		if !ok {
			b = &bucket{}
			buckets[id] = b
		}
		return b
	}

	for _, e := range expenses {
		if !e.IsPersonal() {
			continue
		}
		if e.PaidByUserID == me {
			for _, s := range e.Splits {
				if s.UserID == me || s.Paid {
					continue
				}
				agg.YouAreOwed += s.Amount
				get(s.UserID).owed += s.Amount
			}
			continue
		}
		if s, ok := e.SplitFor(me); ok && !s.Paid {
			agg.YouOwe += s.Amount
			get(e.PaidByUserID).owing += s.Amount
		}
	}

	for _, st := range settlements {
		if st.GroupID != "" {
			continue
		}
		switch {
		case st.PaidByUserID == me:
			agg.YouOwe -= st.Amount
			get(st.ReceivedByUserID).owing -= st.Amount
		case st.ReceivedByUserID == me:
			agg.YouAreOwed -= st.Amount
			get(st.PaidByUserID).owed -= st.Amount
		}
	}

	for id, b := range buckets {
		if id == me {
			continue
		}
		net := b.owed - b.owing
		switch {
		case net > 0:
			agg.OwedToYou = append(agg.OwedToYou, CounterpartyBalance{UserID: id, Amount: net})
		case net < 0:
			agg.YouOweTo = append(agg.YouOweTo, CounterpartyBalance{UserID: id, Amount: -net})
		}
	}
	byUser := func(a, b CounterpartyBalance) int { return cmp.Compare(a.UserID, b.UserID) }
	slices.SortFunc(agg.OwedToYou, byUser)
	slices.SortFunc(agg.YouOweTo, byUser)

	agg.TotalBalance = agg.YouAreOwed - agg.YouOwe
	return agg
}
