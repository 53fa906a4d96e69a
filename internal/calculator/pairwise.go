package calculator

import (
	"slices"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// PairBalance is the net relationship between the caller and one counterparty.
type PairBalance struct {
	YouAreOwed money.Cents
	YouOwe     money.Cents
	NetBalance money.Cents // YouAreOwed - YouOwe
}

// MemberPairBalance is a PairBalance against one group member.
type MemberPairBalance struct {
	UserID string
	PairBalance
}

type pairAcc struct {
	owed  money.Cents
	owing money.Cents
}

func (a *pairAcc) balance() PairBalance {
	return PairBalance{YouAreOwed: a.owed, YouOwe: a.owing, NetBalance: a.owed - a.owing}
}

// ResolvePair nets what me and other owe each other across the records in
// one scope: groupID == "" selects personal records, otherwise only that
// group's records count.
//
// Settlements only pay down an existing debt: each one is subtracted from the
// matching side and floored at zero, so a late payment never flips the sign.
func ResolvePair(me, other, groupID string, expenses []*models.Expense, settlements []*models.Settlement) PairBalance {
	accs := resolve(me, []string{other}, groupID, expenses, settlements)
	return accs[other].balance()
}

// ResolveGroupPairs runs ResolvePair against every member of a group except
// me, in roster order.
func ResolveGroupPairs(me string, members []string, groupID string, expenses []*models.Expense, settlements []*models.Settlement) []MemberPairBalance {
	others := make([]string, 0, len(members))
	for _, m := range members {
		if m != me && !slices.Contains(others, m) {
			others = append(others, m)
		}
	}

	accs := resolve(me, others, groupID, expenses, settlements)
	out := make([]MemberPairBalance, len(others))
	for i, id := range others {
		out[i] = MemberPairBalance{UserID: id, PairBalance: accs[id].balance()}
	}
	return out
}

func resolve(me string, others []string, groupID string, expenses []*models.Expense, settlements []*models.Settlement) map[string]*pairAcc {
	accs := make(map[string]*pairAcc, len(others))
	for _, id := range others {
		accs[id] = &pairAcc{}
	}

	for _, e := range expenses {
		if e.GroupID != groupID {
			continue
		}
		if e.PaidByUserID == me {
			for _, s := range e.Splits {
				if acc, ok := accs[s.UserID]; ok && !s.Paid {
					acc.owed += s.Amount
				}
			}
			continue
		}
		acc, ok := accs[e.PaidByUserID]
		if !ok {
			continue
		}
		if s, ok := e.SplitFor(me); ok && !s.Paid {
			acc.owing += s.Amount
		}
	}

	for _, st := range chronological(settlements) {
		if st.GroupID != groupID {
			continue
		}
		switch {
		case st.PaidByUserID == me:
			if acc, ok := accs[st.ReceivedByUserID]; ok {
				acc.owing = max(0, acc.owing-st.Amount)
			}
		case st.ReceivedByUserID == me:
			if acc, ok := accs[st.PaidByUserID]; ok {
				acc.owed = max(0, acc.owed-st.Amount)
			}
		}
	}
	return accs
}

// chronological returns settlements ordered by date, oldest first, without
// reordering the caller's slice.
func chronological(settlements []*models.Settlement) []*models.Settlement {
	sorted := slices.Clone(settlements)
	slices.SortStableFunc(sorted, func(a, b *models.Settlement) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}
