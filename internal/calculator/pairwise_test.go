package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

func TestResolvePair_SettlementClearsDebt(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "", 3000, onDay(0), "A", "B", "C"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "", 1000, onDay(1)),
	}

	ab := ResolvePair("A", "B", "", expenses, settlements)
	require.Equal(t, PairBalance{}, ab)

	ac := ResolvePair("A", "C", "", expenses, settlements)
	require.Equal(t, PairBalance{YouAreOwed: 1000, NetBalance: 1000}, ac)

	ca := ResolvePair("C", "A", "", expenses, settlements)
	require.Equal(t, PairBalance{YouOwe: 1000, NetBalance: -1000}, ca)
}

func TestResolvePair_ClampsAtZero(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "", 2000, onDay(0), "A", "B"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "", 5000, onDay(1)),
	}

	require.Equal(t, PairBalance{}, ResolvePair("A", "B", "", expenses, settlements))
	require.Equal(t, PairBalance{}, ResolvePair("B", "A", "", expenses, settlements))
}

func TestResolvePair_MultipleSettlements(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "", 1000, onDay(0), "A", "B"),
		equalExpense("A", "", 1000, onDay(5), "A", "B"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "", 500, onDay(2)),
		settle("B", "A", "", 300, onDay(1)),
	}

	got := ResolvePair("A", "B", "", expenses, settlements)
	require.Equal(t, money.Cents(200), got.YouAreOwed)
	require.Equal(t, money.Cents(0), got.YouOwe)
}

func TestResolvePair_ScopesByGroup(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "", 1000, onDay(0), "A", "B"),
		equalExpense("A", "g1", 4000, onDay(0), "A", "B"),
		equalExpense("B", "g1", 1000, onDay(0), "A", "B"),
	}

	personal := ResolvePair("A", "B", "", expenses, nil)
	require.Equal(t, PairBalance{YouAreOwed: 500, NetBalance: 500}, personal)

	grouped := ResolvePair("A", "B", "g1", expenses, nil)
	require.Equal(t, PairBalance{YouAreOwed: 2000, YouOwe: 500, NetBalance: 1500}, grouped)
}

func TestResolveGroupPairs(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "g1", 3000, onDay(0), "A", "B", "C"),
		equalExpense("C", "g1", 900, onDay(1), "A", "C"),
	}
	settlements := []*models.Settlement{
		settle("A", "C", "g1", 200, onDay(2)),
	}

	got := ResolveGroupPairs("A", []string{"A", "B", "C"}, "g1", expenses, settlements)

	require.Equal(t, []MemberPairBalance{
		{UserID: "B", PairBalance: PairBalance{YouAreOwed: 1000, NetBalance: 1000}},
		{UserID: "C", PairBalance: PairBalance{YouAreOwed: 1000, YouOwe: 250, NetBalance: 750}},
	}, got)
}
