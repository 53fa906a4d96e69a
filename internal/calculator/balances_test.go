package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

func TestNetGroup_TwoMembersCancel(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "g1", 5000, onDay(0), "A", "B"), // B owes A 25
		equalExpense("B", "g1", 2000, onDay(1), "A", "B"), // A owes B 10
	}

	ledger := NetGroup([]string{"A", "B"}, expenses, nil)

	require.Equal(t, money.Cents(1500), ledger.Debt("B", "A"))
	require.Equal(t, money.Cents(0), ledger.Debt("A", "B"))
	require.Equal(t, money.Cents(1500), ledger.Total("A"))
	require.Equal(t, money.Cents(-1500), ledger.Total("B"))

	balances := ledger.Balances()
	require.Len(t, balances, 2)
	require.Equal(t, "A", balances[0].UserID)
	require.Empty(t, balances[0].Owes)
	require.Equal(t, []DebtEdge{{From: "B", To: "A", Amount: 1500}}, balances[0].OwedBy)
	require.Equal(t, []DebtEdge{{From: "B", To: "A", Amount: 1500}}, balances[1].Owes)
	require.Empty(t, balances[1].OwedBy)
}

func TestNetGroup_SettlementReducesDebt(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "g1", 3000, onDay(0), "A", "B", "C"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "g1", 1000, onDay(1)),
	}

	ledger := NetGroup([]string{"A", "B", "C"}, expenses, settlements)

	require.Equal(t, money.Cents(0), ledger.Debt("B", "A"))
	require.Equal(t, money.Cents(0), ledger.Debt("A", "B"))
	require.Equal(t, money.Cents(1000), ledger.Debt("C", "A"))
	require.Equal(t, money.Cents(1000), ledger.Total("A"))
	require.Equal(t, money.Cents(0), ledger.Total("B"))
	require.Equal(t, money.Cents(-1000), ledger.Total("C"))
}

func TestNetGroup_OverpaymentFlipsDirection(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "g1", 2000, onDay(0), "A", "B"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "g1", 1500, onDay(1)),
	}

	ledger := NetGroup([]string{"A", "B"}, expenses, settlements)

	require.Equal(t, money.Cents(500), ledger.Debt("A", "B"))
	require.Equal(t, money.Cents(0), ledger.Debt("B", "A"))
	require.Equal(t, money.Cents(-500), ledger.Total("A"))
	require.Equal(t, money.Cents(500), ledger.Total("B"))
}

func TestNetGroup_PaidSplitsIgnored(t *testing.T) {
	e := equalExpense("A", "g1", 3000, onDay(0), "A", "B", "C")
	e.Splits[1].Paid = true

	ledger := NetGroup([]string{"A", "B", "C"}, []*models.Expense{e}, nil)

	require.Equal(t, money.Cents(0), ledger.Debt("B", "A"))
	require.Equal(t, money.Cents(1000), ledger.Debt("C", "A"))
	require.Equal(t, money.Cents(1000), ledger.Total("A"))
}

func TestNetGroup_EmptyHistory(t *testing.T) {
	ledger := NetGroup([]string{"A", "B", "C"}, nil, nil)

	for _, bal := range ledger.Balances() {
		require.Zero(t, bal.TotalBalance)
		require.Empty(t, bal.Owes)
		require.Empty(t, bal.OwedBy)
	}
	require.Empty(t, ledger.Edges())
	require.Len(t, ledger.Totals(), 3)
}

func TestNetGroup_FormerParticipantStillCounts(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "g1", 3000, onDay(0), "A", "B", "Z"),
	}

	ledger := NetGroup([]string{"A", "B"}, expenses, nil)

	require.Equal(t, money.Cents(1000), ledger.Debt("Z", "A"))
	require.Equal(t, money.Cents(2000), ledger.Total("A"))
	require.Len(t, ledger.Balances(), 2)
	require.Contains(t, ledger.Balances()[0].OwedBy, DebtEdge{From: "Z", To: "A", Amount: 1000})
}
