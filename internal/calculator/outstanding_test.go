package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestExtractOutstanding(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense("A", "", 3000, onDay(3), "A", "B", "C"),
		equalExpense("A", "", 1000, onDay(1), "A", "B"),
		equalExpense("C", "", 400, onDay(2), "B", "C"),
		equalExpense("A", "g1", 8000, onDay(0), "A", "B"), // group, ignored
	}
	settlements := []*models.Settlement{
		settle("C", "A", "", 1000, onDay(4)),
	}

	got := ExtractOutstanding([]string{"A", "B", "C"}, expenses, settlements)

	require.Equal(t, []UserDebts{
		{UserID: "B", Debts: []OutstandingDebt{
			{CounterpartyID: "A", Amount: 1500, Since: onDay(1)},
			{CounterpartyID: "C", Amount: 200, Since: onDay(2)},
		}},
	}, got)
}

func TestExtractOutstanding_NettingAgainstCounterparty(t *testing.T) {
	// B owes A 10 but A owes B 4: only the net 6 is outstanding, for B.
	expenses := []*models.Expense{
		equalExpense("A", "", 2000, onDay(0), "A", "B"),
		equalExpense("B", "", 800, onDay(1), "A", "B"),
	}

	got := ExtractOutstanding([]string{"A", "B"}, expenses, nil)

	require.Len(t, got, 1)
	require.Equal(t, "B", got[0].UserID)
	require.Equal(t, []OutstandingDebt{{CounterpartyID: "A", Amount: 600, Since: onDay(0)}}, got[0].Debts)
}

func TestExtractOutstanding_SettlementNeverCreatesEntry(t *testing.T) {
	settlements := []*models.Settlement{
		settle("A", "B", "", 500, onDay(0)),
	}

	require.Empty(t, ExtractOutstanding([]string{"A", "B"}, nil, settlements))
}

func TestExtractOutstanding_ZeroedEntryIsDropped(t *testing.T) {
	// B owes A 5. The first payment zeroes both sides, so the second is ignored.
	expenses := []*models.Expense{
		equalExpense("A", "", 1000, onDay(0), "A", "B"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "", 700, onDay(3)),
		settle("B", "A", "", 500, onDay(2)),
	}

	require.Empty(t, ExtractOutstanding([]string{"A", "B"}, expenses, settlements))
}

func TestExtractOutstanding_OverpaymentFlips(t *testing.T) {
	// A single overpayment skips zero, leaving A owing B the excess.
	expenses := []*models.Expense{
		equalExpense("A", "", 1000, onDay(0), "A", "B"),
	}
	settlements := []*models.Settlement{
		settle("B", "A", "", 1200, onDay(2)),
	}

	got := ExtractOutstanding([]string{"A", "B"}, expenses, settlements)

	require.Equal(t, []UserDebts{
		{UserID: "A", Debts: []OutstandingDebt{{CounterpartyID: "B", Amount: 700, Since: onDay(0)}}},
	}, got)
}
