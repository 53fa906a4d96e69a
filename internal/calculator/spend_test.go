package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

func TestAggregateSpend(t *testing.T) {
	at := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
	expenses := []*models.Expense{
		equalExpense("A", "", 3000, at(2025, time.January, 10), "A", "B", "C"),
		equalExpense("B", "g1", 1000, at(2025, time.January, 20), "A", "B"),
		equalExpense("B", "", 2000, at(2025, time.March, 5), "B", "C"),
		equalExpense("C", "", 900, at(2024, time.December, 31), "A", "C"),
	}

	summary := AggregateSpend("A", 2025, nil, expenses)

	require.Equal(t, 2025, summary.Year)
	require.Equal(t, money.Cents(1500), summary.Total)
	require.Equal(t, money.Cents(1500), summary.Months[0].Total)
	require.Zero(t, summary.Months[2].Total)
	for i, m := range summary.Months {
		require.Equal(t, time.Month(i+1), m.Month.Month())
		require.Equal(t, 1, m.Month.Day())
	}
}

func TestAggregateSpend_EmptyYear(t *testing.T) {
	summary := AggregateSpend("A", 2030, time.UTC, nil)

	require.Zero(t, summary.Total)
	require.Len(t, summary.Months, 12)
	for _, m := range summary.Months {
		require.Zero(t, m.Total)
		require.Equal(t, 2030, m.Month.Year())
	}
}

func TestAggregateSpend_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on Dec 31 is already New Year's Day in Tokyo.
	e := equalExpense("A", "", 1000, time.Date(2024, time.December, 31, 20, 0, 0, 0, time.UTC), "A", "B")

	inUTC := AggregateSpend("A", 2025, time.UTC, []*models.Expense{e})
	require.Zero(t, inUTC.Total)

	inTokyo := AggregateSpend("A", 2025, tokyo, []*models.Expense{e})
	require.Equal(t, money.Cents(500), inTokyo.Total)
	require.Equal(t, money.Cents(500), inTokyo.Months[0].Total)
}
