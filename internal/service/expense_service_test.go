package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestExpenseService_CreateListDelete(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice, bob := ts.register(t, "Alice"), ts.register(t, "Bob")

	created, err := alice.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:      "Dinner club",
		MemberIDs: []string{bob.user.ID},
	}))
	require.NoError(t, err)
	groupID := created.Msg.Group.ID

	resp, err := bob.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		Description:  "Sushi",
		Amount:       dec("100"),
		Category:     "food",
		PaidByUserID: bob.user.ID,
		GroupID:      groupID,
		SplitType:    "percentage",
		Shares: []api.Share{
			{UserID: alice.user.ID, Percentage: dec("33.33")},
			{UserID: bob.user.ID, Percentage: dec("66.67")},
		},
	}))
	require.NoError(t, err)
	expense := resp.Msg.Expense
	require.Equal(t, bob.user.ID, expense.CreatedBy)
	require.Len(t, expense.Splits, 2)
	requireAmount(t, "33.33", expense.Splits[0].Amount)
	requireAmount(t, "66.67", expense.Splits[1].Amount)
	require.True(t, expense.Splits[1].Paid)
	require.False(t, expense.Date.IsZero())

	list, err := alice.expenses.ListGroupExpenses(ctx, connect.NewRequest(&api.ListGroupExpensesRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 1)

	// Alice neither paid nor recorded it.
	_, err = alice.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = bob.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)

	_, err = bob.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestExpenseService_CreateRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice, bob, carol := ts.register(t, "Alice"), ts.register(t, "Bob"), ts.register(t, "Carol")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
		code connect.Code
	}{
		{
			name: "percentages do not add up",
			req: &api.CreateExpenseRequest{
				Description: "Taxi", Amount: dec("50"), PaidByUserID: alice.user.ID, SplitType: "percentage",
				Shares: []api.Share{{UserID: alice.user.ID, Percentage: dec("50")}, {UserID: bob.user.ID, Percentage: dec("40")}},
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown split type",
			req: &api.CreateExpenseRequest{
				Description: "Taxi", Amount: dec("50"), PaidByUserID: alice.user.ID, SplitType: "shares",
				Shares: equalShares(alice, bob),
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "caller not involved",
			req: &api.CreateExpenseRequest{
				Description: "Taxi", Amount: dec("50"), PaidByUserID: bob.user.ID, SplitType: "equal",
				Shares: equalShares(bob, carol),
			},
			code: connect.CodePermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(tt.req))
			requireCode(t, err, tt.code)
		})
	}
}

func TestExpenseService_CalculateSplit(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice, bob, carol := ts.register(t, "Alice"), ts.register(t, "Bob"), ts.register(t, "Carol")

	resp, err := alice.expenses.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		Amount:       dec("10"),
		SplitType:    "equal",
		PaidByUserID: alice.user.ID,
		Shares:       equalShares(alice, bob, carol),
	}))
	require.NoError(t, err)
	require.True(t, resp.Msg.Valid)
	requireAmount(t, "3.34", resp.Msg.Splits[0].Amount)
	requireAmount(t, "3.33", resp.Msg.Splits[2].Amount)

	resp, err = alice.expenses.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		Amount:       dec("10"),
		SplitType:    "exact",
		PaidByUserID: alice.user.ID,
		Shares:       []api.Share{{UserID: alice.user.ID, Amount: dec("4")}, {UserID: bob.user.ID, Amount: dec("5")}},
	}))
	require.NoError(t, err)
	require.False(t, resp.Msg.Valid)
	require.NotEmpty(t, resp.Msg.Warning)
}
