package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

func TestBalanceService_PersonalLedger(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice, bob, carol := ts.register(t, "Alice"), ts.register(t, "Bob"), ts.register(t, "Carol")
	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		Description:  "Concert tickets",
		Amount:       dec("20"),
		Date:         march,
		PaidByUserID: alice.user.ID,
		SplitType:    "equal",
		Shares:       equalShares(alice, bob),
	}))
	require.NoError(t, err)

	_, err = bob.settlement.CreateSettlement(ctx, connect.NewRequest(&api.CreateSettlementRequest{
		PaidByUserID:     bob.user.ID,
		ReceivedByUserID: alice.user.ID,
		Amount:           dec("4"),
	}))
	require.NoError(t, err)

	pair, err := bob.balances.GetPairwiseBalance(ctx, connect.NewRequest(&api.GetPairwiseBalanceRequest{UserID: alice.user.ID}))
	require.NoError(t, err)
	requireAmount(t, "6", pair.Msg.Balance.YouOwe)
	requireAmount(t, "-6", pair.Msg.Balance.NetBalance)

	_, err = bob.balances.GetPairwiseBalance(ctx, connect.NewRequest(&api.GetPairwiseBalanceRequest{UserID: bob.user.ID}))
	requireCode(t, err, connect.CodeInvalidArgument)

	personal, err := alice.balances.GetPersonalBalance(ctx, connect.NewRequest(&api.GetPersonalBalanceRequest{}))
	require.NoError(t, err)
	requireAmount(t, "6", personal.Msg.YouAreOwed)
	requireAmount(t, "6", personal.Msg.TotalBalance)
	require.Len(t, personal.Msg.OwedToYou, 1)
	require.Equal(t, "Bob", personal.Msg.OwedToYou[0].Name)
	require.Empty(t, personal.Msg.YouOweTo)

	contacts, err := alice.balances.GetContacts(ctx, connect.NewRequest(&api.GetContactsRequest{}))
	require.NoError(t, err)
	names := make([]string, len(contacts.Msg.Contacts))
	for i, c := range contacts.Msg.Contacts {
		names[i] = c.Name
	}
	require.Equal(t, []string{"Bob"}, names)

	none, err := carol.balances.GetContacts(ctx, connect.NewRequest(&api.GetContactsRequest{}))
	require.NoError(t, err)
	require.Empty(t, none.Msg.Contacts)

	months, err := bob.balances.GetMonthlySpend(ctx, connect.NewRequest(&api.GetMonthlySpendRequest{Year: 2025}))
	require.NoError(t, err)
	require.Len(t, months.Msg.Months, 12)
	require.Equal(t, "2025-03", months.Msg.Months[2].Month)
	requireAmount(t, "10", months.Msg.Months[2].Total)
	requireAmount(t, "0", months.Msg.Months[3].Total)

	total, err := bob.balances.GetTotalSpend(ctx, connect.NewRequest(&api.GetTotalSpendRequest{Year: 2025}))
	require.NoError(t, err)
	requireAmount(t, "10", total.Msg.Total)

	_, err = bob.balances.GetTotalSpend(ctx, connect.NewRequest(&api.GetTotalSpendRequest{Year: 0}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestBalanceService_SearchUsers(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "Alice")
	ts.register(t, "Bob")
	ts.register(t, "Bobby")

	resp, err := alice.balances.SearchUsers(ctx, connect.NewRequest(&api.SearchUsersRequest{Query: "bob"}))
	require.NoError(t, err)
	names := make([]string, len(resp.Msg.Users))
	for i, u := range resp.Msg.Users {
		names[i] = u.Name
	}
	require.Equal(t, []string{"Bob", "Bobby"}, names)

	self, err := alice.balances.SearchUsers(ctx, connect.NewRequest(&api.SearchUsersRequest{Query: "alice@"}))
	require.NoError(t, err)
	require.Empty(t, self.Msg.Users)

	anonymous := apiconnect.NewBalanceServiceClient(http.DefaultClient, ts.url)
	_, err = anonymous.SearchUsers(ctx, connect.NewRequest(&api.SearchUsersRequest{Query: "bob"}))
	requireCode(t, err, connect.CodeUnauthenticated)
}

func TestRoutes_RecordMetrics(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "Alice")

	_, err := alice.balances.GetContacts(ctx, connect.NewRequest(&api.GetContactsRequest{}))
	require.NoError(t, err)
	_, err = alice.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)

	rec := httptest.NewRecorder()
	ts.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	require.Contains(t, body, `procedure="/splitledger.v1.BalanceService/GetContacts"`)
	require.Contains(t, body, `code="not_found"`)
	require.Contains(t, body, `procedure="/splitledger.v1.AuthService/Register"`)
}
