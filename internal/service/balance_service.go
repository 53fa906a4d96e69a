package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// BalanceService implements the Connect BalanceService: the personal
// dashboard views.
type BalanceService struct {
	apiconnect.UnimplementedBalanceServiceHandler
	ledger *ledger.Service
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(l *ledger.Service) *BalanceService {
	return &BalanceService{ledger: l}
}

// GetPairwiseBalance returns what the caller and another user owe each other.
func (s *BalanceService) GetPairwiseBalance(ctx context.Context, req *connect.Request[api.GetPairwiseBalanceRequest]) (*connect.Response[api.GetPairwiseBalanceResponse], error) {
	pb, err := s.ledger.GetPairwiseBalance(ctx, middleware.GetUserID(ctx), req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("GetPairwiseBalance", err)
	}
	return connect.NewResponse(&api.GetPairwiseBalanceResponse{
		Balance: toAPIPairBalance(req.Msg.UserID, pb),
	}), nil
}

// GetPersonalBalance returns the caller's totals and per-counterparty balances.
func (s *BalanceService) GetPersonalBalance(ctx context.Context, req *connect.Request[api.GetPersonalBalanceRequest]) (*connect.Response[api.GetPersonalBalanceResponse], error) {
	agg, err := s.ledger.GetPersonalAggregate(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError("GetPersonalBalance", err)
	}
	return connect.NewResponse(&api.GetPersonalBalanceResponse{
		YouOwe:       agg.YouOwe.Decimal(),
		YouAreOwed:   agg.YouAreOwed.Decimal(),
		TotalBalance: agg.TotalBalance.Decimal(),
		OwedToYou:    toAPICounterparties(agg.OwedToYou, agg.Users),
		YouOweTo:     toAPICounterparties(agg.YouOweTo, agg.Users),
	}), nil
}

// GetContacts lists everyone the caller shares an expense or group with.
func (s *BalanceService) GetContacts(ctx context.Context, req *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error) {
	users, err := s.ledger.GetContacts(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError("GetContacts", err)
	}
	contacts := make([]api.User, len(users))
	for i, u := range users {
		contacts[i] = toAPIUser(u)
	}
	return connect.NewResponse(&api.GetContactsResponse{Contacts: contacts}), nil
}

// GetMonthlySpend returns the caller's share of expenses per month of a year.
func (s *BalanceService) GetMonthlySpend(ctx context.Context, req *connect.Request[api.GetMonthlySpendRequest]) (*connect.Response[api.GetMonthlySpendResponse], error) {
	months, err := s.ledger.GetMonthlySpend(ctx, middleware.GetUserID(ctx), req.Msg.Year)
	if err != nil {
		return nil, toConnectError("GetMonthlySpend", err)
	}
	out := make([]api.MonthlySpend, len(months))
	for i, m := range months {
		out[i] = api.MonthlySpend{Month: m.Month.Format("2006-01"), Total: m.Total.Decimal()}
	}
	return connect.NewResponse(&api.GetMonthlySpendResponse{Months: out}), nil
}

// GetTotalSpend returns the caller's share of expenses over a year.
func (s *BalanceService) GetTotalSpend(ctx context.Context, req *connect.Request[api.GetTotalSpendRequest]) (*connect.Response[api.GetTotalSpendResponse], error) {
	total, err := s.ledger.GetTotalSpend(ctx, middleware.GetUserID(ctx), req.Msg.Year)
	if err != nil {
		return nil, toConnectError("GetTotalSpend", err)
	}
	return connect.NewResponse(&api.GetTotalSpendResponse{Total: total.Decimal()}), nil
}

// SearchUsers finds other users by name or email.
func (s *BalanceService) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	users, err := s.ledger.SearchUsers(ctx, middleware.GetUserID(ctx), req.Msg.Query)
	if err != nil {
		return nil, toConnectError("SearchUsers", err)
	}
	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return connect.NewResponse(&api.SearchUsersResponse{Users: out}), nil
}
