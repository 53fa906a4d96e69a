package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	ledger *ledger.Service
}

// NewGroupService creates a new GroupService.
func NewGroupService(l *ledger.Service) *GroupService {
	return &GroupService{ledger: l}
}

// CreateGroup creates a new group with the caller as admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	details, err := s.ledger.CreateGroup(ctx, middleware.GetUserID(ctx), req.Msg.Name, req.Msg.Description, req.Msg.MemberIDs)
	if err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{
		Group: toAPIGroup(details.Group, details.Users),
	}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	details, err := s.ledger.GetGroup(ctx, middleware.GetUserID(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("GetGroup", err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group: toAPIGroup(details.Group, details.Users),
	}), nil
}

// ListGroups returns the caller's groups and the caller's balance in each.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	summaries, err := s.ledger.ListGroups(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError("ListGroups", err)
	}

	groups := make([]api.GroupSummary, len(summaries))
	for i, sum := range summaries {
		groups[i] = api.GroupSummary{
			Group:       toAPIGroup(sum.Group, nil),
			MemberCount: sum.MemberCount,
			Balance:     sum.Balance.Decimal(),
		}
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// GetGroupBalances returns the netted debts between all group members.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupID)

	view, err := s.ledger.GetGroupLedger(ctx, middleware.GetUserID(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("GetGroupBalances", err)
	}

	balances := make([]api.MemberBalance, len(view.Balances))
	for i, b := range view.Balances {
		var name string
		if u, ok := view.Users[b.UserID]; ok {
			name = u.Name
		}
		balances[i] = api.MemberBalance{
			UserID:       b.UserID,
			Name:         name,
			TotalBalance: b.TotalBalance.Decimal(),
			Owes:         toAPIEdges(b.Owes),
			OwedBy:       toAPIEdges(b.OwedBy),
		}
	}

	return connect.NewResponse(&api.GetGroupBalancesResponse{Balances: balances}), nil
}

// GetGroupSettlementBalances returns the caller's pairwise balance with each
// other member of a group.
func (s *GroupService) GetGroupSettlementBalances(ctx context.Context, req *connect.Request[api.GetGroupSettlementBalancesRequest]) (*connect.Response[api.GetGroupSettlementBalancesResponse], error) {
	pairs, err := s.ledger.GetGroupSettlementBalances(ctx, middleware.GetUserID(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("GetGroupSettlementBalances", err)
	}

	balances := make([]api.PairBalance, len(pairs))
	for i, p := range pairs {
		balances[i] = toAPIPairBalance(p.UserID, p.PairBalance)
	}
	return connect.NewResponse(&api.GetGroupSettlementBalancesResponse{Balances: balances}), nil
}
