package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	ledger *ledger.Service
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(l *ledger.Service) *SettlementService {
	return &SettlementService{ledger: l}
}

// CreateSettlement records a payment between the caller and another user.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	slog.Info("CreateSettlement request received",
		"group_id", req.Msg.GroupID,
		"from", req.Msg.PaidByUserID,
		"to", req.Msg.ReceivedByUserID,
	)

	settlement, err := s.ledger.CreateSettlement(ctx, middleware.GetUserID(ctx), ledger.SettlementInput{
		GroupID:           req.Msg.GroupID,
		PaidByUserID:      req.Msg.PaidByUserID,
		ReceivedByUserID:  req.Msg.ReceivedByUserID,
		Amount:            money.FromDecimal(req.Msg.Amount),
		Date:              req.Msg.Date,
		Note:              req.Msg.Note,
		RelatedExpenseIDs: req.Msg.RelatedExpenseIDs,
	})
	if err != nil {
		return nil, toConnectError("CreateSettlement", err)
	}

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListGroupSettlements returns a group's settlements, newest first.
func (s *SettlementService) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	settlements, err := s.ledger.ListGroupSettlements(ctx, middleware.GetUserID(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("ListGroupSettlements", err)
	}

	out := make([]api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return connect.NewResponse(&api.ListGroupSettlementsResponse{Settlements: out}), nil
}
