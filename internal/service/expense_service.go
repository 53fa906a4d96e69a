package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	ledger *ledger.Service
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(l *ledger.Service) *ExpenseService {
	return &ExpenseService{ledger: l}
}

// CreateExpense records an expense with splits computed server-side.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"split_type", req.Msg.SplitType,
		"shares", len(req.Msg.Shares),
	)

	expense, err := s.ledger.CreateExpense(ctx, middleware.GetUserID(ctx), ledger.ExpenseInput{
		Description:  req.Msg.Description,
		Amount:       money.FromDecimal(req.Msg.Amount),
		Category:     req.Msg.Category,
		Date:         req.Msg.Date,
		PaidByUserID: req.Msg.PaidByUserID,
		GroupID:      req.Msg.GroupID,
		SplitType:    models.SplitType(req.Msg.SplitType),
		Shares:       fromAPIShares(req.Msg.Shares),
	})
	if err != nil {
		return nil, toConnectError("CreateExpense", err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense recorded or paid by the caller.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := s.ledger.DeleteExpense(ctx, middleware.GetUserID(ctx), req.Msg.ExpenseID); err != nil {
		return nil, toConnectError("DeleteExpense", err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	expenses, err := s.ledger.ListGroupExpenses(ctx, middleware.GetUserID(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("ListGroupExpenses", err)
	}

	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	slog.Info("ListGroupExpenses successful", "group_id", req.Msg.GroupID, "count", len(out))
	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}

// CalculateSplit previews a split without saving it. Percentages or exact
// amounts that do not add up are reported through Valid and Warning.
func (s *ExpenseService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	result, err := s.ledger.PreviewSplit(
		middleware.GetUserID(ctx),
		money.FromDecimal(req.Msg.Amount),
		models.SplitType(req.Msg.SplitType),
		fromAPIShares(req.Msg.Shares),
		req.Msg.PaidByUserID,
	)
	if err != nil {
		return nil, toConnectError("CalculateSplit", err)
	}

	return connect.NewResponse(&api.CalculateSplitResponse{
		Splits:      toAPISplits(result.Splits),
		Valid:       result.Valid,
		Discrepancy: result.Discrepancy,
		Warning:     result.Warning,
	}), nil
}
