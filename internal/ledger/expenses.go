package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// ExpenseInput describes an expense to record. Splits are always computed
// from Shares; callers never supply split amounts directly for equal or
// percentage expenses.
type ExpenseInput struct {
	Description  string
	Amount       money.Cents
	Category     string
	Date         time.Time // zero means now
	PaidByUserID string
	GroupID      string
	SplitType    models.SplitType
	Shares       []calculator.Share
}

// CreateExpense validates input, computes its splits, and stores it.
func (s *Service) CreateExpense(ctx context.Context, caller string, in ExpenseInput) (*models.Expense, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, errs.Validation("description is required")
	}
	if in.PaidByUserID == "" {
		return nil, errs.Validation("payer is required")
	}

	participants := make([]string, 0, len(in.Shares))
	for _, share := range in.Shares {
		if share.UserID == "" {
			return nil, errs.Validation("split participant is required")
		}
		participants = append(participants, share.UserID)
	}
	if len(dedupe(participants)) != len(participants) {
		return nil, errs.Validation("participants must be unique")
	}

	result, err := calculator.CalculateSplit(in.Amount, in.SplitType, in.Shares, in.PaidByUserID)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, errs.Validation("%s", result.Warning)
	}

	expense := &models.Expense{
		Description:  description,
		Amount:       in.Amount,
		Category:     strings.TrimSpace(in.Category),
		Date:         in.Date,
		PaidByUserID: in.PaidByUserID,
		GroupID:      in.GroupID,
		CreatedBy:    caller,
		SplitType:    in.SplitType,
		Splits:       result.Splits,
	}
	if sum := expense.SplitTotal(); !sum.Within(expense.Amount) {
		return nil, errs.Validation("splits add up to %s, expected %s", sum, expense.Amount)
	}
	if expense.Date.IsZero() {
		expense.Date = s.now()
	}

	if _, err := s.usersByID(ctx, dedupe(append([]string{in.PaidByUserID}, participants...))); err != nil {
		return nil, err
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(in.PaidByUserID) {
			return nil, errs.Validation("payer is not a member of group %s", group.ID)
		}
		for _, p := range participants {
			if !group.HasMember(p) {
				return nil, errs.Validation("participant %s is not a member of group %s", p, group.ID)
			}
		}
	}

	if !expense.Involves(caller) {
		return nil, errs.Forbidden("only the payer or a participant can record an expense")
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount.String(),
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// DeleteExpense removes an expense. Only its creator or payer may do so.
func (s *Service) DeleteExpense(ctx context.Context, caller, expenseID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if caller != expense.CreatedBy && caller != expense.PaidByUserID {
		return errs.Forbidden("only the creator or payer can delete an expense")
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "deleted_by", caller)
	return nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (s *Service) ListGroupExpenses(ctx context.Context, caller, groupID string) ([]*models.Expense, error) {
	if _, err := s.memberGroup(ctx, caller, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// PreviewSplit runs the split calculator without storing anything.
// Invalid percentage or exact inputs come back as a result with Valid unset.
func (s *Service) PreviewSplit(caller string, total money.Cents, splitType models.SplitType, shares []calculator.Share, payerID string) (*calculator.SplitResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return calculator.CalculateSplit(total, splitType, shares, payerID)
}
