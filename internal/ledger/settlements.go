package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// SettlementInput describes a direct payment between two users.
type SettlementInput struct {
	GroupID           string
	PaidByUserID      string
	ReceivedByUserID  string
	Amount            money.Cents
	Date              time.Time // zero means now
	Note              string
	RelatedExpenseIDs []string
}

// CreateSettlement records a payment from one user to another. The caller
// must be one of the two parties.
func (s *Service) CreateSettlement(ctx context.Context, caller string, in SettlementInput) (*models.Settlement, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, errs.Validation("settlement amount must be positive")
	}
	if in.PaidByUserID == "" || in.ReceivedByUserID == "" {
		return nil, errs.Validation("payer and receiver are required")
	}
	if in.PaidByUserID == in.ReceivedByUserID {
		return nil, errs.Validation("cannot settle with yourself")
	}
	if caller != in.PaidByUserID && caller != in.ReceivedByUserID {
		return nil, errs.Forbidden("only a party to the payment can record it")
	}

	if _, err := s.usersByID(ctx, []string{in.PaidByUserID, in.ReceivedByUserID}); err != nil {
		return nil, err
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(in.PaidByUserID) || !group.HasMember(in.ReceivedByUserID) {
			return nil, errs.Validation("both parties must be members of group %s", group.ID)
		}
	}

	settlement := &models.Settlement{
		GroupID:           in.GroupID,
		PaidByUserID:      in.PaidByUserID,
		ReceivedByUserID:  in.ReceivedByUserID,
		Amount:            in.Amount,
		Date:              in.Date,
		CreatedBy:         caller,
		Note:              strings.TrimSpace(in.Note),
		RelatedExpenseIDs: dedupe(in.RelatedExpenseIDs),
	}
	if settlement.Date.IsZero() {
		settlement.Date = s.now()
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.PaidByUserID,
		"to", settlement.ReceivedByUserID,
		"amount", settlement.Amount.String(),
	)
	return settlement, nil
}

// ListGroupSettlements returns a group's settlements, newest first.
func (s *Service) ListGroupSettlements(ctx context.Context, caller, groupID string) ([]*models.Settlement, error) {
	if _, err := s.memberGroup(ctx, caller, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
