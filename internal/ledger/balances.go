package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// GroupLedgerView is the netted state of one group.
type GroupLedgerView struct {
	Group    *models.Group
	Users    map[string]*models.User
	Balances []calculator.MemberBalance
	Totals   map[string]money.Cents
}

// PersonalBalance is the caller's personal aggregate with counterparties
// resolved to users.
type PersonalBalance struct {
	calculator.PersonalAggregate
	Users map[string]*models.User
}

// GetPairwiseBalance returns how much the caller and other owe each other
// through personal expenses and settlements.
func (s *Service) GetPairwiseBalance(ctx context.Context, caller, other string) (calculator.PairBalance, error) {
	if err := requireCaller(caller); err != nil {
		return calculator.PairBalance{}, err
	}
	if other == "" || other == caller {
		return calculator.PairBalance{}, errs.Validation("counterparty must be another user")
	}
	if _, err := s.store.GetUserByID(ctx, other); err != nil {
		return calculator.PairBalance{}, err
	}

	expenses, settlements, err := s.personalHistory(ctx, caller)
	if err != nil {
		return calculator.PairBalance{}, err
	}
	return calculator.ResolvePair(caller, other, "", expenses, settlements), nil
}

// GetGroupSettlementBalances returns the caller's pairwise balance with every
// other member, scoped to one group.
func (s *Service) GetGroupSettlementBalances(ctx context.Context, caller, groupID string) ([]calculator.MemberPairBalance, error) {
	group, err := s.memberGroup(ctx, caller, groupID)
	if err != nil {
		return nil, err
	}
	expenses, settlements, err := s.groupHistory(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return calculator.ResolveGroupPairs(caller, group.MemberIDs(), group.ID, expenses, settlements), nil
}

// GetGroupLedger returns the fully netted debts of a group.
func (s *Service) GetGroupLedger(ctx context.Context, caller, groupID string) (*GroupLedgerView, error) {
	group, err := s.memberGroup(ctx, caller, groupID)
	if err != nil {
		return nil, err
	}
	expenses, settlements, err := s.groupHistory(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	ledger := calculator.NetGroup(group.MemberIDs(), expenses, settlements)
	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, err
	}
	return &GroupLedgerView{
		Group:    group,
		Users:    users,
		Balances: ledger.Balances(),
		Totals:   ledger.Totals(),
	}, nil
}

// GetPersonalAggregate totals the caller's personal balances across every
// counterparty.
func (s *Service) GetPersonalAggregate(ctx context.Context, caller string) (*PersonalBalance, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	expenses, settlements, err := s.personalHistory(ctx, caller)
	if err != nil {
		return nil, err
	}

	agg := calculator.AggregatePersonal(caller, expenses, settlements)
	var ids []string
	for _, c := range agg.OwedToYou {
		ids = append(ids, c.UserID)
	}
	for _, c := range agg.YouOweTo {
		ids = append(ids, c.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &PersonalBalance{PersonalAggregate: agg, Users: users}, nil
}
