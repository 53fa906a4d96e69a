// Package ledger is the application layer over the balance calculators.
//
// Every exported method takes the resolved caller id explicitly. The service
// loads the records a computation needs, enforces who may see or change them,
// and hands the snapshot to the calculator package. Nothing is cached: each
// read recomputes from the stored history.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Service implements the ledger operations on top of a storage.Store.
type Service struct {
	store storage.Store
	loc   *time.Location
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the time zone used for calendar month boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source used to date new records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{store: store, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireCaller(caller string) error {
	if caller == "" {
		return errs.ErrNotAuthenticated
	}
	return nil
}

// memberGroup loads a group and checks that caller is on its roster.
func (s *Service) memberGroup(ctx context.Context, caller, groupID string) (*models.Group, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(caller) {
		return nil, errs.ErrNotAMember
	}
	return group, nil
}

// groupHistory loads a group's expenses and settlements concurrently.
func (s *Service) groupHistory(ctx context.Context, groupID string) ([]*models.Expense, []*models.Settlement, error) {
	var expenses []*models.Expense
	var settlements []*models.Settlement

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByGroup(ctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListSettlementsByGroup(ctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load group history: %w", err)
	}
	return expenses, settlements, nil
}

// personalHistory loads personal expenses and settlements involving userID,
// or all of them when userID is empty.
func (s *Service) personalHistory(ctx context.Context, userID string) ([]*models.Expense, []*models.Settlement, error) {
	var expenses []*models.Expense
	var settlements []*models.Settlement

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListPersonalExpenses(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListPersonalSettlements(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load personal history: %w", err)
	}
	return expenses, settlements, nil
}

// usersByID resolves ids, failing with NotFound naming the first unknown one.
func (s *Service) usersByID(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return nil, errs.NotFound("user %s", id)
		}
	}
	return users, nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
