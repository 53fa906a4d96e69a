package ledger

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// groupLoadLimit bounds concurrent history loads when listing groups.
const groupLoadLimit = 4

// GroupDetails is a group with its members resolved to users.
type GroupDetails struct {
	Group *models.Group
	Users map[string]*models.User
}

// GroupSummary is one entry of a user's group list.
type GroupSummary struct {
	Group       *models.Group
	MemberCount int
	// Balance is the caller's net position in the group: positive when owed.
	Balance money.Cents
}

// CreateGroup creates a group with caller as its admin. memberIDs may repeat
// or include the caller; each user ends up on the roster once.
func (s *Service) CreateGroup(ctx context.Context, caller, name, description string, memberIDs []string) (*GroupDetails, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("group name is required")
	}

	ids := dedupe(append([]string{caller}, memberIDs...))
	users, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   caller,
		Members:     make([]models.Membership, len(ids)),
	}
	for i, id := range ids {
		role := models.RoleMember
		if id == caller {
			role = models.RoleAdmin
		}
		group.Members[i] = models.Membership{UserID: id, Role: role}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return &GroupDetails{Group: group, Users: users}, nil
}

// GetGroup returns a group the caller belongs to.
func (s *Service) GetGroup(ctx context.Context, caller, groupID string) (*GroupDetails, error) {
	group, err := s.memberGroup(ctx, caller, groupID)
	if err != nil {
		return nil, err
	}
	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, err
	}
	return &GroupDetails{Group: group, Users: users}, nil
}

// ListGroups returns the caller's groups with the caller's balance in each.
func (s *Service) ListGroups(ctx context.Context, caller string) ([]GroupSummary, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroupsByMember(ctx, caller)
	if err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(groupLoadLimit)
	for i, group := range groups {
		g.Go(func() error {
			expenses, settlements, err := s.groupHistory(gctx, group.ID)
			if err != nil {
				return err
			}
			ledger := calculator.NetGroup(group.MemberIDs(), expenses, settlements)
			summaries[i] = GroupSummary{
				Group:       group,
				MemberCount: len(group.Members),
				Balance:     ledger.Total(caller),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetContacts returns everyone the caller shares a personal expense or a
// group with, ordered by name.
func (s *Service) GetContacts(ctx context.Context, caller string) ([]*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var expenses []*models.Expense
	var groups []*models.Group
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListPersonalExpenses(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.store.ListGroupsByMember(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	var ids []string
	for _, e := range expenses {
		ids = append(ids, e.PaidByUserID)
		for _, split := range e.Splits {
			ids = append(ids, split.UserID)
		}
	}
	for _, group := range groups {
		ids = append(ids, group.MemberIDs()...)
	}
	ids = slices.DeleteFunc(dedupe(ids), func(id string) bool { return id == caller })

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	contacts := make([]*models.User, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, u)
	}
	slices.SortFunc(contacts, func(a, b *models.User) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return contacts, nil
}

// searchLimit caps the users returned by one search.
const searchLimit = 20

// SearchUsers finds users whose name or email contains query, so the caller
// can add them to groups or expenses. The caller is never in the result.
func (s *Service) SearchUsers(ctx context.Context, caller, query string) ([]*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	// One extra row leaves room for the caller before trimming.
	users, err := s.store.SearchUsers(ctx, query, searchLimit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	users = slices.DeleteFunc(users, func(u *models.User) bool { return u.ID == caller })
	if len(users) > searchLimit {
		users = users[:searchLimit]
	}
	return users, nil
}
