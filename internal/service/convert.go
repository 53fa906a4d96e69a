package service

import (
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIUser(u *models.User) api.User {
	if u == nil {
		return api.User{}
	}
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: time.Unix(u.CreatedAt, 0).UTC(),
	}
}

func toAPISplits(splits []models.Split) []api.Split {
	out := make([]api.Split, len(splits))
	for i, s := range splits {
		out[i] = api.Split{UserID: s.UserID, Amount: s.Amount.Decimal(), Paid: s.Paid}
	}
	return out
}

func toAPIExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount.Decimal(),
		Category:     e.Category,
		Date:         e.Date,
		PaidByUserID: e.PaidByUserID,
		GroupID:      e.GroupID,
		CreatedBy:    e.CreatedBy,
		SplitType:    string(e.SplitType),
		Splits:       toAPISplits(e.Splits),
		CreatedAt:    time.Unix(e.CreatedAt, 0).UTC(),
	}
}

func toAPISettlement(s *models.Settlement) api.Settlement {
	return api.Settlement{
		ID:                s.ID,
		GroupID:           s.GroupID,
		PaidByUserID:      s.PaidByUserID,
		ReceivedByUserID:  s.ReceivedByUserID,
		Amount:            s.Amount.Decimal(),
		Date:              s.Date,
		CreatedBy:         s.CreatedBy,
		Note:              s.Note,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
	}
}

// toAPIGroup resolves members through users. Members missing from users
// keep only their ID.
func toAPIGroup(g *models.Group, users map[string]*models.User) api.Group {
	members := make([]api.GroupMember, len(g.Members))
	for i, m := range g.Members {
		user := toAPIUser(users[m.UserID])
		user.ID = m.UserID
		members[i] = api.GroupMember{
			User:     user,
			Role:     string(m.Role),
			JoinedAt: time.Unix(m.JoinedAt, 0).UTC(),
		}
	}
	return api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   time.Unix(g.CreatedAt, 0).UTC(),
	}
}

func toAPIEdges(edges []calculator.DebtEdge) []api.DebtEdge {
	out := make([]api.DebtEdge, len(edges))
	for i, e := range edges {
		out[i] = api.DebtEdge{From: e.From, To: e.To, Amount: e.Amount.Decimal()}
	}
	return out
}

func toAPIPairBalance(userID string, pb calculator.PairBalance) api.PairBalance {
	return api.PairBalance{
		UserID:     userID,
		YouAreOwed: pb.YouAreOwed.Decimal(),
		YouOwe:     pb.YouOwe.Decimal(),
		NetBalance: pb.NetBalance.Decimal(),
	}
}

func toAPICounterparties(list []calculator.CounterpartyBalance, users map[string]*models.User) []api.CounterpartyBalance {
	out := make([]api.CounterpartyBalance, 0, len(list))
	for _, c := range list {
		var name string
		if u, ok := users[c.UserID]; ok {
			name = u.Name
		}
		out = append(out, api.CounterpartyBalance{UserID: c.UserID, Name: name, Amount: c.Amount.Decimal()})
	}
	return out
}

func fromAPIShares(shares []api.Share) []calculator.Share {
	out := make([]calculator.Share, len(shares))
	for i, s := range shares {
		out[i] = calculator.Share{
			UserID:     s.UserID,
			Percentage: s.Percentage,
			Amount:     money.FromDecimal(s.Amount),
		}
	}
	return out
}
