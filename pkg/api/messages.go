package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthService

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// ExpenseService

type CreateExpenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Date         time.Time       `json:"date,omitzero"`
	PaidByUserID string          `json:"paidByUserId"`
	GroupID      string          `json:"groupId,omitempty"`
	SplitType    string          `json:"splitType"`
	Shares       []Share         `json:"shares"`
}

type CreateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type CalculateSplitRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	SplitType    string          `json:"splitType"`
	PaidByUserID string          `json:"paidByUserId"`
	Shares       []Share         `json:"shares"`
}

type CalculateSplitResponse struct {
	Splits      []Split         `json:"splits"`
	Valid       bool            `json:"valid"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
	Warning     string          `json:"warning,omitempty"`
}

// SettlementService

type CreateSettlementRequest struct {
	GroupID           string          `json:"groupId,omitempty"`
	PaidByUserID      string          `json:"paidByUserId"`
	ReceivedByUserID  string          `json:"receivedByUserId"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date,omitzero"`
	Note              string          `json:"note,omitempty"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type ListGroupSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

// GroupService

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []GroupSummary `json:"groups"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}

type GetGroupSettlementBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupSettlementBalancesResponse struct {
	Balances []PairBalance `json:"balances"`
}

// BalanceService

type GetPairwiseBalanceRequest struct {
	UserID string `json:"userId"`
}

type GetPairwiseBalanceResponse struct {
	Balance PairBalance `json:"balance"`
}

type GetPersonalBalanceRequest struct{}

type GetPersonalBalanceResponse struct {
	YouOwe       decimal.Decimal       `json:"youOwe"`
	YouAreOwed   decimal.Decimal       `json:"youAreOwed"`
	TotalBalance decimal.Decimal       `json:"totalBalance"`
	OwedToYou    []CounterpartyBalance `json:"owedToYou"`
	YouOweTo     []CounterpartyBalance `json:"youOweTo"`
}

type GetContactsRequest struct{}

type GetContactsResponse struct {
	Contacts []User `json:"contacts"`
}

type GetMonthlySpendRequest struct {
	Year int `json:"year"`
}

type GetMonthlySpendResponse struct {
	Months []MonthlySpend `json:"months"`
}

type GetTotalSpendRequest struct {
	Year int `json:"year"`
}

type GetTotalSpendResponse struct {
	Total decimal.Decimal `json:"total"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type SearchUsersResponse struct {
	Users []User `json:"users"`
}
