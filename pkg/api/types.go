package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as decimal strings ("12.34") so clients never see binary
// floating point.

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Split struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid,omitempty"`
}

type Expense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Date         time.Time       `json:"date"`
	PaidByUserID string          `json:"paidByUserId"`
	GroupID      string          `json:"groupId,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	SplitType    string          `json:"splitType"`
	Splits       []Split         `json:"splits"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Settlement struct {
	ID                string          `json:"id"`
	GroupID           string          `json:"groupId,omitempty"`
	PaidByUserID      string          `json:"paidByUserId"`
	ReceivedByUserID  string          `json:"receivedByUserId"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date"`
	CreatedBy         string          `json:"createdBy"`
	Note              string          `json:"note,omitempty"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds,omitempty"`
}

type GroupMember struct {
	User     User      `json:"user"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	Members     []GroupMember `json:"members"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Share is one participant's input to a split. Percentage is read for
// percentage splits and Amount for exact splits.
type Share struct {
	UserID     string          `json:"userId"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

type DebtEdge struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type MemberBalance struct {
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Owes         []DebtEdge      `json:"owes"`
	OwedBy       []DebtEdge      `json:"owedBy"`
}

type PairBalance struct {
	UserID     string          `json:"userId"`
	YouAreOwed decimal.Decimal `json:"youAreOwed"`
	YouOwe     decimal.Decimal `json:"youOwe"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

type CounterpartyBalance struct {
	UserID string          `json:"userId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type GroupSummary struct {
	Group       Group           `json:"group"`
	MemberCount int             `json:"memberCount"`
	Balance     decimal.Decimal `json:"balance"`
}

type MonthlySpend struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}
