package models

import (
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// SplitType is the strategy used to divide an expense.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

// Valid reports whether t is a known strategy.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Split is one participant's share of an expense.
type Split struct {
	UserID string
	Amount money.Cents

	// Paid marks a share already settled as part of the expense itself
	// (the payer's own share). Paid shares never become debt.
	Paid bool
}

// Expense represents a payment by one user shared among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	Description string

	// Amount is the total paid. Sum of Splits equals Amount within money.Tolerance.
	Amount money.Cents

	Category string

	// Date is when the expense was incurred.
	Date time.Time

	// PaidByUserID is the user who paid the full amount.
	PaidByUserID string

	// GroupID is empty for personal expenses.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string

	SplitType SplitType
	Splits    []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsPersonal reports whether the expense belongs to no group.
func (e *Expense) IsPersonal() bool {
	return e.GroupID == ""
}

// SplitFor returns userID's split, if any.
func (e *Expense) SplitFor(userID string) (Split, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s, true
		}
	}
	return Split{}, false
}

// Involves reports whether userID paid or participates.
func (e *Expense) Involves(userID string) bool {
	if e.PaidByUserID == userID {
		return true
	}
	_, ok := e.SplitFor(userID)
	return ok
}

// SplitTotal sums all split amounts.
func (e *Expense) SplitTotal() money.Cents {
	var total money.Cents
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}
