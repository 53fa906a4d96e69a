package models

import (
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// Settlement represents a direct payment that reduces an existing debt.
// It is a ledger mutation on its own and is never split further.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to. Empty for personal settlements.
	GroupID string

	// PaidByUserID is the user who paid (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received payment (creditor being paid).
	ReceivedByUserID string

	// Amount is the payment amount. Always positive.
	Amount money.Cents

	// Date is when the payment happened.
	Date time.Time

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string

	// RelatedExpenseIDs optionally names the expenses this payment covers.
	RelatedExpenseIDs []string
}

// Involves reports whether userID is either party.
func (s *Settlement) Involves(userID string) bool {
	return s.PaidByUserID == userID || s.ReceivedByUserID == userID
}
