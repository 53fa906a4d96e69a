package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

var (
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be positive", errs.ErrValidation)
	ErrEmptyParticipants = fmt.Errorf("%w: must have at least one participant", errs.ErrValidation)
	ErrUnknownSplitType  = fmt.Errorf("%w: unknown split type", errs.ErrValidation)
)

// percentTolerance is how far the sum of percentages may drift from 100.
var percentTolerance = decimal.RequireFromString("0.01")

var oneHundred = decimal.NewFromInt(100)

// Share is one participant's input to a split. Percentage is read by the
// percentage strategy and Amount by the exact strategy; equal ignores both.
type Share struct {
	UserID     string
	Percentage decimal.Decimal
	Amount     money.Cents
}

// SplitResult is the output of CalculateSplit.
type SplitResult struct {
	Splits []models.Split

	// Valid is false when percentage or exact inputs do not add up.
	// The splits are still returned; callers decide whether to block.
	Valid bool

	// Discrepancy is sum(percentages)-100 for the percentage strategy and
	// sum(amounts)-total (in currency units) for the exact strategy.
	Discrepancy decimal.Decimal

	// Warning is a human-readable description of the discrepancy.
	Warning string
}

// CalculateSplit divides total among shares using the given strategy.
// The split whose UserID equals payerID is marked paid.
//
// Equal splits distribute leftover cents one at a time to the first
// participants in input order, so the shares always sum to total exactly.
// Valid percentage splits are rounded per share and then reconciled the same
// way.
func CalculateSplit(total money.Cents, splitType models.SplitType, shares []Share, payerID string) (*SplitResult, error) {
	if total <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(shares) == 0 {
		return nil, ErrEmptyParticipants
	}

	var result *SplitResult
	switch splitType {
	case models.SplitEqual:
		result = splitEqual(total, shares)
	case models.SplitPercentage:
		result = splitPercentage(total, shares)
	case models.SplitExact:
		result = splitExact(total, shares)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}

	for i := range result.Splits {
		result.Splits[i].Paid = result.Splits[i].UserID == payerID
	}
	return result, nil
}

func splitEqual(total money.Cents, shares []Share) *SplitResult {
	n := money.Cents(len(shares))
	base := total / n
	remainder := total % n

	splits := make([]models.Split, len(shares))
	for i, s := range shares {
		amount := base
		if money.Cents(i) < remainder {
			amount++
		}
		splits[i] = models.Split{UserID: s.UserID, Amount: amount}
	}
	return &SplitResult{Splits: splits, Valid: true, Discrepancy: decimal.Zero}
}

func splitPercentage(total money.Cents, shares []Share) *SplitResult {
	splits := make([]models.Split, len(shares))
	sum := decimal.Zero
	for i, s := range shares {
		sum = sum.Add(s.Percentage)
		splits[i] = models.Split{UserID: s.UserID, Amount: total.Percent(s.Percentage)}
	}

	diff := sum.Sub(oneHundred)
	result := &SplitResult{Splits: splits, Discrepancy: diff}
	result.Valid = diff.Abs().LessThanOrEqual(percentTolerance)
	if !result.Valid {
		result.Warning = fmt.Sprintf("percentages add up to %s%%, expected 100%%", sum.StringFixed(2))
		return result
	}
	reconcile(total, splits)
	return result
}

// reconcile moves the rounding leftover of independently rounded shares one
// cent at a time until the splits sum to total. Extra cents go to the first
// participants and missing cents come off the last, matching splitEqual.
func reconcile(total money.Cents, splits []models.Split) {
	var sum money.Cents
	for _, s := range splits {
		sum += s.Amount
	}
	n := len(splits)
	for i := 0; sum < total; i = (i + 1) % n {
		splits[i].Amount++
		sum++
	}
	for i := n - 1; sum > total; i = (i - 1 + n) % n {
		if splits[i].Amount > 0 {
			splits[i].Amount--
			sum--
		}
	}
}

func splitExact(total money.Cents, shares []Share) *SplitResult {
	splits := make([]models.Split, len(shares))
	var sum money.Cents
	for i, s := range shares {
		sum += s.Amount
		splits[i] = models.Split{UserID: s.UserID, Amount: s.Amount}
	}

	result := &SplitResult{Splits: splits, Discrepancy: (sum - total).Decimal()}
	result.Valid = sum.Within(total)
	if !result.Valid {
		result.Warning = fmt.Sprintf("split amounts add up to %s, expected %s", sum, total)
	}
	return result
}
