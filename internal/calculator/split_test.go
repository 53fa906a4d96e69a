package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Cents
		splitType    models.SplitType
		shares       []Share
		payer        string
		wantErr      error
		validateFunc func(t *testing.T, res *SplitResult)
	}{
		{
			name:      "equal split distributes remainder cents in input order",
			total:     1000,
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "Alice"}, {UserID: "Bob"}, {UserID: "Charlie"}},
			payer:     "Alice",
			validateFunc: func(t *testing.T, res *SplitResult) {
				want := []money.Cents{334, 333, 333}
				for i, s := range res.Splits {
					if s.Amount != want[i] {
						t.Errorf("split %d (%s) = %v, want %v", i, s.UserID, s.Amount, want[i])
					}
				}
				if !res.Valid {
					t.Error("equal split should always be valid")
				}
			},
		},
		{
			name:      "equal split sums exactly",
			total:     10001,
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}, {UserID: "d"}, {UserID: "e"}, {UserID: "f"}, {UserID: "g"}},
			validateFunc: func(t *testing.T, res *SplitResult) {
				var sum money.Cents
				for _, s := range res.Splits {
					sum += s.Amount
				}
				if sum != 10001 {
					t.Errorf("sum = %v, want 100.01", sum)
				}
			},
		},
		{
			name:      "payer split is marked paid",
			total:     3000,
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "Alice"}, {UserID: "Bob"}, {UserID: "Charlie"}},
			payer:     "Bob",
			validateFunc: func(t *testing.T, res *SplitResult) {
				for _, s := range res.Splits {
					if s.Paid != (s.UserID == "Bob") {
						t.Errorf("%s paid = %v", s.UserID, s.Paid)
					}
				}
			},
		},
		{
			name:      "percentage split",
			total:     20000,
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "Alice", Percentage: pct("50")},
				{UserID: "Bob", Percentage: pct("30")},
				{UserID: "Charlie", Percentage: pct("20")},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				want := map[string]money.Cents{"Alice": 10000, "Bob": 6000, "Charlie": 4000}
				for _, s := range res.Splits {
					if s.Amount != want[s.UserID] {
						t.Errorf("%s = %v, want %v", s.UserID, s.Amount, want[s.UserID])
					}
				}
				if !res.Valid {
					t.Errorf("expected valid, warning = %q", res.Warning)
				}
			},
		},
		{
			name:      "percentage rounding leftover is reconciled",
			total:     1002,
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "Alice", Percentage: pct("25")},
				{UserID: "Bob", Percentage: pct("25")},
				{UserID: "Charlie", Percentage: pct("25")},
				{UserID: "Dave", Percentage: pct("25")},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				want := []money.Cents{251, 251, 250, 250}
				for i, s := range res.Splits {
					if s.Amount != want[i] {
						t.Errorf("%s = %v, want %v", s.UserID, s.Amount, want[i])
					}
				}
			},
		},
		{
			name:      "percentage rounding shortfall goes to the first participants",
			total:     100,
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "Alice", Percentage: pct("33.33")},
				{UserID: "Bob", Percentage: pct("33.33")},
				{UserID: "Charlie", Percentage: pct("33.34")},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				want := []money.Cents{34, 33, 33}
				for i, s := range res.Splits {
					if s.Amount != want[i] {
						t.Errorf("%s = %v, want %v", s.UserID, s.Amount, want[i])
					}
				}
			},
		},
		{
			name:      "percentages not adding to 100 warn but still split",
			total:     10000,
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "Alice", Percentage: pct("50")},
				{UserID: "Bob", Percentage: pct("40")},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				if res.Valid {
					t.Error("expected invalid result")
				}
				if res.Warning == "" {
					t.Error("expected a warning")
				}
				if !res.Discrepancy.Equal(pct("-10")) {
					t.Errorf("discrepancy = %s, want -10", res.Discrepancy)
				}
				if len(res.Splits) != 2 {
					t.Errorf("expected 2 splits, got %d", len(res.Splits))
				}
			},
		},
		{
			name:      "exact split within tolerance",
			total:     1000,
			splitType: models.SplitExact,
			shares: []Share{
				{UserID: "Alice", Amount: 600},
				{UserID: "Bob", Amount: 399},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				if !res.Valid {
					t.Errorf("one cent off should be valid, warning = %q", res.Warning)
				}
			},
		},
		{
			name:      "exact split off by more than a cent warns",
			total:     1000,
			splitType: models.SplitExact,
			shares: []Share{
				{UserID: "Alice", Amount: 600},
				{UserID: "Bob", Amount: 300},
			},
			validateFunc: func(t *testing.T, res *SplitResult) {
				if res.Valid {
					t.Error("expected invalid result")
				}
				if !res.Discrepancy.Equal(pct("-1")) {
					t.Errorf("discrepancy = %s, want -1", res.Discrepancy)
				}
			},
		},
		{
			name:      "zero amount should error",
			total:     0,
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "Alice"}},
			wantErr:   ErrInvalidAmount,
		},
		{
			name:      "no participants should error",
			total:     1000,
			splitType: models.SplitEqual,
			shares:    []Share{},
			wantErr:   ErrEmptyParticipants,
		},
		{
			name:      "unknown split type should error",
			total:     1000,
			splitType: "shares",
			shares:    []Share{{UserID: "Alice"}},
			wantErr:   ErrUnknownSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalculateSplit(tt.total, tt.splitType, tt.shares, tt.payer)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CalculateSplit() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, errs.ErrValidation) {
					t.Errorf("error %v should be a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateSplit() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, res)
			}
		})
	}
}
