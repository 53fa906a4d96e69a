package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

const settlementColumns = `id, group_id, paid_by, received_by, amount_cents, date, created_by, note`

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID,
		nullString(settlement.GroupID),
		settlement.PaidByUserID,
		settlement.ReceivedByUserID,
		int64(settlement.Amount),
		toMillis(settlement.Date),
		settlement.CreatedBy,
		nullString(settlement.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range settlement.RelatedExpenseIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
			settlement.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to link settlement expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSettlementsByGroup retrieves all settlements for a group.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.querySettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE group_id = ? ORDER BY date DESC`,
		groupID,
	)
}

// ListPersonalSettlements retrieves personal settlements where userID is
// either party, or every personal settlement when userID is empty.
func (s *SQLiteStore) ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	if userID == "" {
		return s.querySettlements(ctx,
			`SELECT `+settlementColumns+` FROM settlements WHERE group_id IS NULL ORDER BY date DESC`,
		)
	}
	return s.querySettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE group_id IS NULL AND (paid_by = ? OR received_by = ?)
		 ORDER BY date DESC`,
		userID, userID,
	)
}

func (s *SQLiteStore) querySettlements(ctx context.Context, query string, args ...any) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	var settlements []*models.Settlement
	byID := make(map[string]*models.Settlement)
	for rows.Next() {
		settlement := &models.Settlement{}
		var groupID, note sql.NullString
		var amount, date int64
		if err := rows.Scan(&settlement.ID, &groupID, &settlement.PaidByUserID, &settlement.ReceivedByUserID,
			&amount, &date, &settlement.CreatedBy, &note); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.GroupID = groupID.String
		settlement.Note = note.String
		settlement.Amount = money.Cents(amount)
		settlement.Date = fromMillis(date)

		settlements = append(settlements, settlement)
		byID[settlement.ID] = settlement
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	if len(settlements) == 0 {
		return settlements, nil
	}

	ids := make([]string, 0, len(settlements))
	for _, st := range settlements {
		ids = append(ids, st.ID)
	}
	for batch := range slices.Chunk(ids, inBatchSize) {
		if err := s.attachRelatedExpenses(ctx, byID, batch); err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

func (s *SQLiteStore) attachRelatedExpenses(ctx context.Context, byID map[string]*models.Settlement, ids []string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT settlement_id, expense_id FROM settlement_expenses
		 WHERE settlement_id IN (`+placeholders(len(ids))+`) ORDER BY expense_id`,
		stringArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get settlement expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var settlementID, expenseID string
		if err := rows.Scan(&settlementID, &expenseID); err != nil {
			return fmt.Errorf("failed to scan settlement expense: %w", err)
		}
		if st, ok := byID[settlementID]; ok {
			st.RelatedExpenseIDs = append(st.RelatedExpenseIDs, expenseID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlement expenses: %w", err)
	}
	return nil
}
