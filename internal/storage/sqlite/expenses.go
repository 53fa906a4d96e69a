package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

const expenseColumns = `id, description, amount_cents, category, date, paid_by, group_id, created_by, split_type, created_at`

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.Description,
		int64(expense.Amount),
		nullString(expense.Category),
		toMillis(expense.Date),
		expense.PaidByUserID,
		nullString(expense.GroupID),
		expense.CreatedBy,
		string(expense.SplitType),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (expense_id, user_id, amount_cents, paid, position) VALUES (?, ?, ?, ?, ?)",
			expense.ID, split.UserID, int64(split.Amount), split.Paid, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("expense %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.attachSplits(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense; its splits go with it.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return errs.NotFound("expense %s", expenseID)
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses for a group.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY date DESC, created_at DESC`,
		groupID,
	)
}

// ListPersonalExpenses retrieves personal expenses involving userID,
// or every personal expense when userID is empty.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	if userID == "" {
		return s.queryExpenses(ctx,
			`SELECT `+expenseColumns+` FROM expenses WHERE group_id IS NULL ORDER BY date DESC, created_at DESC`,
		)
	}
	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE group_id IS NULL
		   AND (paid_by = ? OR id IN (SELECT expense_id FROM splits WHERE user_id = ?))
		 ORDER BY date DESC, created_at DESC`,
		userID, userID,
	)
}

// ListExpensesInRange retrieves expenses involving userID dated in [from, to).
func (s *SQLiteStore) ListExpensesInRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE date >= ? AND date < ?
		   AND (paid_by = ? OR id IN (SELECT expense_id FROM splits WHERE user_id = ?))
		 ORDER BY date`,
		toMillis(from), toMillis(to), userID, userID,
	)
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.attachSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachSplits loads the splits of every expense, one query per batch of
// inBatchSize expenses.
func (s *SQLiteStore) attachSplits(ctx context.Context, expenses []*models.Expense) error {
	byID := make(map[string]*models.Expense, len(expenses))
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		ids[i] = e.ID
	}

	for batch := range slices.Chunk(ids, inBatchSize) {
		if err := s.attachSplitBatch(ctx, byID, batch); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) attachSplitBatch(ctx context.Context, byID map[string]*models.Expense, ids []string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, user_id, amount_cents, paid FROM splits
		 WHERE expense_id IN (`+placeholders(len(ids))+`)
		 ORDER BY expense_id, position`,
		stringArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var split models.Split
		var amount int64
		if err := rows.Scan(&expenseID, &split.UserID, &amount, &split.Paid); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.Cents(amount)
		if e, ok := byID[expenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount, date int64
	var category, groupID sql.NullString
	var splitType string
	if err := row.Scan(
		&expense.ID,
		&expense.Description,
		&amount,
		&category,
		&date,
		&expense.PaidByUserID,
		&groupID,
		&expense.CreatedBy,
		&splitType,
		&expense.CreatedAt,
	); err != nil {
		return nil, err
	}
	expense.Amount = money.Cents(amount)
	expense.Category = category.String
	expense.Date = fromMillis(date)
	expense.GroupID = groupID.String
	expense.SplitType = models.SplitType(splitType)
	return expense, nil
}
