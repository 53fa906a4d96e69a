// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// Store defines the interface for ledger record storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger layer.
//
// Lookups of a single record return an error wrapping errs.ErrNotFound when
// the record does not exist.
type Store interface {
	UserStore

	// CreateGroup persists a group together with its roster.
	// The group.ID field will be populated by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its roster in join order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns every group userID belongs to, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup returns a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListPersonalExpenses returns personal expenses that userID paid or
	// participates in. An empty userID returns every personal expense.
	ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpensesInRange returns every expense involving userID dated in [from, to).
	ListExpensesInRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error)

	// CreateSettlement persists a settlement and its related expense links.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup returns a group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListPersonalSettlements returns personal settlements where userID is
	// either party. An empty userID returns every personal settlement.
	ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}

// UserStore is the subset of Store used for accounts.
type UserStore interface {
	// CreateUser persists a new user. Emails are unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs returns the users that exist among ids, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns every registered user ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// SearchUsers returns up to limit users whose name or email contains
	// query, ignoring ASCII case, ordered by name.
	SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error)
}
