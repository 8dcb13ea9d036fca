package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an expense does not exist or belongs to
// another owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("expense not found")

// ErrDuplicate is returned when an expense with the same id already exists.
var ErrDuplicate = errors.New("expense already exists")

// ExpenseStore defines the interface for storing and retrieving expenses.
// All reads are owner-scoped.
type ExpenseStore interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense *v1.Expense) error

	// GetExpense fetches one expense by id for the given owner.
	// Returns ErrNotFound for missing or foreign rows.
	GetExpense(ctx context.Context, ownerID, id string) (*v1.Expense, error)

	// ListExpenses fetches all of an owner's expenses that are not
	// soft-deleted, newest first.
	ListExpenses(ctx context.Context, ownerID string) ([]*v1.Expense, error)

	// QueryRange fetches the analytics snapshot: the owner's non-deleted
	// expenses with date in the inclusive [start, end] interval, ordered by
	// date ASC with insertion order on ties. Every analytics view of one
	// request is derived from a single QueryRange result.
	QueryRange(ctx context.Context, ownerID string, start, end time.Time) ([]*v1.Expense, error)

	// UpdateExpense applies a partial update to an owner's expense.
	// Nil fields are left unchanged. Returns ErrNotFound for missing rows.
	UpdateExpense(ctx context.Context, ownerID, id string, update ExpenseUpdate) (*v1.Expense, error)

	// SoftDeleteExpense flags an owner's expense as deleted without removing
	// the row. Returns ErrNotFound for missing rows.
	SoftDeleteExpense(ctx context.Context, ownerID, id string) error
}

// ExpenseUpdate carries the mutable expense fields for a partial update.
// Nil means "leave unchanged".
type ExpenseUpdate struct {
	Title         *string
	Amount        *decimal.Decimal
	Date          *time.Time
	Category      *string
	PaymentSource *string
}
