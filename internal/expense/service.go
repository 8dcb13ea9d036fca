package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	core "github.com/spendlens/spendlens/internal/core/analytics"
	"github.com/spendlens/spendlens/internal/core/storage"
)

// ErrInvalidExpense marks request validation failures that should return
// HTTP 400.
var ErrInvalidExpense = errors.New("invalid expense")

// Service implements expense CRUD on top of the store. Deletes are soft:
// the row is flagged, never removed, so analytics history stays intact
// until the retention sweeper purges it.
type Service struct {
	store storage.ExpenseStore
	nowFn func() time.Time
	idFn  func() string
}

func NewService(store storage.ExpenseStore) *Service {
	if store == nil {
		panic("expense: store must not be nil")
	}
	return &Service{
		store: store,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		idFn: uuid.NewString,
	}
}

// CreateInput carries the caller-supplied fields for a new expense.
type CreateInput struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	PaymentSource string          `json:"paymentSource"`
}

// UpdateInput carries the caller-supplied fields for a partial update.
// Nil means "leave unchanged".
type UpdateInput struct {
	Title         *string          `json:"title"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *string          `json:"date"`
	Category      *string          `json:"category"`
	PaymentSource *string          `json:"paymentSource"`
}

// Create validates the input and persists a new expense for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*v1.Expense, error) {
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	now := s.nowFn()
	exp := &v1.Expense{
		ID:            s.idFn(),
		OwnerID:       ownerID,
		Title:         in.Title,
		Amount:        in.Amount,
		Date:          date,
		Category:      in.Category,
		PaymentSource: in.PaymentSource,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	if err := s.store.SaveExpense(ctx, exp); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}
	return exp, nil
}

// List returns the owner's live expenses, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]*v1.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Update applies a partial update to the owner's expense.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*v1.Expense, error) {
	update := storage.ExpenseUpdate{
		Title:         in.Title,
		Amount:        in.Amount,
		Category:      in.Category,
		PaymentSource: in.PaymentSource,
	}

	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidExpense)
	}
	if in.Title != nil && *in.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidExpense)
	}
	if in.Category != nil && *in.Category == "" {
		return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidExpense)
	}
	if in.Date != nil {
		date, err := core.ParseDate(*in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}
		update.Date = &date
	}

	expense, err := s.store.UpdateExpense(ctx, ownerID, id, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// Delete soft-deletes the owner's expense.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	err := s.store.SoftDeleteExpense(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
