package v1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the atomic record of the system: one spend by one owner.
// Category and PaymentSource are free-text labels — the domain does not
// constrain them to an enum, so grouping downstream is string-keyed.
type Expense struct {
	// ID is the unique immutable identifier, assigned server-side on create.
	ID string `json:"id"`

	// OwnerID identifies the user that owns this expense.
	// Every read path is scoped to a single owner.
	OwnerID string `json:"ownerId"`

	// Title is a free-text label for the expense.
	Title string `json:"title"`

	// Amount is the monetary value. Non-negative; currency is implicit.
	// decimal.Decimal keeps arithmetic exact through aggregation.
	Amount decimal.Decimal `json:"amount"`

	// Date is when the expense occurred. Time-of-day is stored but ignored
	// by all calendar bucketing.
	Date time.Time `json:"date"`

	// Category is a free-text label (e.g. "Food", "Rent").
	Category string `json:"category"`

	// PaymentSource is a free-text label (e.g. "Credit Card").
	// May be empty; analytics substitutes "Unknown".
	PaymentSource string `json:"paymentSource"`

	// IsDeleted marks the record soft-deleted. Soft-deleted rows are
	// excluded from every analytics view.
	IsDeleted bool `json:"isDeleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Seq is a monotonic sequence number assigned on insert. It fixes the
	// store's natural order for same-date records. Set by the database
	// (BIGSERIAL), not exposed in the public API.
	Seq int64 `json:"-"`
}

// Validate ensures the expense has all required attributes.
func (e *Expense) Validate() error {
	if e.OwnerID == "" {
		return fmt.Errorf("ownerId is required")
	}

	if e.Title == "" {
		return fmt.Errorf("title is required")
	}

	if e.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}

	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	if e.Category == "" {
		return fmt.Errorf("category is required")
	}

	return nil
}
