package postgres

import (
	"fmt"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	"github.com/shopspring/decimal"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanExpenseRow scans a database row into an Expense struct.
// The amount column (NUMERIC) is scanned as a string and parsed into a
// decimal to keep arithmetic exact. Compatible with both sql.Row (single)
// and sql.Rows (multiple).
func scanExpenseRow(row scanner) (*v1.Expense, error) {
	var exp v1.Expense
	var amount string

	err := row.Scan(
		&exp.ID,
		&exp.OwnerID,
		&exp.Title,
		&amount,
		&exp.Date,
		&exp.Category,
		&exp.PaymentSource,
		&exp.IsDeleted,
		&exp.CreatedAt,
		&exp.UpdatedAt,
		&exp.Seq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense row: %w", err)
	}

	exp.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}

	return &exp, nil
}
