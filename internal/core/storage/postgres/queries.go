package postgres

// SQL queries for owner-scoped expense storage.

const (
	// querySaveExpense inserts an expense.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicate ids.
	// RETURNING seq retrieves the auto-generated sequence number that fixes
	// natural ordering among same-date rows.
	querySaveExpense = `
		INSERT INTO expenses (
			id, owner_id, title, amount, date,
			category, payment_source, is_deleted, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
		RETURNING seq
	`

	// queryGetExpense fetches one row scoped to its owner.
	// A foreign owner sees sql.ErrNoRows, same as a missing row.
	queryGetExpense = `
		SELECT
			id, owner_id, title, amount, date,
			category, payment_source, is_deleted, created_at, updated_at, seq
		FROM expenses
		WHERE owner_id = $1 AND id = $2
	`

	// queryListExpenses fetches an owner's live rows, newest first.
	queryListExpenses = `
		SELECT
			id, owner_id, title, amount, date,
			category, payment_source, is_deleted, created_at, updated_at, seq
		FROM expenses
		WHERE owner_id = $1 AND is_deleted = FALSE
		ORDER BY date DESC, seq DESC
	`

	// queryRangeExpenses fetches the analytics snapshot: live rows inside an
	// inclusive date range, date ASC with insertion order on ties. The trend
	// view relies on this ordering for duplicate dates.
	queryRangeExpenses = `
		SELECT
			id, owner_id, title, amount, date,
			category, payment_source, is_deleted, created_at, updated_at, seq
		FROM expenses
		WHERE owner_id = $1
		  AND is_deleted = FALSE
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC, seq ASC
	`

	// queryUpdateExpense applies a partial update. NULL parameters keep the
	// existing column value via COALESCE, so one prepared statement covers
	// every field combination. Soft-deleted rows are not updatable.
	queryUpdateExpense = `
		UPDATE expenses
		SET title          = COALESCE($3, title),
		    amount         = COALESCE($4, amount),
		    date           = COALESCE($5, date),
		    category       = COALESCE($6, category),
		    payment_source = COALESCE($7, payment_source),
		    updated_at     = $8
		WHERE owner_id = $1 AND id = $2 AND is_deleted = FALSE
		RETURNING
			id, owner_id, title, amount, date,
			category, payment_source, is_deleted, created_at, updated_at, seq
	`

	// querySoftDeleteExpense flags a row deleted without removing it.
	// Already-deleted rows are not matched, so the operation is not idempotent
	// from the caller's view: a second delete reports not found.
	querySoftDeleteExpense = `
		UPDATE expenses
		SET is_deleted = TRUE, updated_at = $3
		WHERE owner_id = $1 AND id = $2 AND is_deleted = FALSE
	`

	// queryPurgeSoftDeleted permanently removes soft-deleted rows whose last
	// update is older than the cutoff. Used by the retention sweeper.
	queryPurgeSoftDeleted = `
		DELETE FROM expenses
		WHERE is_deleted = TRUE AND updated_at < $1
	`
)
