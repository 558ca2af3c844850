package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kidzegeye/akoma-backend/internal/domain"
)

type transactionsRepo struct {
	q querier
}

// Listing and single fetches join the type lookup table so callers get the
// label alongside the code.
const transactionSelect = `
	SELECT t.id, t.user_id, t.start_date, t.end_date, t.due_date,
		t.transaction_type, tt.label, t.frequency, t.name, t.amount, t.received
	FROM transactions t
	JOIN transaction_types tt ON tt.id = t.transaction_type`

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) (int64, error) {
	// The column list is assembled dynamically so an absent due date is
	// genuinely omitted from the statement rather than bound as NULL.
	cols := []string{"user_id", "start_date", "end_date", "transaction_type",
		"frequency", "name", "amount", "received"}
	args := []any{t.UserID, t.StartDate, t.EndDate, t.Type,
		t.Frequency, t.Name, t.Amount, boolToInt(t.Received)}

	if t.DueDate != nil {
		cols = append(cols, "due_date")
		args = append(args, *t.DueDate)
	}

	placeholders := strings.Repeat("?, ", len(cols)-1) + "?"
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO transactions (`+strings.Join(cols, ", ")+`) VALUES (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *transactionsRepo) GetTransaction(ctx context.Context, userID, id int64) (domain.Transaction, error) {
	row := r.q.QueryRowContext(ctx,
		transactionSelect+` WHERE t.user_id = ? AND t.id = ?`,
		userID, id,
	)
	return scanTransaction(row)
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, userID int64, f domain.TransactionFilter) ([]domain.Transaction, error) {
	// Filters append in a fixed order: start, end, type. Absent filters
	// contribute nothing to the statement.
	query := transactionSelect + ` WHERE t.user_id = ?`
	args := []any{userID}

	if f.StartDate != nil {
		query += ` AND t.start_date >= ?`
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		query += ` AND t.end_date <= ?`
		args = append(args, *f.EndDate)
	}
	if f.Type != nil {
		query += ` AND t.transaction_type = ?`
		args = append(args, *f.Type)
	}
	query += ` ORDER BY t.id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (r *transactionsRepo) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	var dueDate sql.NullInt64
	if t.DueDate != nil {
		dueDate = sql.NullInt64{Int64: *t.DueDate, Valid: true}
	}

	// Ownership is part of the predicate: editing someone else's row is
	// indistinguishable from editing a missing one.
	res, err := r.q.ExecContext(ctx, `
		UPDATE transactions SET
			start_date = ?, end_date = ?, due_date = ?, transaction_type = ?,
			frequency = ?, name = ?, amount = ?, received = ?
		WHERE id = ? AND user_id = ?`,
		t.StartDate, t.EndDate, dueDate, t.Type,
		t.Frequency, t.Name, t.Amount, boolToInt(t.Received),
		t.ID, t.UserID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanTransaction(s scanner) (domain.Transaction, error) {
	var t domain.Transaction
	var dueDate sql.NullInt64
	var received int64
	err := s.Scan(
		&t.ID, &t.UserID, &t.StartDate, &t.EndDate, &dueDate,
		&t.Type, &t.TypeLabel, &t.Frequency, &t.Name, &t.Amount, &received,
	)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Int64
	}
	t.Received = received != 0
	return t, nil
}
