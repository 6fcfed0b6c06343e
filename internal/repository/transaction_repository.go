package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/finance-ledger/internal/model"
)

// TransactionRepo is the MySQL implementation of TransactionStore.
// All timestamp and date fields are stored in UTC.
type TransactionRepo struct{ DB *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{DB: db} }

// ListByUser returns the user's transactions ordered by date then id,
// so callers always see a deterministic order.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,type,amount,description,date,user_id FROM transactions WHERE user_id=? ORDER BY date, id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a transaction and populates its generated ID.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO transactions (type, amount, description, date, user_id) VALUES (?,?,?,?,?)",
		t.Type, t.Amount, t.Description, t.Date, t.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites the mutable columns of a transaction. The ownership
// check is part of the UPDATE's WHERE clause: a row owned by someone
// else matches zero rows, with no window between check and write.
// Existence is judged by the readback SELECT rather than RowsAffected,
// so a resubmit of identical values is still a successful update.
func (r *TransactionRepo) Update(ctx context.Context, t *model.Transaction) error {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE transactions SET type=?, amount=?, description=?, date=? WHERE id=? AND user_id=?",
		t.Type, t.Amount, t.Description, t.Date, t.ID, t.UserID); err != nil {
		return err
	}
	// Read the row back so the caller returns what is actually stored.
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,type,amount,description,date,user_id FROM transactions WHERE id=? AND user_id=? LIMIT 1",
		t.ID, t.UserID)
	stored, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	*t = stored
	return nil
}

// Delete removes the transaction if owned by userID.
func (r *TransactionRepo) Delete(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM transactions WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func scanTransaction(row interface{ Scan(dest ...any) error }) (model.Transaction, error) {
	var (
		t    model.Transaction
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Type, &t.Amount, &desc, &t.Date, &t.UserID); err != nil {
		return model.Transaction{}, err
	}
	t.Description = desc.String
	return t, nil
}
