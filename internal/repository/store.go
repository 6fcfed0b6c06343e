package repository

import (
	"context"

	"github.com/iliyamo/finance-ledger/internal/model"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	// Create inserts a user with an already-hashed password and returns
	// the generated id. Returns ErrUsernameExists on a duplicate name.
	Create(ctx context.Context, username, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	// UpdatePassword replaces the stored hash for the given user.
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	// Delete removes the user row; dependent transactions cascade.
	Delete(ctx context.Context, id uint64) error
}

// TransactionStore defines persistence operations for bookkeeping
// entries. Every operation that touches an existing row carries the
// owner's id and expresses the ownership check inside the single
// statement, so a concurrent or foreign caller can never observe or
// mutate another user's rows.
type TransactionStore interface {
	// ListByUser returns the user's transactions ordered by date, then id.
	ListByUser(ctx context.Context, userID uint64) ([]model.Transaction, error)
	// Create persists a new transaction and populates its generated ID.
	Create(ctx context.Context, t *model.Transaction) error
	// Update rewrites type/amount/description/date of the transaction
	// identified by t.ID and owned by t.UserID, refreshing t from the
	// stored row. Returns ErrNotFound when no such row exists.
	Update(ctx context.Context, t *model.Transaction) error
	// Delete removes the transaction if it is owned by userID.
	// Returns ErrNotFound when no such row exists.
	Delete(ctx context.Context, userID, id uint64) error
}
