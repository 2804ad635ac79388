package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/gemachapp/ledger-service/internal/ledger"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// ErrCheckExists is returned when a check number is already taken
var ErrCheckExists = errors.New("check number already exists")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Transact runs fn inside a serializable database transaction, implementing
// ledger.Store. Concurrency failures (serialization, deadlock, unique races
// such as two first-transactions creating the same account) surface as
// ledger.ErrConflict so the engine can retry the whole unit of work.
func (r *Repository) Transact(ctx context.Context, fn func(tx ledger.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapError(err))
	}
	if err := fn(&ledgerTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", mapError(err))
	}
	return nil
}

// mapError translates Postgres concurrency failures into ledger.ErrConflict.
// 40001 serialization_failure, 40P01 deadlock_detected, 23505 unique_violation
// (the accounts.client_id backstop for the get-or-create race).
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "23505":
			return fmt.Errorf("%w: %v", ledger.ErrConflict, err)
		}
	}
	return err
}
