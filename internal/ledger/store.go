package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/models"
)

// Store opens units of work against the ledger's backing storage.
// Transact runs fn inside a single transaction: if fn returns an error the
// transaction is rolled back and the error is returned; otherwise it commits.
// Implementations must return an error wrapping ErrConflict when the store
// detects a concurrent-write collision (serialization failure, deadlock, or a
// unique-constraint race on the account row).
type Store interface {
	Transact(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of storage operations available inside one unit of work.
type Tx interface {
	// ClientExists reports whether the client row exists.
	ClientExists(ctx context.Context, clientID int64) (bool, error)

	// AccountForClient loads the client's account row locked for update, or
	// an error wrapping ErrAccountNotFound.
	AccountForClient(ctx context.Context, clientID int64) (*models.Account, error)

	// CreateAccount inserts the account and fills in its assigned id.
	CreateAccount(ctx context.Context, account *models.Account) error

	// UpdateAccountBalance sets the account's total and recomputation time.
	UpdateAccountBalance(ctx context.Context, accountID int64, total decimal.Decimal, at time.Time) error

	// TransactionTotals returns the lifetime sums of added and subtracted
	// over all of the client's transactions.
	TransactionTotals(ctx context.Context, clientID int64) (added, subtracted decimal.Decimal, err error)

	// TransactionsForClient returns the client's ledger ordered by
	// (trans_date, id) ascending.
	TransactionsForClient(ctx context.Context, clientID int64) ([]models.Transaction, error)

	// TransactionByID loads one transaction, or an error wrapping
	// ErrTransactionNotFound.
	TransactionByID(ctx context.Context, id int64) (*models.Transaction, error)

	// CreateTransaction inserts the row and fills in its assigned id.
	CreateTransaction(ctx context.Context, t *models.Transaction) error

	// UpdateTransaction rewrites the row's amounts, totals and date.
	UpdateTransaction(ctx context.Context, t *models.Transaction) error

	// DeleteTransaction removes the row.
	DeleteTransaction(ctx context.Context, id int64) error

	// ClientIDs lists all client ids, for whole-book maintenance passes.
	ClientIDs(ctx context.Context) ([]int64, error)
}
