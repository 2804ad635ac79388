package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gemachapp/ledger-service/internal/models"
)

// Engine is the single authority for mutating account balances and the
// transaction ledger. Every operation runs as one unit of work against the
// store and is retried in full on a concurrency conflict.
type Engine struct {
	store      Store
	log        *logrus.Logger
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
}

// NewEngine initializes the balance engine
func NewEngine(store Store, log *logrus.Logger) *Engine {
	return &Engine{
		store:      store,
		log:        log,
		maxRetries: 3,
		retryDelay: 25 * time.Millisecond,
		now:        time.Now,
	}
}

// Result is the outcome of a successful balance mutation
type Result struct {
	TransactionID int64           `json:"transaction_id"`
	Balance       decimal.Decimal `json:"balance"`
}

// ProcessTransaction validates and applies one ledger entry for a client.
// Amounts must be non-negative and at least one must be positive. The account
// is created lazily on the client's first transaction. The new balance and the
// row's cumulative totals are computed and committed atomically; a transaction
// that would drive the balance negative is rejected with ErrNegativeBalance.
func (e *Engine) ProcessTransaction(ctx context.Context, clientID int64, added, subtracted decimal.Decimal, agent string) (*Result, error) {
	if added.IsNegative() || subtracted.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if !added.IsPositive() && !subtracted.IsPositive() {
		return nil, ErrInvalidAmount
	}
	added = added.Round(2)
	subtracted = subtracted.Round(2)
	agent = strings.TrimSpace(agent)
	if agent == "" {
		agent = "system"
	}

	var res Result
	err := e.run(ctx, "process transaction", func(tx Tx) error {
		exists, err := tx.ClientExists(ctx, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrClientNotFound
		}

		account, err := e.getOrCreateAccount(ctx, tx, clientID)
		if err != nil {
			return err
		}

		newBalance := account.Balance().Add(added).Sub(subtracted)
		if newBalance.IsNegative() {
			return ErrNegativeBalance
		}

		// Lifetime totals are recomputed from the transaction set rather than
		// read off the account row, so a drifted balance cannot poison the
		// cumulative columns.
		totalAdded, totalSubtracted, err := tx.TransactionTotals(ctx, clientID)
		if err != nil {
			return err
		}

		now := e.now()
		t := &models.Transaction{
			ClientID:        clientID,
			TransDate:       now,
			Agent:           agent,
			Added:           nullIfZero(added),
			Subtracted:      nullIfZero(subtracted),
			TotalAdded:      nullDecimal(totalAdded.Add(added)),
			TotalSubtracted: nullDecimal(totalSubtracted.Add(subtracted)),
		}
		if err := tx.CreateTransaction(ctx, t); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, account.ID, newBalance, now); err != nil {
			return err
		}

		res = Result{TransactionID: t.ID, Balance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"client_id": clientID,
		"trans_id":  res.TransactionID,
		"balance":   res.Balance.String(),
	}).Info("transaction processed")
	return &res, nil
}

// DeleteTransaction removes a ledger entry and reverses its effect on the
// account balance. A delete that would leave the balance negative is rejected.
// The remaining rows' cumulative totals are re-derived in the same unit of
// work so the ledger stays internally consistent.
func (e *Engine) DeleteTransaction(ctx context.Context, transactionID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := e.run(ctx, "delete transaction", func(tx Tx) error {
		t, err := tx.TransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		// An orphaned transaction is a data-integrity error, not a soft miss.
		account, err := tx.AccountForClient(ctx, t.ClientID)
		if err != nil {
			return err
		}

		newBalance := account.Balance().Sub(t.Impact())
		if newBalance.IsNegative() {
			return ErrNegativeBalance
		}

		if err := tx.DeleteTransaction(ctx, transactionID); err != nil {
			return err
		}
		if err := recalcRunningTotals(ctx, tx, t.ClientID); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, account.ID, newBalance, e.now()); err != nil {
			return err
		}

		balance = newBalance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	e.log.WithFields(logrus.Fields{
		"trans_id": transactionID,
		"balance":  balance.String(),
	}).Info("transaction deleted")
	return balance, nil
}

// EditTransaction replaces a ledger entry's amounts, adjusts the balance by the
// difference and re-derives the client's cumulative totals. The row keeps its
// identity but gets a fresh timestamp.
func (e *Engine) EditTransaction(ctx context.Context, transactionID int64, added, subtracted decimal.Decimal) (decimal.Decimal, error) {
	if added.IsNegative() || subtracted.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if !added.IsPositive() && !subtracted.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	added = added.Round(2)
	subtracted = subtracted.Round(2)

	var balance decimal.Decimal
	err := e.run(ctx, "edit transaction", func(tx Tx) error {
		t, err := tx.TransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		account, err := tx.AccountForClient(ctx, t.ClientID)
		if err != nil {
			return err
		}

		oldImpact := t.Impact()
		newImpact := added.Sub(subtracted)
		newBalance := account.Balance().Add(newImpact).Sub(oldImpact)
		if newBalance.IsNegative() {
			return ErrNegativeBalance
		}

		now := e.now()
		t.Added = nullIfZero(added)
		t.Subtracted = nullIfZero(subtracted)
		t.TransDate = now
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return err
		}
		if err := recalcRunningTotals(ctx, tx, t.ClientID); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, account.ID, newBalance, now); err != nil {
			return err
		}

		balance = newBalance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	e.log.WithFields(logrus.Fields{
		"trans_id": transactionID,
		"balance":  balance.String(),
	}).Info("transaction edited")
	return balance, nil
}

// getOrCreateAccount loads the client's account or creates an empty one so it
// has an identity for the rest of the unit of work. A concurrent first
// transaction for the same client trips the unique constraint on client_id,
// which the store reports as ErrConflict and run retries.
func (e *Engine) getOrCreateAccount(ctx context.Context, tx Tx, clientID int64) (*models.Account, error) {
	account, err := tx.AccountForClient(ctx, clientID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	account = newAccount(clientID, decimal.Zero, e.now())
	if err := tx.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func newAccount(clientID int64, balance decimal.Decimal, at time.Time) *models.Account {
	return &models.Account{
		ClientID:      clientID,
		TotalAmount:   nullDecimal(balance),
		UpdateBalDate: at,
	}
}

// recalcRunningTotals rewrites TotalAdded/TotalSubtracted for all of the
// client's transactions in (trans_date, id) order.
func recalcRunningTotals(ctx context.Context, tx Tx, clientID int64) error {
	transactions, err := tx.TransactionsForClient(ctx, clientID)
	if err != nil {
		return err
	}

	runningAdded := decimal.Zero
	runningSubtracted := decimal.Zero
	for i := range transactions {
		t := &transactions[i]
		runningAdded = runningAdded.Add(t.AddedOrZero())
		runningSubtracted = runningSubtracted.Add(t.SubtractedOrZero())
		t.TotalAdded = nullDecimal(runningAdded)
		t.TotalSubtracted = nullDecimal(runningSubtracted)
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// run executes fn as one unit of work, retrying the whole operation on
// conflicts. Sub-steps are never retried in isolation; a conflicted attempt's
// reads are stale and must be redone from scratch. Any failure that is not a
// typed business rejection is reported as ErrTransactionFailed so store
// internals never leak to callers.
func (e *Engine) run(ctx context.Context, op string, fn func(tx Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = e.store.Transact(ctx, fn)
		if err == nil || !errors.Is(err, ErrConflict) {
			break
		}
		if attempt >= e.maxRetries {
			e.log.Errorf("%s: conflict retries exhausted: %v", op, err)
			return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
		}
		e.log.Warnf("%s: concurrency conflict, retrying (%d/%d)", op, attempt+1, e.maxRetries)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrTransactionFailed, ctx.Err())
		case <-time.After(e.retryDelay):
		}
	}
	if err != nil && !IsBusinessError(err) {
		e.log.Errorf("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return err
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullIfZero(d decimal.Decimal) decimal.NullDecimal {
	if d.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
