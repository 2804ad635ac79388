package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ResyncAccountBalance recomputes the client's balance from the full
// transaction ledger and upserts the account row with the result. This is the
// drift-correction oracle: the ledger is the system of record, the account
// balance only a projection of it. Idempotent.
func (e *Engine) ResyncAccountBalance(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := e.run(ctx, "resync account balance", func(tx Tx) error {
		exists, err := tx.ClientExists(ctx, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrClientNotFound
		}

		added, subtracted, err := tx.TransactionTotals(ctx, clientID)
		if err != nil {
			return err
		}
		balance = added.Sub(subtracted)

		account, err := tx.AccountForClient(ctx, clientID)
		if errors.Is(err, ErrAccountNotFound) {
			account = nil
		} else if err != nil {
			return err
		}
		now := e.now()
		if account == nil {
			acc := newAccount(clientID, balance, now)
			return tx.CreateAccount(ctx, acc)
		}
		return tx.UpdateAccountBalance(ctx, account.ID, balance, now)
	})
	if err != nil {
		return decimal.Zero, err
	}

	e.log.WithFields(logrus.Fields{
		"client_id": clientID,
		"balance":   balance.String(),
	}).Info("account balance resynced")
	return balance, nil
}

// ResyncAllAccounts runs ResyncAccountBalance for every known client, one unit
// of work per client so a single bad book cannot abort the whole pass. Returns
// the number of accounts successfully resynced.
func (e *Engine) ResyncAllAccounts(ctx context.Context) (int, error) {
	var clientIDs []int64
	err := e.run(ctx, "list clients for resync", func(tx Tx) error {
		ids, err := tx.ClientIDs(ctx)
		if err != nil {
			return err
		}
		clientIDs = ids
		return nil
	})
	if err != nil {
		return 0, err
	}

	resynced := 0
	for _, clientID := range clientIDs {
		if _, err := e.ResyncAccountBalance(ctx, clientID); err != nil {
			e.log.Errorf("resync failed for client %d: %v", clientID, err)
			continue
		}
		resynced++
	}
	e.log.Infof("resynced balances for %d of %d clients", resynced, len(clientIDs))
	return resynced, nil
}

// RecalculateRunningTotals rewrites the cumulative added/subtracted columns of
// the client's whole ledger in chronological order, as one unit of work. This
// is the authoritative repair for the running-totals invariant.
func (e *Engine) RecalculateRunningTotals(ctx context.Context, clientID int64) error {
	err := e.run(ctx, "recalculate running totals", func(tx Tx) error {
		exists, err := tx.ClientExists(ctx, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrClientNotFound
		}
		return recalcRunningTotals(ctx, tx, clientID)
	})
	if err != nil {
		return err
	}
	e.log.Infof("running totals recalculated for client %d", clientID)
	return nil
}
