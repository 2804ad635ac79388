package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/export"
	"github.com/gemachapp/ledger-service/internal/ledger"
	"github.com/gemachapp/ledger-service/internal/models"
)

// LedgerEntry is one transaction row with its running balance, in
// (trans_date, id) order.
type LedgerEntry struct {
	models.Transaction
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// ProcessTransaction applies one ledger entry through the balance engine and,
// when requested, sends the client a confirmation email. The email is
// fire-and-forget: once the engine has committed, nothing rolls it back.
func (s *Service) ProcessTransaction(ctx context.Context, clientID int64, added, subtracted decimal.Decimal, agent string, sendEmail bool) (*ledger.Result, error) {
	res, err := s.engine.ProcessTransaction(ctx, clientID, added, subtracted, agent)
	if err != nil {
		return nil, err
	}

	if sendEmail && s.sender != nil {
		client, err := s.repo.GetClient(ctx, clientID)
		if err != nil {
			s.log.Warnf("Transaction %d committed but client lookup for notification failed: %v", res.TransactionID, err)
			return res, nil
		}
		if client.Email != "" {
			go func(to, name string, balance decimal.Decimal) {
				if err := s.sender.SendTransactionNotification(to, name, agent, added, subtracted, balance); err != nil {
					s.log.Warnf("Notification for transaction %d not delivered: %v", res.TransactionID, err)
				}
			}(client.Email, client.FullName(), res.Balance)
		}
	}
	return res, nil
}

// DeleteTransaction removes a ledger entry via the engine
func (s *Service) DeleteTransaction(ctx context.Context, transactionID int64) (decimal.Decimal, error) {
	return s.engine.DeleteTransaction(ctx, transactionID)
}

// EditTransaction replaces a ledger entry's amounts via the engine
func (s *Service) EditTransaction(ctx context.Context, transactionID int64, added, subtracted decimal.Decimal) (decimal.Decimal, error) {
	return s.engine.EditTransaction(ctx, transactionID, added, subtracted)
}

// ClientLedger returns a client's transactions with server-side running
// balances.
func (s *Service) ClientLedger(ctx context.Context, clientID int64) ([]LedgerEntry, error) {
	exists, err := s.repo.ClientExists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledger.ErrClientNotFound
	}

	transactions, err := s.repo.ListTransactions(ctx, clientID)
	if err != nil {
		return nil, err
	}

	running := decimal.Zero
	entries := make([]LedgerEntry, 0, len(transactions))
	for _, t := range transactions {
		running = running.Add(t.Impact())
		entries = append(entries, LedgerEntry{Transaction: t, RunningBalance: running})
	}
	return entries, nil
}

// ClientStatement assembles the data for a client's XML statement export
func (s *Service) ClientStatement(ctx context.Context, clientID int64) (*export.Statement, error) {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.ListTransactions(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &export.Statement{
		Client:       client.Client,
		Transactions: transactions,
		Balance:      client.Balance,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// GetBalance returns a client's current account balance
func (s *Service) GetBalance(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	account, err := s.repo.GetAccountByClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance(), nil
}

// ValidateFunds reports whether the client's balance covers amount
func (s *Service) ValidateFunds(ctx context.Context, clientID int64, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, ledger.ErrInvalidAmount
	}
	balance, err := s.GetBalance(ctx, clientID)
	if err != nil {
		return false, err
	}
	return balance.GreaterThanOrEqual(amount), nil
}

// ResyncAccountBalance recomputes one client's balance from the ledger
func (s *Service) ResyncAccountBalance(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	return s.engine.ResyncAccountBalance(ctx, clientID)
}

// ResyncAllAccounts recomputes every client's balance from the ledger
func (s *Service) ResyncAllAccounts(ctx context.Context) (int, error) {
	return s.engine.ResyncAllAccounts(ctx)
}

// RecalculateRunningTotals repairs the cumulative columns of one client's ledger
func (s *Service) RecalculateRunningTotals(ctx context.Context, clientID int64) error {
	return s.engine.RecalculateRunningTotals(ctx, clientID)
}
