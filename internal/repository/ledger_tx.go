package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/ledger"
	"github.com/gemachapp/ledger-service/internal/models"
)

// ledgerTx implements ledger.Tx over one database transaction
type ledgerTx struct {
	tx *sql.Tx
}

var _ ledger.Tx = (*ledgerTx)(nil)

func (l *ledgerTx) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM gemach.clients WHERE client_id = $1)`
	if err := l.tx.QueryRowContext(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return exists, nil
}

// AccountForClient locks the account row for the rest of the transaction; it
// is the single point of contention between concurrent operations on a client.
func (l *ledgerTx) AccountForClient(ctx context.Context, clientID int64) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT account_id, client_id, total_amount, update_bal_date
		FROM gemach.accounts
		WHERE client_id = $1
		FOR UPDATE`
	err := l.tx.QueryRowContext(ctx, query, clientID).
		Scan(&account.ID, &account.ClientID, &account.TotalAmount, &account.UpdateBalDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", clientID, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

func (l *ledgerTx) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO gemach.accounts (client_id, total_amount, update_bal_date)
		VALUES ($1, $2, $3)
		RETURNING account_id`
	err := l.tx.QueryRowContext(ctx, query, account.ClientID, account.TotalAmount, account.UpdateBalDate).
		Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (l *ledgerTx) UpdateAccountBalance(ctx context.Context, accountID int64, total decimal.Decimal, at time.Time) error {
	query := `
		UPDATE gemach.accounts
		SET total_amount = $2, update_bal_date = $3
		WHERE account_id = $1`
	if _, err := l.tx.ExecContext(ctx, query, accountID, total, at); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}

func (l *ledgerTx) TransactionTotals(ctx context.Context, clientID int64) (decimal.Decimal, decimal.Decimal, error) {
	var added, subtracted decimal.Decimal
	query := `
		SELECT COALESCE(SUM(added), 0), COALESCE(SUM(subtracted), 0)
		FROM gemach.transactions
		WHERE client_id = $1`
	if err := l.tx.QueryRowContext(ctx, query, clientID).Scan(&added, &subtracted); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return added, subtracted, nil
}

func (l *ledgerTx) TransactionsForClient(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	query := `
		SELECT trans_id, client_id, trans_date, agent, added, subtracted, total_added, total_subtracted
		FROM gemach.transactions
		WHERE client_id = $1
		ORDER BY trans_date, trans_id`
	rows, err := l.tx.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.ClientID, &t.TransDate, &t.Agent,
			&t.Added, &t.Subtracted, &t.TotalAdded, &t.TotalSubtracted); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (l *ledgerTx) TransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	query := `
		SELECT trans_id, client_id, trans_date, agent, added, subtracted, total_added, total_subtracted
		FROM gemach.transactions
		WHERE trans_id = $1`
	err := l.tx.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.ClientID, &t.TransDate, &t.Agent,
			&t.Added, &t.Subtracted, &t.TotalAdded, &t.TotalSubtracted)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %d: %w", id, ledger.ErrTransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return t, nil
}

func (l *ledgerTx) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO gemach.transactions (client_id, trans_date, agent, added, subtracted, total_added, total_subtracted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING trans_id`
	err := l.tx.QueryRowContext(ctx, query, t.ClientID, t.TransDate, t.Agent,
		t.Added, t.Subtracted, t.TotalAdded, t.TotalSubtracted).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (l *ledgerTx) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE gemach.transactions
		SET trans_date = $2, added = $3, subtracted = $4, total_added = $5, total_subtracted = $6
		WHERE trans_id = $1`
	if _, err := l.tx.ExecContext(ctx, query, t.ID,
		t.TransDate, t.Added, t.Subtracted, t.TotalAdded, t.TotalSubtracted); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (l *ledgerTx) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := l.tx.ExecContext(ctx, `DELETE FROM gemach.transactions WHERE trans_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (l *ledgerTx) ClientIDs(ctx context.Context) ([]int64, error) {
	rows, err := l.tx.QueryContext(ctx, `SELECT client_id FROM gemach.clients ORDER BY client_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan client id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
