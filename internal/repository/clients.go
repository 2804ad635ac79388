package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/models"
)

// ClientSummary is a client with the current account balance attached
type ClientSummary struct {
	models.Client
	Balance decimal.Decimal `json:"balance"`
}

// CreateClient creates a new client in the database
func (r *Repository) CreateClient(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO gemach.clients (first_name, last_name, phone, email, open_date, position, comments, agent, update_by_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING client_id`
	err := r.db.QueryRowContext(ctx, query,
		client.FirstName, client.LastName, client.Phone, client.Email,
		client.OpenDate, client.Position, client.Comments, client.Agent, client.UpdateByEmail).
		Scan(&client.ID)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetClient retrieves a client with the current account balance
func (r *Repository) GetClient(ctx context.Context, clientID int64) (*ClientSummary, error) {
	c := &ClientSummary{}
	var balance decimal.NullDecimal
	query := `
		SELECT c.client_id, c.first_name, c.last_name, c.phone, c.email, c.open_date,
		       c.position, c.comments, c.agent, c.update_by_email, a.total_amount
		FROM gemach.clients c
		LEFT JOIN gemach.accounts a ON a.client_id = c.client_id
		WHERE c.client_id = $1`
	err := r.db.QueryRowContext(ctx, query, clientID).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.OpenDate,
			&c.Position, &c.Comments, &c.Agent, &c.UpdateByEmail, &balance)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", clientID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if balance.Valid {
		c.Balance = balance.Decimal
	}
	return c, nil
}

// ListClients retrieves all clients with balances
func (r *Repository) ListClients(ctx context.Context) ([]ClientSummary, error) {
	query := `
		SELECT c.client_id, c.first_name, c.last_name, c.phone, c.email, c.open_date,
		       c.position, c.comments, c.agent, c.update_by_email, a.total_amount
		FROM gemach.clients c
		LEFT JOIN gemach.accounts a ON a.client_id = c.client_id
		ORDER BY c.client_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []ClientSummary
	for rows.Next() {
		var c ClientSummary
		var balance decimal.NullDecimal
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.OpenDate,
			&c.Position, &c.Comments, &c.Agent, &c.UpdateByEmail, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		if balance.Valid {
			c.Balance = balance.Decimal
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// UpdateClient rewrites a client's profile fields
func (r *Repository) UpdateClient(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE gemach.clients
		SET first_name = $2, last_name = $3, phone = $4, email = $5,
		    position = $6, comments = $7, agent = $8, update_by_email = $9
		WHERE client_id = $1`
	res, err := r.db.ExecContext(ctx, query, client.ID,
		client.FirstName, client.LastName, client.Phone, client.Email,
		client.Position, client.Comments, client.Agent, client.UpdateByEmail)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("client %d: %w", client.ID, ErrNotFound)
	}
	return nil
}

// DeleteClient removes a client; the account and transactions cascade
func (r *Repository) DeleteClient(ctx context.Context, clientID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gemach.clients WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("client %d: %w", clientID, ErrNotFound)
	}
	return nil
}

// GetAccountByClient retrieves the account row without locking, for read-only
// balance queries
func (r *Repository) GetAccountByClient(ctx context.Context, clientID int64) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT account_id, client_id, total_amount, update_bal_date
		FROM gemach.accounts
		WHERE client_id = $1`
	err := r.db.QueryRowContext(ctx, query, clientID).
		Scan(&account.ID, &account.ClientID, &account.TotalAmount, &account.UpdateBalDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account for client %d: %w", clientID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

// ListTransactions retrieves a client's ledger ordered by (trans_date, id)
func (r *Repository) ListTransactions(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	query := `
		SELECT trans_id, client_id, trans_date, agent, added, subtracted, total_added, total_subtracted
		FROM gemach.transactions
		WHERE client_id = $1
		ORDER BY trans_date, trans_id`
	rows, err := r.db.QueryContext(ctx, query, clientID)
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

// ClientExists reports whether the client row exists
func (r *Repository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM gemach.clients WHERE client_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return exists, nil
}
