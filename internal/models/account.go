package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the materialized balance for a client.
// Exactly one account exists per client; the balance is a projection of the
// transaction ledger maintained by the ledger engine.
type Account struct {
	ID            int64               `json:"account_id"`
	ClientID      int64               `json:"client_id"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"`
	UpdateBalDate time.Time           `json:"update_bal_date"`
}

// Balance returns the stored balance, treating an unset total as zero.
func (a *Account) Balance() decimal.Decimal {
	if !a.TotalAmount.Valid {
		return decimal.Zero
	}
	return a.TotalAmount.Decimal
}
