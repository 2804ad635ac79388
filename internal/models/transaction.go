package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of a client's ledger. Exactly one of Added/Subtracted
// is set per row; the zero side is stored as null so the direction stays
// unambiguous. TotalAdded/TotalSubtracted are cumulative sums up to and
// including this row in (trans_date, id) order.
type Transaction struct {
	ID              int64               `json:"trans_id"`
	ClientID        int64               `json:"client_id"`
	TransDate       time.Time           `json:"trans_date"`
	Agent           string              `json:"agent"`
	Added           decimal.NullDecimal `json:"added"`
	Subtracted      decimal.NullDecimal `json:"subtracted"`
	TotalAdded      decimal.NullDecimal `json:"total_added"`
	TotalSubtracted decimal.NullDecimal `json:"total_subtracted"`
}

// Impact is the signed effect of this row on the balance.
func (t *Transaction) Impact() decimal.Decimal {
	return t.AddedOrZero().Sub(t.SubtractedOrZero())
}

func (t *Transaction) AddedOrZero() decimal.Decimal {
	if !t.Added.Valid {
		return decimal.Zero
	}
	return t.Added.Decimal
}

func (t *Transaction) SubtractedOrZero() decimal.Decimal {
	if !t.Subtracted.Valid {
		return decimal.Zero
	}
	return t.Subtracted.Decimal
}
