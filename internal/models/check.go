package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check records a paper check issued against a withdrawal. The check number is
// assigned by the caller to match the physical checkbook, not by the database.
type Check struct {
	CheckID    int64           `json:"check_id"`
	ClientID   int64           `json:"client_id"`
	ClientName string          `json:"client_name"`
	OrderTo    string          `json:"order_to"`
	Sum        decimal.Decimal `json:"sum"`
	TransID    int64           `json:"trans_id"`
	AgentID    int64           `json:"agent_id"`
	AgentName  string          `json:"agent_name"`
	IssuedDate time.Time       `json:"issued_date"`
}
