package models

import "time"

// UpdateLog is one field-level change record written when a client or agent
// profile is edited. Transactions are not logged here; the ledger itself is
// their audit trail.
type UpdateLog struct {
	RecordID    int64     `json:"record_id"`
	TableName   string    `json:"table_name"` // "clients" or "agents"
	ObjectID    string    `json:"object_id"`
	ColumnName  string    `json:"column_name"`
	PrevVersion string    `json:"prev_version"`
	NewVersion  string    `json:"new_version"`
	Agent       string    `json:"agent"` // who made the change
	Timestamp   time.Time `json:"timestamp"`
}
