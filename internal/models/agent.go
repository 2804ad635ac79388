package models

import "time"

// Agent is an operator allowed to record transactions for clients
type Agent struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Not serialized
	OpenDate     time.Time `json:"open_date"`
}
