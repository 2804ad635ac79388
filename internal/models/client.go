package models

import "time"

// Client represents a gemach member who owns an account and a transaction history
type Client struct {
	ID            int64     `json:"client_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	OpenDate      time.Time `json:"open_date"`
	Position      string    `json:"position,omitempty"`
	Comments      string    `json:"comments,omitempty"`
	Agent         string    `json:"agent,omitempty"`
	UpdateByEmail bool      `json:"update_by_email"`
}

// FullName is used in statements and notifications
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
