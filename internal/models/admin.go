package models

// Admin is a back-office user with full access
type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Not serialized
}
