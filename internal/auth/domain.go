package auth

import "time"

// User represents a registered account of any role.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
