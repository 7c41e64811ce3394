package models

import "time"

// Roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a registered customer or back-office account.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// PasswordResetToken stores a digest of an outstanding reset token.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Digest    string
	ExpiresAt time.Time
	Used      bool
}
