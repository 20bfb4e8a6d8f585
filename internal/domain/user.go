package domain

import (
	"strings"
	"time"
)

// User is an authenticated portal account. The email address is the scoping
// key for favorites, reservations, and bookings throughout the system.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// NewUser creates an account first seen now.
func NewUser(id, email, displayName string, isAdmin bool) *User {
	now := time.Now()
	return &User{
		ID:          id,
		Email:       NormalizeEmail(email),
		DisplayName: displayName,
		IsAdmin:     isAdmin,
		CreatedAt:   now,
		LastLoginAt: now,
	}
}

// NormalizeEmail lowercases and trims an email for use as an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
