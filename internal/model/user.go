// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// PasswordHash holds the bcrypt hash of the user's password. The `json:"-"`
// tag keeps it out of every API response — handlers can return a User
// directly without leaking the credential.
//
// Avatar is a data URL or image URL chosen by the user; empty string means
// no avatar set. We use the zero value rather than a nullable pointer.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	Email        string    `json:"email"     db:"email"` // unique per storage mode
	PasswordHash string    `json:"-"         db:"password_hash"`
	Avatar       string    `json:"avatar"    db:"avatar"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
